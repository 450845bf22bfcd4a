package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// personService implements PersonServicer.
type personService struct {
	db *gorm.DB
}

// NewPersonService creates a new person service.
func NewPersonService(db *gorm.DB) PersonServicer {
	return &personService{db: db}
}

func (s *personService) CreatePerson(name string, phone, email, notes *string) (*models.Person, error) {
	person := models.Person{
		Name:  name,
		Phone: phone,
		Email: email,
		Notes: notes,
	}
	if err := s.db.Create(&person).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &person, nil
}

func (s *personService) GetPersons() ([]models.Person, error) {
	var persons []models.Person
	if err := s.db.Order("name").Find(&persons).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return persons, nil
}

func (s *personService) GetPersonByID(id string) (*models.Person, error) {
	var person models.Person
	if err := s.db.Preload("Accounts").First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &person, nil
}

func (s *personService) UpdatePerson(id string, fields PersonUpdateFields) (*models.Person, error) {
	var person models.Person
	if err := s.db.First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPersonNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Phone != nil {
		updates["phone"] = *fields.Phone
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(&person).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &person, nil
}

// DeletePerson removes the person. Accounts that referenced them are
// detached, not deleted; their balances and history stay intact.
func (s *personService) DeletePerson(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var person models.Person
		if err := tx.First(&person, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPersonNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Account{}).Where("person_id = ?", id).Update("person_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&person).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
