package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
)

// categoryService implements CategoryServicer.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new category service.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a user category. System categories only enter
// the database through migrations.
func (s *categoryService) CreateCategory(name, icon, color string, entryType models.EntryType, sortOrder int) (*models.Category, error) {
	if !validEntryType(entryType) {
		return nil, apperrors.ErrInvalidEntryType
	}

	category := models.Category{
		Name:      name,
		Icon:      icon,
		Color:     color,
		Type:      entryType,
		IsSystem:  false,
		SortOrder: sortOrder,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategories lists categories with their subcategories, optionally
// filtered to one entry type.
func (s *categoryService) GetCategories(entryType *models.EntryType) ([]models.Category, error) {
	query := s.db.Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, name")
	})
	if entryType != nil {
		query = query.Where("type = ?", *entryType)
	}

	var categories []models.Category
	if err := query.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

func (s *categoryService) GetCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	err := s.db.Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order, name")
	}).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update. Renaming and restyling is
// allowed for system categories too; only deletion is protected.
func (s *categoryService) UpdateCategory(id string, fields CategoryUpdateFields) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.Color != nil {
		updates["color"] = *fields.Color
	}
	if fields.SortOrder != nil {
		updates["sort_order"] = *fields.SortOrder
	}
	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &category, nil
}

// DeleteCategory removes a user category, its subcategories, and the
// category reference on transactions and templates. The transactions
// themselves survive, uncategorized. System categories cannot go.
func (s *categoryService) DeleteCategory(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if category.IsSystem {
			return apperrors.ErrSystemCategory
		}

		subIDs := tx.Model(&models.Subcategory{}).Select("id").Where("category_id = ?", id)
		if err := tx.Model(&models.Transaction{}).Where("subcategory_id IN (?)", subIDs).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.TransactionTemplate{}).Where("subcategory_id IN (?)", subIDs).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Transaction{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.TransactionTemplate{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// CreateSubcategory creates a subcategory under an existing category.
// System categories accept subcategories like any other.
func (s *categoryService) CreateSubcategory(categoryID, name string, icon *string, sortOrder int) (*models.Subcategory, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sub := models.Subcategory{
		CategoryID: categoryID,
		Name:       name,
		Icon:       icon,
		SortOrder:  sortOrder,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sub, nil
}

func (s *categoryService) GetSubcategories(categoryID string) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	err := s.db.Where("category_id = ?", categoryID).
		Order("sort_order, name").
		Find(&subs).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subs, nil
}

func (s *categoryService) UpdateSubcategory(id string, fields SubcategoryUpdateFields) (*models.Subcategory, error) {
	var sub models.Subcategory
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubcategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.SortOrder != nil {
		updates["sort_order"] = *fields.SortOrder
	}
	if len(updates) > 0 {
		if err := s.db.Model(&sub).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &sub, nil
}

// DeleteSubcategory removes a subcategory and clears its reference on
// transactions and templates.
func (s *categoryService) DeleteSubcategory(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sub models.Subcategory
		if err := tx.First(&sub, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrSubcategoryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&models.Transaction{}).Where("subcategory_id = ?", id).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.TransactionTemplate{}).Where("subcategory_id = ?", id).
			Update("subcategory_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(&sub).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
