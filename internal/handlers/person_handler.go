package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/services"
)

// PersonHandler handles person-related requests.
type PersonHandler struct {
	personService services.PersonServicer
}

// NewPersonHandler creates a new PersonHandler.
func NewPersonHandler(personService services.PersonServicer) *PersonHandler {
	return &PersonHandler{personService: personService}
}

// CreatePersonRequest represents the request payload for creating a person.
type CreatePersonRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Email *string `json:"email" binding:"omitempty,email,max=100"`
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

// CreatePerson handles the creation of a new person.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	person, err := h.personService.CreatePerson(req.Name, req.Phone, req.Email, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"person": person})
}

// GetPersons handles listing all persons.
func (h *PersonHandler) GetPersons(c *gin.Context) {
	persons, err := h.personService.GetPersons()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"persons": persons})
}

// GetPersonByID handles the retrieval of a person with their accounts.
func (h *PersonHandler) GetPersonByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	person, err := h.personService.GetPersonByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": person})
}

// UpdatePersonRequest represents the request payload for updating a person.
// Empty strings clear nullable fields.
type UpdatePersonRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Email *string `json:"email" binding:"omitempty,max=100"`
	Notes *string `json:"notes" binding:"omitempty,max=500"`
}

// UpdatePerson handles updating an existing person.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	person, err := h.personService.UpdatePerson(id, services.PersonUpdateFields{
		Name:  req.Name,
		Phone: optionalString(req.Phone),
		Email: optionalString(req.Email),
		Notes: optionalString(req.Notes),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"person": person})
}

// DeletePerson handles the deletion of a person. Linked accounts are
// detached, never deleted.
func (h *PersonHandler) DeletePerson(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.personService.DeletePerson(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Person deleted successfully"})
}
