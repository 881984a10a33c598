package api

import (
	"errors"
	"fmt"
	"net/http"

	"estructura/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request Structs ---

type CreateClientRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type AddDietPlanEntryRequest struct {
	MealName        string  `json:"mealName" binding:"required"`
	MealDescription string  `json:"mealDescription" binding:"required"`
	RecommendedTime *string `json:"recommendedTime,omitempty"`
}

type AddTrainingPlanEntryRequest struct {
	ExerciseName string  `json:"exerciseName" binding:"required"`
	Sets         int     `json:"sets" binding:"required,gt=0"`
	Reps         int     `json:"reps" binding:"required,gt=0"`
	Notes        *string `json:"notes,omitempty"`
}

type SetPaymentStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// --- Handler Methods ---

// GetRoster returns the trainer's clients with bounded recent records and
// activity counts.
func (h *TrainerHandler) GetRoster(c *gin.Context) {
	trainerID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	roster, err := h.trainerService.GetRoster(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	c.JSON(http.StatusOK, roster)
}

// CreateClient registers a new client account under the trainer.
func (h *TrainerHandler) CreateClient(c *gin.Context) {
	trainerID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.trainerService.CreateClientAccount(c.Request.Context(), trainerID, req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create client account")
		}
		return
	}

	c.JSON(http.StatusCreated, MapProfileToResponse(profile))
}

// GetClientDetail returns one managed client shaped for the requested view
// (?view=overview|diet|training, default overview).
func (h *TrainerHandler) GetClientDetail(c *gin.Context) {
	trainerID, clientID, ok := h.principalAndClient(c)
	if !ok {
		return
	}

	view := service.DetailView(c.Query("view"))
	detail, err := h.trainerService.GetClientDetail(c.Request.Context(), trainerID, clientID, view)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotManaged):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to load client detail")
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// AddDietPlanEntry records a diet plan entry on a managed client's timeline.
func (h *TrainerHandler) AddDietPlanEntry(c *gin.Context) {
	trainerID, clientID, ok := h.principalAndClient(c)
	if !ok {
		return
	}

	var req AddDietPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.trainerService.AddDietPlanEntry(c.Request.Context(), trainerID, clientID, req.MealName, req.MealDescription, req.RecommendedTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotManaged):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add diet plan entry")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// AddTrainingPlanEntry records a training plan entry on a managed client's
// timeline.
func (h *TrainerHandler) AddTrainingPlanEntry(c *gin.Context) {
	trainerID, clientID, ok := h.principalAndClient(c)
	if !ok {
		return
	}

	var req AddTrainingPlanEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.trainerService.AddTrainingPlanEntry(c.Request.Context(), trainerID, clientID, req.ExerciseName, req.Sets, req.Reps, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotManaged):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add training plan entry")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// SetPaymentStatus activates or suspends a managed client.
func (h *TrainerHandler) SetPaymentStatus(c *gin.Context) {
	trainerID, clientID, ok := h.principalAndClient(c)
	if !ok {
		return
	}

	var req SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.trainerService.SetPaymentStatus(c.Request.Context(), trainerID, clientID, *req.Active); err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotManaged), errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update payment status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientId": clientID.Hex(), "active": *req.Active})
}

// GetWeightPhotoURL returns a pre-signed GET URL for a weight log's photo.
func (h *TrainerHandler) GetWeightPhotoURL(c *gin.Context) {
	trainerID, clientID, ok := h.principalAndClient(c)
	if !ok {
		return
	}

	weightID, err := primitive.ObjectIDFromHex(c.Param("weightId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid weight log ID format")
		return
	}

	url, err := h.trainerService.GetWeightPhotoDownloadURL(c.Request.Context(), trainerID, clientID, weightID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotManaged), errors.Is(err, service.ErrWeightLogNotFound), errors.Is(err, service.ErrPhotoNotAttached):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

// principalAndClient extracts the trainer's principal ID and the :clientId
// path parameter, aborting the request on failure.
func (h *TrainerHandler) principalAndClient(c *gin.Context) (trainerID, clientID primitive.ObjectID, ok bool) {
	trainerID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	clientID, err = primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return trainerID, clientID, true
}
