package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"estructura/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientHandler holds the client service dependency.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// --- Request Structs ---

type LogMealRequest struct {
	MealTime    time.Time `json:"mealTime" binding:"required"`
	Description string    `json:"mealDescription" binding:"required"`
	DietPlanID  *string   `json:"dietPlanId,omitempty"`
}

type LogExerciseRequest struct {
	ExerciseName    string    `json:"exerciseName" binding:"required"`
	ExerciseTime    time.Time `json:"exerciseTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	Notes           *string   `json:"notes,omitempty"`
}

type LogWeightRequest struct {
	WeightKg       float64   `json:"weightKg" binding:"required,gt=0"`
	MeasuredAt     time.Time `json:"measuredAt" binding:"required"`
	PhotoObjectKey *string   `json:"photoObjectKey,omitempty"`
}

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// GetDashboard returns the caller's full aggregate with derived metrics.
func (h *ClientHandler) GetDashboard(c *gin.Context) {
	clientID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	dashboard, err := h.clientService.GetDashboard(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// LogMeal records a meal on the caller's own timeline.
func (h *ClientHandler) LogMeal(c *gin.Context) {
	clientID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var dietPlanID *primitive.ObjectID
	if req.DietPlanID != nil {
		id, err := primitive.ObjectIDFromHex(*req.DietPlanID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid diet plan ID format")
			return
		}
		dietPlanID = &id
	}

	log, err := h.clientService.LogMeal(c.Request.Context(), clientID, req.MealTime, req.Description, dietPlanID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to record meal")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// LogExercise records an exercise session on the caller's own timeline.
func (h *ClientHandler) LogExercise(c *gin.Context) {
	clientID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	var req LogExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.clientService.LogExercise(c.Request.Context(), clientID, req.ExerciseName, req.ExerciseTime, req.DurationMinutes, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to record exercise")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// LogWeight records a weight measurement on the caller's own timeline.
func (h *ClientHandler) LogWeight(c *gin.Context) {
	clientID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	var req LogWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.clientService.LogWeight(c.Request.Context(), clientID, req.WeightKg, req.MeasuredAt, req.PhotoObjectKey)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to record weight")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// RequestPhotoUploadURL returns a pre-signed PUT URL for a progress photo.
func (h *ClientHandler) RequestPhotoUploadURL(c *gin.Context) {
	clientID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.clientService.RequestPhotoUploadURL(c.Request.Context(), clientID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	c.JSON(http.StatusOK, result)
}
