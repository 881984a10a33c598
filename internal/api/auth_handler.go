package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	FullName  string      `json:"fullName" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role      domain.Role `json:"role" binding:"required,oneof=trainer client"`
	TrainerID *string     `json:"trainerId,omitempty"`
}

// ProfileResponse excludes anything credential-related.
type ProfileResponse struct {
	ID            string      `json:"id"`
	FullName      string      `json:"fullName"`
	Role          domain.Role `json:"role"`
	PaymentStatus bool        `json:"paymentStatus"`
	TrainerID     *string     `json:"trainerId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// --- Handler Methods ---

// Register creates a new account: credential plus profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	var trainerID *primitive.ObjectID
	if req.TrainerID != nil {
		id, err := primitive.ObjectIDFromHex(*req.TrainerID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
			return
		}
		trainerID = &id
	}

	profile, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.FullName, req.Role, trainerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrTrainerNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapProfileToResponse(profile))
}

// Login authenticates a credential and returns a JWT plus the resolved profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, profile, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			// The credential authenticates but has no profile to act as.
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTokenGeneration):
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Profile: MapProfileToResponse(profile),
	})
}

// Me resolves the authenticated principal to its profile.
func (h *AuthHandler) Me(c *gin.Context) {
	principalID, err := getPrincipalID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid principal")
		return
	}

	profile, err := h.authService.ResolveProfile(c.Request.Context(), principalID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve profile")
		return
	}

	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// MapProfileToResponse converts a domain Profile to its response DTO,
// converting ObjectIDs to hex strings.
func MapProfileToResponse(profile *domain.Profile) ProfileResponse {
	if profile == nil {
		return ProfileResponse{}
	}

	resp := ProfileResponse{
		ID:            profile.ID.Hex(),
		FullName:      profile.FullName,
		Role:          profile.Role,
		PaymentStatus: profile.PaymentStatus,
		CreatedAt:     profile.CreatedAt,
	}
	if profile.TrainerID != nil && *profile.TrainerID != primitive.NilObjectID {
		trainerIDHex := profile.TrainerID.Hex()
		resp.TrainerID = &trainerIDHex
	}
	return resp
}
