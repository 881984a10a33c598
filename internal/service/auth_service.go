package service

import (
	"context"
	"errors"
	"time"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrEmailTaken           = errors.New("an account with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrProfileNotFound      = errors.New("no profile exists for this account")
	ErrTrainerNotFound      = errors.New("referenced trainer does not exist")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService owns the authentication collaborator (credentials + JWT) and
// the identity-to-profile resolution.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string, role domain.Role, trainerID *primitive.ObjectID) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *domain.Profile, err error)
	// ResolveProfile maps an authenticated principal to its stored profile.
	// Returns ErrProfileNotFound when the principal has no profile row, which
	// is distinct from "not authenticated" (the middleware's concern).
	ResolveProfile(ctx context.Context, principalID primitive.ObjectID) (*domain.Profile, error)
}

// --- Service Implementation ---

type authService struct {
	credentialRepo repository.CredentialRepository
	profileRepo    repository.ProfileRepository
	jwtSecret      string
	jwtExpiration  time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(credentialRepo repository.CredentialRepository, profileRepo repository.ProfileRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		credentialRepo: credentialRepo,
		profileRepo:    profileRepo,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
	}
}

// Register creates a new account: an authentication identity first, then a
// profile keyed by the identity's ID. The two effects are sequenced; if the
// profile insert fails the identity is left orphaned and the error is
// surfaced as-is (no compensating rollback).
func (s *authService) Register(ctx context.Context, email, password, fullName string, role domain.Role, trainerID *primitive.ObjectID) (*domain.Profile, error) {
	if email == "" || password == "" || fullName == "" || role == "" {
		return nil, errors.New("email, password, full name, and role cannot be empty")
	}

	// A client may reference its trainer at signup; the reference must name
	// an existing trainer profile. Trainers carry no reference.
	if role == domain.RoleTrainer && trainerID != nil {
		return nil, errors.New("trainers cannot reference a trainer")
	}
	if trainerID != nil {
		trainer, err := s.profileRepo.GetByID(ctx, *trainerID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrTrainerNotFound
			}
			return nil, err
		}
		if !trainer.IsTrainer() {
			return nil, ErrTrainerNotFound
		}
	}

	_, err := s.credentialRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// Effect 1: create the authentication identity.
	cred := &domain.Credential{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	principalID, err := s.credentialRepo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// Effect 2: create the profile keyed by the new identity.
	profile := &domain.Profile{
		ID:       principalID,
		FullName: fullName,
		Role:     role,
		// Trainers are implicitly always active; self-registered clients
		// start suspended until their trainer activates them.
		PaymentStatus: role == domain.RoleTrainer,
		TrainerID:     trainerID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// Login authenticates a credential and issues a JWT carrying the resolved
// profile's role.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	cred, err := s.credentialRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	profile, err := s.ResolveProfile(ctx, cred.ID)
	if err != nil {
		// An orphaned identity authenticates but has nothing to act as.
		return "", nil, err
	}

	token, err := s.generateJWT(profile)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}
	return token, profile, nil
}

// ResolveProfile fetches the single profile record keyed by the principal ID.
func (s *authService) ResolveProfile(ctx context.Context, principalID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(profile *domain.Profile) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: profile.ID.Hex(),
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coach-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}
