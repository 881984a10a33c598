package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"estructura/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newClientServiceForTest(
	profileRepo *stubProfileRepo,
	mealRepo *stubMealLogRepo,
	exerciseRepo *stubExerciseLogRepo,
	weightRepo *stubWeightLogRepo,
	fileStorage *stubFileStorage,
) ClientService {
	if profileRepo == nil {
		profileRepo = &stubProfileRepo{}
	}
	if mealRepo == nil {
		mealRepo = &stubMealLogRepo{}
	}
	if exerciseRepo == nil {
		exerciseRepo = &stubExerciseLogRepo{}
	}
	if weightRepo == nil {
		weightRepo = &stubWeightLogRepo{}
	}
	if fileStorage == nil {
		fileStorage = &stubFileStorage{}
	}
	return NewClientService(
		profileRepo,
		&stubDietPlanRepo{},
		mealRepo,
		exerciseRepo,
		weightRepo,
		&stubTrainingPlanRepo{},
		fileStorage,
		newTestLogger(),
	)
}

func activeClientProfile(id primitive.ObjectID) *domain.Profile {
	return &domain.Profile{ID: id, FullName: "Client One", Role: domain.RoleClient, PaymentStatus: true}
}

func TestGetDashboardComputesMetrics(t *testing.T) {
	clientID := primitive.NewObjectID()
	profileRepo := &stubProfileRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return activeClientProfile(clientID), nil
		},
	}
	exerciseRepo := &stubExerciseLogRepo{
		getByClientFn: func(ctx context.Context, id primitive.ObjectID, limit int64) ([]domain.ExerciseLog, error) {
			return []domain.ExerciseLog{
				{DurationMinutes: 45, CaloriesBurned: 315},
				{DurationMinutes: 30, CaloriesBurned: 210},
			}, nil
		},
	}
	// Newest-first, as the repositories return them.
	weightRepo := &stubWeightLogRepo{
		getByClientFn: func(ctx context.Context, id primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
			return []domain.WeightLog{
				{WeightKg: 80.0},
				{WeightKg: 81.5},
				{WeightKg: 79.0},
			}, nil
		},
	}

	svc := newClientServiceForTest(profileRepo, nil, exerciseRepo, weightRepo, nil)
	dash, err := svc.GetDashboard(context.Background(), clientID)
	if err != nil {
		t.Fatalf("GetDashboard returned error: %v", err)
	}

	if dash.TotalCaloriesBurned != 525 {
		t.Errorf("TotalCaloriesBurned = %d, want 525", dash.TotalCaloriesBurned)
	}
	if dash.LatestWeight == nil || *dash.LatestWeight != 80.0 {
		t.Errorf("LatestWeight = %v, want 80.0", dash.LatestWeight)
	}
	if dash.WeightChange != -1.5 {
		t.Errorf("WeightChange = %v, want -1.5", dash.WeightChange)
	}
	deltas := dash.WeightDeltas
	if len(deltas) != 3 || deltas[0] == nil || *deltas[0] != -1.5 || deltas[1] == nil || *deltas[1] != 2.5 || deltas[2] != nil {
		t.Errorf("WeightDeltas = %v, want [-1.5 2.5 nil]", deltas)
	}
	if !dash.LoggingEnabled {
		t.Error("LoggingEnabled should mirror an active payment status")
	}
}

func TestGetDashboardToleratesFetchFailure(t *testing.T) {
	clientID := primitive.NewObjectID()
	profileRepo := &stubProfileRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return activeClientProfile(clientID), nil
		},
	}
	mealRepo := &stubMealLogRepo{
		getByClientFn: func(ctx context.Context, id primitive.ObjectID, limit int64) ([]domain.MealLog, error) {
			return nil, errors.New("collection unavailable")
		},
	}
	weightRepo := &stubWeightLogRepo{
		getByClientFn: func(ctx context.Context, id primitive.ObjectID, limit int64) ([]domain.WeightLog, error) {
			return []domain.WeightLog{{WeightKg: 70.0}}, nil
		},
	}

	svc := newClientServiceForTest(profileRepo, mealRepo, nil, weightRepo, nil)
	dash, err := svc.GetDashboard(context.Background(), clientID)
	if err != nil {
		t.Fatalf("a single failed fetch must not abort the load, got: %v", err)
	}
	if dash.MealLogs == nil || len(dash.MealLogs) != 0 {
		t.Errorf("failed collection should be an empty slice, got %v", dash.MealLogs)
	}
	if len(dash.WeightLogs) != 1 {
		t.Errorf("healthy collections should still load, got %v", dash.WeightLogs)
	}
}

func TestGetDashboardUnknownProfile(t *testing.T) {
	svc := newClientServiceForTest(nil, nil, nil, nil, nil)
	_, err := svc.GetDashboard(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestLogExerciseComputesCaloriesAtWriteTime(t *testing.T) {
	clientID := primitive.NewObjectID()
	var stored *domain.ExerciseLog
	exerciseRepo := &stubExerciseLogRepo{
		createFn: func(ctx context.Context, log *domain.ExerciseLog) (primitive.ObjectID, error) {
			stored = log
			return primitive.NewObjectID(), nil
		},
	}

	svc := newClientServiceForTest(nil, nil, exerciseRepo, nil, nil)
	log, err := svc.LogExercise(context.Background(), clientID, "Squats", time.Now(), 30, nil)
	if err != nil {
		t.Fatalf("LogExercise returned error: %v", err)
	}
	if log.CaloriesBurned != 210 {
		t.Errorf("CaloriesBurned = %d, want 210", log.CaloriesBurned)
	}
	if stored == nil || stored.CaloriesBurned != 210 {
		t.Error("calories must be stored with the log, not recomputed on read")
	}
}

func TestLogExerciseRejectsNonPositiveDuration(t *testing.T) {
	svc := newClientServiceForTest(nil, nil, nil, nil, nil)
	for _, minutes := range []int{0, -10} {
		_, err := svc.LogExercise(context.Background(), primitive.NewObjectID(), "Squats", time.Now(), minutes, nil)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("duration %d: err = %v, want ErrValidation", minutes, err)
		}
	}
}

func TestLogWeightRejectsNonPositiveWeight(t *testing.T) {
	svc := newClientServiceForTest(nil, nil, nil, nil, nil)
	_, err := svc.LogWeight(context.Background(), primitive.NewObjectID(), 0, time.Now(), nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestLogMealRequiresDescription(t *testing.T) {
	svc := newClientServiceForTest(nil, nil, nil, nil, nil)
	_, err := svc.LogMeal(context.Background(), primitive.NewObjectID(), time.Now(), "", nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestRequestPhotoUploadURL(t *testing.T) {
	clientID := primitive.NewObjectID()
	var signedKey, signedContentType string
	fileStorage := &stubFileStorage{
		uploadURLFn: func(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
			signedKey = objectKey
			signedContentType = contentType
			return "https://storage.example/signed", nil
		},
	}

	svc := newClientServiceForTest(nil, nil, nil, nil, fileStorage)
	result, err := svc.RequestPhotoUploadURL(context.Background(), clientID, "image/jpeg")
	if err != nil {
		t.Fatalf("RequestPhotoUploadURL returned error: %v", err)
	}
	if result.UploadURL != "https://storage.example/signed" {
		t.Errorf("UploadURL = %s", result.UploadURL)
	}
	if result.ObjectKey != signedKey {
		t.Error("returned object key must match the signed key")
	}
	wantPrefix := "progress-photos/" + clientID.Hex() + "/"
	if !strings.HasPrefix(signedKey, wantPrefix) {
		t.Errorf("object key %q not scoped under %q", signedKey, wantPrefix)
	}
	if !strings.HasSuffix(signedKey, ".jpeg") {
		t.Errorf("object key %q should carry the content-type extension", signedKey)
	}
	if signedContentType != "image/jpeg" {
		t.Errorf("signed content type = %s", signedContentType)
	}
}

func TestRequestPhotoUploadURLRejectsNonImage(t *testing.T) {
	svc := newClientServiceForTest(nil, nil, nil, nil, nil)
	_, err := svc.RequestPhotoUploadURL(context.Background(), primitive.NewObjectID(), "application/pdf")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}
