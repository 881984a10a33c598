package service

import (
	"context"
	"sync"

	"estructura/coach-app/internal/domain"
	"estructura/coach-app/internal/repository"
	"estructura/coach-app/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// aggregateLimits bounds the per-collection fetches. Zero means unbounded.
// Diet and training plans are always fetched in full.
type aggregateLimits struct {
	meals     int64
	exercises int64
	weights   int64
}

// rosterLimits is the bounded window used for each client on a trainer's
// roster: the ten most recent meal and exercise logs and the five most
// recent weight logs.
var rosterLimits = aggregateLimits{meals: 10, exercises: 10, weights: 5}

// clientAggregate holds the five fetched record streams. Each slot is
// written by exactly one goroutine.
type clientAggregate struct {
	dietPlans     []domain.DietPlanEntry
	mealLogs      []domain.MealLog
	exerciseLogs  []domain.ExerciseLog
	weightLogs    []domain.WeightLog
	trainingPlans []domain.TrainingPlanEntry
}

// recordFetcher runs the concurrent five-way fetch shared by the client
// dashboard and the trainer roster.
type recordFetcher struct {
	dietPlanRepo     repository.DietPlanRepository
	mealLogRepo      repository.MealLogRepository
	exerciseLogRepo  repository.ExerciseLogRepository
	weightLogRepo    repository.WeightLogRepository
	trainingPlanRepo repository.TrainingPlanRepository
	log              *logger.Logger
}

// fetch loads the five record streams concurrently, each ordered
// newest-first by its own timestamp field. A failed fetch for one collection
// is logged and its slot left empty; it never aborts the other four.
func (f *recordFetcher) fetch(ctx context.Context, clientID primitive.ObjectID, limits aggregateLimits) clientAggregate {
	var agg clientAggregate
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		entries, err := f.dietPlanRepo.GetByClientID(ctx, clientID, 0)
		if err != nil {
			f.log.Warnw("diet plan fetch failed, treating as empty", "clientId", clientID.Hex(), "error", err)
			return
		}
		agg.dietPlans = entries
	}()
	go func() {
		defer wg.Done()
		logs, err := f.mealLogRepo.GetByClientID(ctx, clientID, limits.meals)
		if err != nil {
			f.log.Warnw("meal log fetch failed, treating as empty", "clientId", clientID.Hex(), "error", err)
			return
		}
		agg.mealLogs = logs
	}()
	go func() {
		defer wg.Done()
		logs, err := f.exerciseLogRepo.GetByClientID(ctx, clientID, limits.exercises)
		if err != nil {
			f.log.Warnw("exercise log fetch failed, treating as empty", "clientId", clientID.Hex(), "error", err)
			return
		}
		agg.exerciseLogs = logs
	}()
	go func() {
		defer wg.Done()
		logs, err := f.weightLogRepo.GetByClientID(ctx, clientID, limits.weights)
		if err != nil {
			f.log.Warnw("weight log fetch failed, treating as empty", "clientId", clientID.Hex(), "error", err)
			return
		}
		agg.weightLogs = logs
	}()
	go func() {
		defer wg.Done()
		entries, err := f.trainingPlanRepo.GetByClientID(ctx, clientID, 0)
		if err != nil {
			f.log.Warnw("training plan fetch failed, treating as empty", "clientId", clientID.Hex(), "error", err)
			return
		}
		agg.trainingPlans = entries
	}()

	wg.Wait()

	// Never hand nil slices to the API layer; empty renders as [].
	if agg.dietPlans == nil {
		agg.dietPlans = []domain.DietPlanEntry{}
	}
	if agg.mealLogs == nil {
		agg.mealLogs = []domain.MealLog{}
	}
	if agg.exerciseLogs == nil {
		agg.exerciseLogs = []domain.ExerciseLog{}
	}
	if agg.weightLogs == nil {
		agg.weightLogs = []domain.WeightLog{}
	}
	if agg.trainingPlans == nil {
		agg.trainingPlans = []domain.TrainingPlanEntry{}
	}
	return agg
}
