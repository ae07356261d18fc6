package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/domain"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/intervalsicu"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/repository"
)

var ErrProviderNotConnected = errors.New("intervals.icu account not connected")

// How far ahead the calendar is scanned for the next planned workout.
const nextWorkoutWindow = 30 * 24 * time.Hour

// WorkoutService derives workouts from the user's intervals.icu calendar.
type WorkoutService interface {
	// NextWorkout returns the next planned workout, or nil if the calendar
	// has none in the coming window.
	NextWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error)
}

type workoutService struct {
	userRepo  repository.UserRepository
	intervals intervalsicu.API
	now       func() time.Time
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(userRepo repository.UserRepository, intervals intervalsicu.API) WorkoutService {
	return &workoutService{
		userRepo:  userRepo,
		intervals: intervals,
		now:       time.Now,
	}
}

func (s *workoutService) NextWorkout(ctx context.Context, userID primitive.ObjectID) (*domain.Workout, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsProviderConnected() {
		return nil, ErrProviderNotConnected
	}

	today := s.now()
	events, err := s.intervals.ListEvents(
		ctx,
		*user.IntervalsAthleteID,
		*user.IntervalsAPIKey,
		today,
		today.Add(nextWorkoutWindow),
	)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	// the provider returns events in calendar order; the first one is next
	workout := domain.WorkoutFromEvent(events[0])
	return &workout, nil
}
