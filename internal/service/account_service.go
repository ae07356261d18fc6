package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/intervalsicu"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/repository"
)

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrInvalidProviderCredentials = errors.New("invalid intervals.icu credentials")
)

// ConnectionStatus describes the current state of a user's intervals.icu
// link as seen right now, not just as stored.
type ConnectionStatus struct {
	Connected   bool
	AthleteID   string
	AthleteName string
}

// AccountService manages the user's link to intervals.icu.
type AccountService interface {
	Connect(ctx context.Context, userID primitive.ObjectID, athleteID, apiKey string) (athleteName string, err error)
	Disconnect(ctx context.Context, userID primitive.ObjectID) error
	Status(ctx context.Context, userID primitive.ObjectID) (ConnectionStatus, error)
}

type accountService struct {
	userRepo  repository.UserRepository
	intervals intervalsicu.API
}

// NewAccountService creates a new instance of accountService.
func NewAccountService(userRepo repository.UserRepository, intervals intervalsicu.API) AccountService {
	return &accountService{
		userRepo:  userRepo,
		intervals: intervals,
	}
}

// Connect validates the credentials against intervals.icu and only then
// persists them. A rejected credential pair never reaches storage.
func (s *accountService) Connect(ctx context.Context, userID primitive.ObjectID, athleteID, apiKey string) (string, error) {
	_, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	athlete, err := s.intervals.GetAthlete(ctx, athleteID, apiKey)
	if err != nil {
		if errors.Is(err, intervalsicu.ErrInvalidCredentials) {
			return "", ErrInvalidProviderCredentials
		}
		return "", err
	}

	if err := s.userRepo.SetProviderLink(ctx, userID, athleteID, apiKey); err != nil {
		return "", err
	}

	return athlete.Name, nil
}

// Disconnect clears the stored link. Disconnecting an account that is not
// connected succeeds silently.
func (s *accountService) Disconnect(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.userRepo.ClearProviderLink(ctx, userID)
}

// Status reports current reachability of the stored link. A provider
// rejection is reported as connected:false but the stored credentials are
// kept; status is a query, not a cleanup command.
func (s *accountService) Status(ctx context.Context, userID primitive.ObjectID) (ConnectionStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ConnectionStatus{}, ErrUserNotFound
		}
		return ConnectionStatus{}, err
	}

	if !user.IsProviderConnected() {
		return ConnectionStatus{Connected: false}, nil
	}

	athlete, err := s.intervals.GetAthlete(ctx, *user.IntervalsAthleteID, *user.IntervalsAPIKey)
	if err != nil {
		return ConnectionStatus{
			Connected: false,
			AthleteID: *user.IntervalsAthleteID,
		}, nil
	}

	return ConnectionStatus{
		Connected:   true,
		AthleteID:   *user.IntervalsAthleteID,
		AthleteName: athlete.Name,
	}, nil
}
