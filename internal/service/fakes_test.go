package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/domain"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/intervalsicu"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/repository"
)

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) SetProviderLink(_ context.Context, id primitive.ObjectID, athleteID, apiKey string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IntervalsAthleteID = &athleteID
	user.IntervalsAPIKey = &apiKey
	return nil
}

func (r *fakeUserRepo) ClearProviderLink(_ context.Context, id primitive.ObjectID) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IntervalsAthleteID = nil
	user.IntervalsAPIKey = nil
	return nil
}

// mustCreate seeds a user directly into the fake store.
func (r *fakeUserRepo) mustCreate(user domain.User) primitive.ObjectID {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = &user
	return user.ID
}

// fakeIntervals is a canned intervalsicu.API that records the credentials
// and date window it was called with.
type fakeIntervals struct {
	athlete    intervalsicu.Athlete
	athleteErr error
	events     []intervalsicu.Event
	eventsErr  error

	gotAthleteID string
	gotAPIKey    string
	gotOldest    time.Time
	gotNewest    time.Time
}

func (f *fakeIntervals) GetAthlete(_ context.Context, athleteID, apiKey string) (intervalsicu.Athlete, error) {
	f.gotAthleteID = athleteID
	f.gotAPIKey = apiKey
	if f.athleteErr != nil {
		return intervalsicu.Athlete{}, f.athleteErr
	}
	return f.athlete, nil
}

func (f *fakeIntervals) ListEvents(_ context.Context, athleteID, apiKey string, oldest, newest time.Time) ([]intervalsicu.Event, error) {
	f.gotAthleteID = athleteID
	f.gotAPIKey = apiKey
	f.gotOldest = oldest
	f.gotNewest = newest
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

func strPtr(s string) *string { return &s }
