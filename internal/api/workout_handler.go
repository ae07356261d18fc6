package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/domain"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/service"
	"github.com/LouisFontaine/ai-cycling-trainer/internal/training"
)

// WorkoutHandler exposes the derived-workout endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type WorkoutIntervalResponse struct {
	DurationSeconds    int      `json:"durationSeconds"`
	Type               string   `json:"type"`
	PowerTargetPercent *float64 `json:"powerTargetPercent,omitempty"`
	PowerStartPercent  *float64 `json:"powerStartPercent,omitempty"`
	PowerEndPercent    *float64 `json:"powerEndPercent,omitempty"`
	IsRamp             bool     `json:"isRamp"`
	Color              string   `json:"color,omitempty"`
	Description        string   `json:"description,omitempty"`
}

type NextWorkoutResponse struct {
	Name            string                    `json:"name"`
	ScheduledDate   time.Time                 `json:"scheduledDate"`
	Type            string                    `json:"type"`
	DurationMinutes int                       `json:"durationMinutes"`
	Intervals       []WorkoutIntervalResponse `json:"intervals"`
	Description     string                    `json:"description,omitempty"`
}

// Next returns the next planned workout, or a JSON null body when the
// calendar is empty.
func (h *WorkoutHandler) Next(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to get user ID from token")
		return
	}

	workout, err := h.workoutService.NextWorkout(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, codeUserNotFound, err.Error())
		case errors.Is(err, service.ErrProviderNotConnected):
			abortWithError(c, http.StatusUnprocessableEntity, codeNotConnected,
				"Connect your intervals.icu account to see planned workouts.")
		default:
			abortWithError(c, http.StatusBadGateway, codeProviderFailure, "Could not reach intervals.icu")
		}
		return
	}

	if workout == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, mapWorkoutToResponse(workout))
}

func mapWorkoutToResponse(workout *domain.Workout) NextWorkoutResponse {
	intervals := make([]WorkoutIntervalResponse, 0, len(workout.Intervals))
	for _, interval := range workout.Intervals {
		intervals = append(intervals, mapIntervalToResponse(interval))
	}

	return NextWorkoutResponse{
		Name:            workout.Name,
		ScheduledDate:   workout.ScheduledDate,
		Type:            workout.ActivityType,
		DurationMinutes: workout.DurationMinutes,
		Intervals:       intervals,
		Description:     workout.Description,
	}
}

func mapIntervalToResponse(interval domain.WorkoutInterval) WorkoutIntervalResponse {
	resp := WorkoutIntervalResponse{
		DurationSeconds: interval.DurationSeconds,
		Type:            string(interval.Type),
		Description:     interval.Description,
	}

	target := interval.PowerTarget
	if target == nil {
		return resp
	}

	value := target.Value()
	resp.PowerTargetPercent = &value
	resp.IsRamp = target.IsRamp()
	resp.Color = training.ZoneColorForPercent(value)

	if start, ok := target.Start(); ok {
		resp.PowerStartPercent = &start
	}
	if end, ok := target.End(); ok {
		resp.PowerEndPercent = &end
	}

	return resp
}
