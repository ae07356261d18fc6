package domain

import (
	"math"
	"time"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/intervalsicu"
)

// IntervalType classifies a workout segment by its role.
type IntervalType string

const (
	IntervalWarmup   IntervalType = "WARMUP"
	IntervalWork     IntervalType = "WORK"
	IntervalRest     IntervalType = "REST"
	IntervalCooldown IntervalType = "COOLDOWN"
)

// Fallback labels for events that arrive without a name or activity type.
const (
	DefaultWorkoutName  = "Untitled Workout"
	DefaultActivityType = "Ride"
)

// WorkoutInterval is one typed segment of a derived workout. Intervals are
// built exclusively by IntervalFromStep and never mutated afterwards.
type WorkoutInterval struct {
	DurationSeconds int
	Type            IntervalType
	PowerTarget     *PowerTarget
	Description     string
}

// Workout is the aggregate derived from one intervals.icu calendar event.
// It is built fresh per request and never persisted; interval order is the
// source step order, which is playback order.
type Workout struct {
	Name            string
	ScheduledDate   time.Time
	ActivityType    string
	DurationMinutes int
	Intervals       []WorkoutInterval
	Description     string
}

// powerTargetRules are tried in order against a step's power spec; the first
// rule that applies builds the target. A spec matching no rule (for example a
// ramp with only one endpoint present) yields no target at all.
var powerTargetRules = []func(step intervalsicu.Step) (PowerTarget, bool){
	// ramp flag with both endpoints
	func(step intervalsicu.Step) (PowerTarget, bool) {
		if step.Ramp && step.Power.Start != nil && step.Power.End != nil {
			return RampTarget(*step.Power.Start, *step.Power.End), true
		}
		return PowerTarget{}, false
	},
	// both endpoints without the ramp flag
	func(step intervalsicu.Step) (PowerTarget, bool) {
		if step.Power.Start != nil && step.Power.End != nil {
			return RangeTarget(*step.Power.Start, *step.Power.End), true
		}
		return PowerTarget{}, false
	},
	// single fixed value
	func(step intervalsicu.Step) (PowerTarget, bool) {
		if step.Power.Value != nil {
			return FixedTarget(*step.Power.Value), true
		}
		return PowerTarget{}, false
	},
}

func buildPowerTarget(step intervalsicu.Step) *PowerTarget {
	if step.Power == nil {
		return nil
	}
	for _, rule := range powerTargetRules {
		if target, ok := rule(step); ok {
			return &target
		}
	}
	return nil
}

// intensityBands classify a representative power percent into an interval
// type. Bands are checked in order; the first whose upper bound admits the
// value wins, and anything above the last band is WORK.
var intensityBands = []struct {
	max    float64
	strict bool // value must be strictly below max
	typ    IntervalType
}{
	{max: 55, typ: IntervalRest},
	{max: 75, typ: IntervalWarmup},
	{max: 88, strict: true, typ: IntervalCooldown},
}

func classifyIntensity(percent float64) IntervalType {
	for _, band := range intensityBands {
		if percent < band.max || (!band.strict && percent == band.max) {
			return band.typ
		}
	}
	return IntervalWork
}

func inferIntervalType(target *PowerTarget) IntervalType {
	if target != nil && target.IsRamp() {
		if target.IsAscending() {
			return IntervalWarmup
		}
		return IntervalCooldown
	}

	percent := 0.0
	if target != nil {
		percent = target.Value()
	}
	return classifyIntensity(percent)
}

// IntervalFromStep converts one provider workout step into a typed interval.
// It is total: every step, however malformed, produces exactly one interval.
func IntervalFromStep(step intervalsicu.Step) WorkoutInterval {
	target := buildPowerTarget(step)

	duration := 0
	if step.Duration != nil {
		duration = *step.Duration
	}

	return WorkoutInterval{
		DurationSeconds: duration,
		Type:            inferIntervalType(target),
		PowerTarget:     target,
		Description:     step.Text,
	}
}

// start_date_local arrives as a naive local timestamp; no zone conversion is
// applied beyond parsing.
var scheduledDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseScheduledDate(s string) time.Time {
	for _, layout := range scheduledDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// WorkoutFromEvent converts one intervals.icu calendar event into a Workout.
// Duration prefers the recorded moving time over the planned document
// duration; an event without steps yields an empty interval sequence.
func WorkoutFromEvent(event intervalsicu.Event) Workout {
	minutes := 0
	switch {
	case event.MovingTime != nil && *event.MovingTime != 0:
		minutes = int(math.Round(float64(*event.MovingTime) / 60))
	case event.WorkoutDoc != nil && event.WorkoutDoc.Duration != nil:
		minutes = int(math.Round(float64(*event.WorkoutDoc.Duration) / 60))
	}

	var intervals []WorkoutInterval
	if event.WorkoutDoc != nil {
		intervals = make([]WorkoutInterval, 0, len(event.WorkoutDoc.Steps))
		for _, step := range event.WorkoutDoc.Steps {
			intervals = append(intervals, IntervalFromStep(step))
		}
	}

	name := event.Name
	if name == "" {
		name = DefaultWorkoutName
	}
	activityType := event.Type
	if activityType == "" {
		activityType = DefaultActivityType
	}

	return Workout{
		Name:            name,
		ScheduledDate:   parseScheduledDate(event.StartDateLocal),
		ActivityType:    activityType,
		DurationMinutes: minutes,
		Intervals:       intervals,
		Description:     event.Description,
	}
}
