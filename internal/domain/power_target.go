package domain

import "math"

// PowerTarget is an immutable power intensity goal, expressed in percent of
// FTP. It is either a fixed percentage, a range, or a ramp from a start to an
// end value. Construction is the only way to set its fields.
type PowerTarget struct {
	value float64
	start *float64
	end   *float64
	ramp  bool
}

// FixedTarget builds a target at a single percentage.
func FixedTarget(percent float64) PowerTarget {
	return PowerTarget{value: percent}
}

// RangeTarget builds a target spanning [start, end].
func RangeTarget(start, end float64) PowerTarget {
	return PowerTarget{
		value: math.Round((start + end) / 2),
		start: &start,
		end:   &end,
	}
}

// RampTarget builds a target that moves linearly from start to end over the
// owning interval's duration.
func RampTarget(start, end float64) PowerTarget {
	t := RangeTarget(start, end)
	t.ramp = true
	return t
}

// Value is the representative percent: the given percentage for a fixed
// target, the rounded midpoint for a range or ramp.
func (t PowerTarget) Value() float64 { return t.value }

// Start returns the range start, if the target has one.
func (t PowerTarget) Start() (float64, bool) {
	if t.start == nil {
		return 0, false
	}
	return *t.start, true
}

// End returns the range end, if the target has one.
func (t PowerTarget) End() (float64, bool) {
	if t.end == nil {
		return 0, false
	}
	return *t.end, true
}

func (t PowerTarget) IsRamp() bool { return t.ramp }

// IsAscending reports whether the target climbs from start to end. It is
// always false for fixed targets.
func (t PowerTarget) IsAscending() bool {
	if t.start == nil || t.end == nil {
		return false
	}
	return *t.start < *t.end
}
