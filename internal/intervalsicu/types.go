package intervalsicu

// Wire types for the intervals.icu v1 API. Optional numeric fields are
// pointers so that "absent" and "zero" stay distinguishable after decoding.

// StepPower is the power instruction of a single workout step, expressed in
// percent of FTP. A fixed target carries Value; a range or ramp carries
// Start and End.
type StepPower struct {
	Value *float64 `json:"value,omitempty"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	Units string   `json:"units,omitempty"`
}

// Step is one segment of a provider-authored workout document.
type Step struct {
	Duration *int       `json:"duration,omitempty"`
	Ramp     bool       `json:"ramp,omitempty"`
	Power    *StepPower `json:"power,omitempty"`
	Text     string     `json:"text,omitempty"`
}

// WorkoutDoc is the structured workout attached to a calendar event.
type WorkoutDoc struct {
	Steps    []Step `json:"steps,omitempty"`
	Duration *int   `json:"duration,omitempty"`
}

// Event is one intervals.icu calendar entry.
type Event struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description,omitempty"`
	StartDateLocal string      `json:"start_date_local"`
	Type           string      `json:"type"`
	Category       string      `json:"category"`
	MovingTime     *int        `json:"moving_time,omitempty"`
	WorkoutDoc     *WorkoutDoc `json:"workout_doc,omitempty"`
}

// Athlete identifies an intervals.icu account.
type Athlete struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
