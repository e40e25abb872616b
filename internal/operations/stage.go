package operations

import (
	"time"
)

// StepStatus represents the current status of a Step
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState records one executed step of a run
type StepState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Entity    string     `json:"entity,omitempty"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Message   string     `json:"message,omitempty"`
	// Output is the file the step wrote, if any
	Output string `json:"output,omitempty"`
	Error  error  `json:"-"`
}

// NewStepState creates a pending step
func NewStepState(id, name, entity string) *StepState {
	return &StepState{
		ID:     id,
		Name:   name,
		Entity: entity,
		Status: StepStatusPending,
	}
}

// Start marks the Step as active and sets the start time
func (s *StepState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
}

// Complete marks the Step as completed with the file it produced
func (s *StepState) Complete(output string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
	s.Output = output
}

// Fail marks the Step as failed with the given error
func (s *StepState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
	s.Message = err.Error()
}

// Skip marks the Step as skipped with the given reason
func (s *StepState) Skip(reason string) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusSkipped
	s.Message = reason
}

// Duration returns the duration of the Step execution
func (s *StepState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// RunSummary lists the steps of one run in execution order
type RunSummary struct {
	RunID     string       `json:"run_id"`
	Input     string       `json:"input"`
	OutputDir string       `json:"output_dir"`
	Steps     []*StepState `json:"steps"`
}

// Outputs returns the files written by the run, in order
func (r *RunSummary) Outputs() []string {
	var out []string
	for _, s := range r.Steps {
		if s.Output != "" {
			out = append(out, s.Output)
		}
	}
	return out
}

// Count returns the number of steps with the given status
func (r *RunSummary) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}

// Step returns the step with the given ID, or nil
func (r *RunSummary) Step(id string) *StepState {
	for _, s := range r.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}
