package task

import (
	"errors"

	"github.com/google/uuid"
)

// ErrEpisodeEnded is returned when step is called on an absorbed episode.
// The episode stays absorbed; only a reset recovers.
var ErrEpisodeEnded = errors.New("episode has ended, reset required")

// Phase is the episode lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhaseTerminated
	PhaseTruncated
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	case PhaseTruncated:
		return "truncated"
	}
	return "unknown"
}

// EpisodeState tracks one episode's lifecycle. Created at reset, mutated
// once per step, discarded at the next reset.
type EpisodeState struct {
	ID        string
	StepCount int
	MaxSteps  int
	Phase     Phase

	// AltitudeStageUnlocked is the sequential-shaping stage flag. Owned
	// here rather than inside the shaper so concurrent tasks never share it.
	AltitudeStageUnlocked bool
}

// NewEpisode returns a fresh READY episode with a unique ID.
func NewEpisode(maxSteps int) *EpisodeState {
	return &EpisodeState{
		ID:       uuid.New().String(),
		MaxSteps: maxSteps,
		Phase:    PhaseReady,
	}
}

// StepsRemaining reports the remaining step budget.
func (e *EpisodeState) StepsRemaining() int {
	if e.StepCount >= e.MaxSteps {
		return 0
	}
	return e.MaxSteps - e.StepCount
}

// Absorbed reports whether the episode has reached a terminal phase.
// Terminated and truncated are both absorbing.
func (e *EpisodeState) Absorbed() bool {
	return e.Phase == PhaseTerminated || e.Phase == PhaseTruncated
}
