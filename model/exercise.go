package model

import "fmt"

// ExerciseType is the kind of generated exercise
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple-choice"
	ExerciseOpenEnded      ExerciseType = "open-ended"
)

// Exercise is one practice question produced by the collaborator.
// It is consumed exactly once per practice session.
type Exercise struct {
	ID            string       `json:"id"`
	Question      string       `json:"question"`
	Type          ExerciseType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
}

// Validate rejects payloads with an unknown type or a multiple-choice
// question without options. The collaborator payload is never trusted blindly.
func (e *Exercise) Validate() error {
	if e.Question == "" {
		return fmt.Errorf("exercise has no question")
	}
	switch e.Type {
	case ExerciseOpenEnded:
	case ExerciseMultipleChoice:
		if len(e.Options) == 0 {
			return fmt.Errorf("multiple-choice exercise has no options")
		}
	default:
		return fmt.Errorf("unknown exercise type %q", e.Type)
	}
	return nil
}

// GradeMetadata carries optional latency and size information for a grade
type GradeMetadata struct {
	ProcessingTime int64 `json:"processing_time"` // milliseconds
	Tokens         int   `json:"tokens"`
}

// GradeResult is the collaborator's evaluation of a submitted answer.
// It is terminal for its practice session until a new exercise is fetched.
type GradeResult struct {
	Score     float64        `json:"score"` // 0 to 100
	Feedback  string         `json:"feedback"`
	IsCorrect bool           `json:"is_correct"`
	Metadata  *GradeMetadata `json:"metadata,omitempty"`
}

// ClampScore forces the score into the [0,100] range
func (g *GradeResult) ClampScore() {
	if g.Score < 0 {
		g.Score = 0
	}
	if g.Score > 100 {
		g.Score = 100
	}
}
