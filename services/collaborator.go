package services

import (
	"context"

	"github.com/CHYou2Sef/BridgeEd/model"
)

// Collaborator is the request/response boundary to the generative-language
// model backend. Each call is a single round trip; the collaborator holds no
// session state, and the language is passed explicitly every call.
type Collaborator interface {
	Translate(ctx context.Context, text string, target model.Language) (string, error)
	GenerateExercise(ctx context.Context, title, description string, lang model.Language) (*model.Exercise, error)
	EvaluateExercise(ctx context.Context, exercise *model.Exercise, answer string, lang model.Language) (*model.GradeResult, error)
	TutorReply(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error)
}
