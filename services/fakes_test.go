package services

import (
	"context"
	"errors"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/store"
)

// fakeCollaborator scripts collaborator responses per call
type fakeCollaborator struct {
	translateFn func(ctx context.Context, text string, target model.Language) (string, error)
	generateFn  func(ctx context.Context, title, description string, lang model.Language) (*model.Exercise, error)
	evaluateFn  func(ctx context.Context, exercise *model.Exercise, answer string, lang model.Language) (*model.GradeResult, error)
	tutorFn     func(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error)

	translateCalls int
	generateCalls  int
	evaluateCalls  int
	tutorCalls     int
}

var errFakeUnavailable = errors.New("collaborator unavailable")

func (f *fakeCollaborator) Translate(ctx context.Context, text string, target model.Language) (string, error) {
	f.translateCalls++
	if f.translateFn == nil {
		return "[" + string(target) + "] " + text, nil
	}
	return f.translateFn(ctx, text, target)
}

func (f *fakeCollaborator) GenerateExercise(ctx context.Context, title, description string, lang model.Language) (*model.Exercise, error) {
	f.generateCalls++
	if f.generateFn == nil {
		return &model.Exercise{
			ID:       "ex-1",
			Question: "What is 2+2?",
			Type:     model.ExerciseOpenEnded,
		}, nil
	}
	return f.generateFn(ctx, title, description, lang)
}

func (f *fakeCollaborator) EvaluateExercise(ctx context.Context, exercise *model.Exercise, answer string, lang model.Language) (*model.GradeResult, error) {
	f.evaluateCalls++
	if f.evaluateFn == nil {
		return &model.GradeResult{Score: 100, Feedback: "Correct", IsCorrect: true}, nil
	}
	return f.evaluateFn(ctx, exercise, answer, lang)
}

func (f *fakeCollaborator) TutorReply(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error) {
	f.tutorCalls++
	if f.tutorFn == nil {
		return "reply", nil
	}
	return f.tutorFn(ctx, history, lang)
}

// failingKV wraps a KV and fails writes on demand
type failingKV struct {
	store.KV
	failWrites bool
}

var errKVWrite = errors.New("kv write failed")

func (f *failingKV) Set(ctx context.Context, key string, value string) error {
	if f.failWrites {
		return errKVWrite
	}
	return f.KV.Set(ctx, key, value)
}

func (f *failingKV) SetJSON(ctx context.Context, key string, value interface{}) error {
	if f.failWrites {
		return errKVWrite
	}
	return f.KV.SetJSON(ctx, key, value)
}
