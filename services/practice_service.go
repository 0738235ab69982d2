package services

import (
	"context"
	"strings"
	"sync"

	"github.com/CHYou2Sef/BridgeEd/model"
)

// PracticeState is the lifecycle state of one practice attempt
type PracticeState string

const (
	StateIdle       PracticeState = "idle"
	StateLoading    PracticeState = "loading"
	StateSubmitting PracticeState = "submitting"
	StateReady      PracticeState = "ready"
	StateGraded     PracticeState = "graded"
)

// practiceSession covers one practice attempt for one course: fetch an
// exercise, collect an answer, submit for grading, display the result,
// optionally advance. Exactly one collaborator request may be in flight.
type practiceSession struct {
	courseID string
	lang     model.Language
	state    PracticeState
	exercise *model.Exercise
	answer   string
	result   *model.GradeResult
	epoch    uint64
	inFlight bool
}

// PracticeView is a read-only snapshot of a practice session
type PracticeView struct {
	CourseID string             `json:"course_id"`
	State    PracticeState      `json:"state"`
	Exercise *model.Exercise    `json:"exercise,omitempty"`
	Answer   string             `json:"answer,omitempty"`
	Result   *model.GradeResult `json:"result,omitempty"`
}

// PracticeService manages practice sessions, one per course id. Requests
// issued while another is pending are rejected, never queued, and a
// response arriving after the session was closed or restarted is discarded
// instead of being applied to stale state.
type PracticeService struct {
	mu       sync.Mutex
	gateway  *GatewayService
	catalog  *CatalogService
	sessions map[string]*practiceSession
}

// NewPracticeService creates a practice service
func NewPracticeService(gateway *GatewayService, catalog *CatalogService) *PracticeService {
	return &PracticeService{
		gateway:  gateway,
		catalog:  catalog,
		sessions: make(map[string]*practiceSession),
	}
}

func (p *PracticeService) session(courseID string) *practiceSession {
	sess, ok := p.sessions[courseID]
	if !ok {
		sess = &practiceSession{courseID: courseID, state: StateIdle}
		p.sessions[courseID] = sess
	}
	return sess
}

// Start fetches a new exercise for the course and enters the ready state.
// On collaborator failure the session stays recoverable: a retry is another
// Start call.
func (p *PracticeService) Start(ctx context.Context, courseID string, lang model.Language) (*model.Exercise, error) {
	course, ok := p.catalog.Course(courseID)
	if !ok {
		return nil, model.ErrUnknownCourse
	}

	p.mu.Lock()
	sess := p.session(courseID)
	if sess.inFlight {
		p.mu.Unlock()
		return nil, model.ErrRequestInFlight
	}
	sess.inFlight = true
	sess.state = StateLoading
	sess.lang = lang
	sess.exercise = nil
	sess.answer = ""
	sess.result = nil
	sess.epoch++
	epoch := sess.epoch
	p.mu.Unlock()

	exercise, err := p.gateway.FetchPersonalizedExercise(ctx, course, lang)

	p.mu.Lock()
	defer p.mu.Unlock()
	sess.inFlight = false

	if sess.epoch != epoch {
		// The session was closed while the request was pending. Discard.
		return nil, model.ErrSessionClosed
	}

	if err != nil {
		sess.state = StateIdle
		return nil, err
	}

	sess.state = StateReady
	sess.exercise = exercise
	return exercise, nil
}

// SetAnswer stores the candidate answer. Only valid while an exercise is
// awaiting submission; a no-op in any other state.
func (p *PracticeService) SetAnswer(courseID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, ok := p.sessions[courseID]
	if !ok {
		return model.ErrInvalidState
	}
	if sess.state != StateReady {
		return nil
	}
	sess.answer = text
	return nil
}

// Submit sends the stored answer for grading. Requires the ready state and a
// non-empty answer; the empty-answer check happens before any collaborator
// contact. On failure the session returns to ready with the answer intact so
// the same answer can be resubmitted.
func (p *PracticeService) Submit(ctx context.Context, courseID string) (*model.GradeResult, error) {
	p.mu.Lock()
	sess, ok := p.sessions[courseID]
	if !ok {
		p.mu.Unlock()
		return nil, model.ErrInvalidState
	}
	if sess.state != StateReady {
		err := model.ErrInvalidState
		if sess.state == StateSubmitting {
			err = model.ErrRequestInFlight
		}
		p.mu.Unlock()
		return nil, err
	}
	if strings.TrimSpace(sess.answer) == "" {
		p.mu.Unlock()
		return nil, model.ErrEmptyAnswer
	}

	sess.state = StateSubmitting
	sess.inFlight = true
	exercise := sess.exercise
	answer := sess.answer
	lang := sess.lang
	epoch := sess.epoch
	p.mu.Unlock()

	result, err := p.gateway.SubmitGrading(ctx, exercise, answer, lang)

	p.mu.Lock()
	defer p.mu.Unlock()
	sess.inFlight = false

	if sess.epoch != epoch {
		return nil, model.ErrSessionClosed
	}

	if err != nil {
		sess.state = StateReady
		return nil, err
	}

	sess.state = StateGraded
	sess.result = result
	return result, nil
}

// Next discards the graded result and fetches a fresh exercise. Only valid
// after grading.
func (p *PracticeService) Next(ctx context.Context, courseID string) (*model.Exercise, error) {
	p.mu.Lock()
	sess, ok := p.sessions[courseID]
	if !ok || sess.state != StateGraded {
		p.mu.Unlock()
		return nil, model.ErrInvalidState
	}
	lang := sess.lang
	p.mu.Unlock()

	return p.Start(ctx, courseID, lang)
}

// Close abandons the session. A collaborator response still in flight will
// find the epoch advanced and discard itself.
func (p *PracticeService) Close(courseID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, ok := p.sessions[courseID]
	if !ok {
		return
	}
	sess.epoch++
	sess.state = StateIdle
	sess.exercise = nil
	sess.answer = ""
	sess.result = nil
}

// View returns a snapshot of the session for display
func (p *PracticeService) View(courseID string) (PracticeView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sess, ok := p.sessions[courseID]
	if !ok {
		return PracticeView{CourseID: courseID, State: StateIdle}, nil
	}
	return PracticeView{
		CourseID: sess.courseID,
		State:    sess.state,
		Exercise: sess.exercise,
		Answer:   sess.answer,
		Result:   sess.result,
	}, nil
}
