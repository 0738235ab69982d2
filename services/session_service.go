package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/store"
	"github.com/CHYou2Sef/BridgeEd/utils/auth"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

// SessionKey is the fixed storage key for the persisted session record
const SessionKey = "bridge_ed_session"

const (
	signInDelay = 800 * time.Millisecond
	signUpDelay = 1000 * time.Millisecond
)

// ProgressPerCorrectAnswer is the progress awarded for a correctly graded exercise
const ProgressPerCorrectAnswer = 10

// SessionService owns the authenticated user record for the lifetime of one
// session and mirrors it to the KV store. There is no credential backend:
// sign-in fabricates the user record and only fails on storage errors.
//
// Every ledger mutation is atomic with its persistence write: the candidate
// record is persisted first and swapped into memory only on success, so the
// two views never diverge.
type SessionService struct {
	mu      sync.Mutex
	kv      store.KV
	clock   clock.Clock
	tokens  *auth.TokenManager
	catalog *CatalogService
	current *model.AuthSession
}

// NewSessionService creates a session service over the given store
func NewSessionService(kv store.KV, clk clock.Clock, tokens *auth.TokenManager, catalog *CatalogService) *SessionService {
	return &SessionService{
		kv:      kv,
		clock:   clk,
		tokens:  tokens,
		catalog: catalog,
	}
}

// Restore loads the persisted session into memory. A missing or malformed
// record means signed-out: Restore returns (nil, nil) and never fails on
// corrupt data.
func (s *SessionService) Restore(ctx context.Context) (*model.AuthSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var session model.AuthSession
	err := s.kv.GetJSON(ctx, SessionKey, &session)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.current = nil
			return nil, nil
		}
		if isJSONDecodingError(err) {
			log.Printf("[session] discarding corrupt session record: %v", err)
			s.current = nil
			return nil, nil
		}
		return nil, err
	}

	if session.User == nil {
		s.current = nil
		return nil, nil
	}

	s.current = &session
	return s.cloneCurrent(), nil
}

// SignIn fabricates a user record for the email and persists the session.
// Any email signs in; there is no identity provider. The call simulates the
// original network delay through the injected clock.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*model.AuthSession, error) {
	_ = password // accepted but never verified

	s.clock.Sleep(ctx, signInDelay)

	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}

	return s.establish(ctx, email, name, model.TierFree)
}

// SignUp fabricates a user record with the chosen name and tier and persists
// the session
func (s *SessionService) SignUp(ctx context.Context, email, name string, tier model.SubscriptionTier) (*model.AuthSession, error) {
	if !tier.IsValid() {
		tier = model.TierFree
	}

	s.clock.Sleep(ctx, signUpDelay)

	return s.establish(ctx, email, name, tier)
}

func (s *SessionService) establish(ctx context.Context, email, name string, tier model.SubscriptionTier) (*model.AuthSession, error) {
	user := &model.User{
		ID:       uuid.New().String(),
		Email:    email,
		Name:     name,
		Tier:     tier,
		Enrolled: []model.Enrollment{},
	}

	token, err := s.tokens.MintSessionToken(user, s.clock.Now())
	if err != nil {
		return nil, err
	}

	session := &model.AuthSession{User: user, Token: token}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.SetJSON(ctx, SessionKey, session); err != nil {
		return nil, err
	}
	s.current = session

	return s.cloneCurrent(), nil
}

// SignOut clears the persisted session. Signing out twice is a no-op.
func (s *SessionService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, SessionKey); err != nil {
		return err
	}
	s.current = nil
	return nil
}

// Current returns a copy of the active session, or nil when signed out
func (s *SessionService) Current() *model.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneCurrent()
}

// UpdateUser overwrites the persisted user record. Callers supply the full
// record; partial writes are not possible through this path.
func (s *SessionService) UpdateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}
	return s.commit(ctx, user.Clone())
}

// Enroll inserts a ledger entry for a catalog course. Enrolling in an
// already-enrolled course is a no-op.
func (s *SessionService) Enroll(ctx context.Context, courseID string) error {
	if _, ok := s.catalog.Course(courseID); !ok {
		return model.ErrUnknownCourse
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}

	next := s.current.User.Clone()
	if !next.Enroll(courseID) {
		return nil
	}
	return s.commit(ctx, next)
}

// Unenroll removes the ledger entry if present; otherwise a no-op
func (s *SessionService) Unenroll(ctx context.Context, courseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}

	next := s.current.User.Clone()
	if !next.Unenroll(courseID) {
		return nil
	}
	return s.commit(ctx, next)
}

// SetProgress sets the progress for an enrolled course, clamped to [0,100]
func (s *SessionService) SetProgress(ctx context.Context, courseID string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}

	next := s.current.User.Clone()
	if err := next.SetProgress(courseID, value); err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// SetDueDate sets the due date for an enrolled course. The mutation is
// rejected with ErrNotEnrolled when no ledger entry exists.
func (s *SessionService) SetDueDate(ctx context.Context, courseID string, due *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}

	next := s.current.User.Clone()
	if err := next.SetDueDate(courseID, due); err != nil {
		return err
	}
	return s.commit(ctx, next)
}

// RecordPracticeResult advances course progress and stats after a correctly
// graded exercise. Incorrect results leave the record untouched.
func (s *SessionService) RecordPracticeResult(ctx context.Context, courseID string, result *model.GradeResult) error {
	if result == nil || !result.IsCorrect {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return model.ErrNoSession
	}

	next := s.current.User.Clone()
	entry, ok := next.Enrollment(courseID)
	if !ok {
		return model.ErrNotEnrolled
	}

	before := entry.Progress
	entry.Progress = model.ClampProgress(before + ProgressPerCorrectAnswer)
	next.Stats.TotalXP += int(result.Score)
	if before < 100 && entry.Progress == 100 {
		next.Stats.CoursesCompleted++
	}

	return s.commit(ctx, next)
}

// commit persists the candidate record and swaps it into memory only when
// the write succeeds. Callers must hold s.mu.
func (s *SessionService) commit(ctx context.Context, user *model.User) error {
	session := &model.AuthSession{User: user, Token: s.current.Token}
	if err := s.kv.SetJSON(ctx, SessionKey, session); err != nil {
		return err
	}
	s.current = session
	return nil
}

func (s *SessionService) cloneCurrent() *model.AuthSession {
	if s.current == nil {
		return nil
	}
	return &model.AuthSession{
		User:  s.current.User.Clone(),
		Token: s.current.Token,
	}
}
