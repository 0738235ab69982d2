package services

import (
	"context"
	"testing"
	"time"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/store"
	"github.com/CHYou2Sef/BridgeEd/utils/auth"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

func newTestSessionService(kv store.KV) (*SessionService, *clock.Manual) {
	clk := clock.NewManual(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: "test-secret",
		Expiry: 24 * time.Hour,
		Issuer: "bridge-ed-test",
		Clock:  clk,
	})
	return NewSessionService(kv, clk, tokens, NewCatalogService()), clk
}

func TestSignInPersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc, _ := newTestSessionService(kv)

	session, err := svc.SignIn(ctx, "amira@example.com", "ignored")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if session.User.Name != "amira" {
		t.Errorf("expected name derived from email, got %q", session.User.Name)
	}
	if session.User.Tier != model.TierFree {
		t.Errorf("expected free tier on sign-in, got %q", session.User.Tier)
	}
	if session.Token == "" {
		t.Error("expected a minted session token")
	}

	// A fresh service over the same store restores the same record
	restoredSvc, _ := newTestSessionService(kv)
	restored, err := restoredSvc.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}
	if restored == nil {
		t.Fatal("expected restored session")
	}
	if restored.User.ID != session.User.ID {
		t.Errorf("restored user id %q does not match %q", restored.User.ID, session.User.ID)
	}
	if restored.Token != session.Token {
		t.Error("restored token does not match")
	}
}

func TestRestoreTreatsCorruptRecordAsSignedOut(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	if err := kv.Set(ctx, SessionKey, "{not json"); err != nil {
		t.Fatalf("seeding corrupt record: %v", err)
	}

	svc, _ := newTestSessionService(kv)
	session, err := svc.Restore(ctx)
	if err != nil {
		t.Fatalf("expected corrupt record to be swallowed, got %v", err)
	}
	if session != nil {
		t.Error("expected no session from a corrupt record")
	}
}

func TestSignUpFallsBackToFreeTier(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(store.NewMemoryKV())

	session, err := svc.SignUp(ctx, "omar@example.com", "Omar", model.SubscriptionTier("platinum"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if session.User.Tier != model.TierFree {
		t.Errorf("expected invalid tier to default to free, got %q", session.User.Tier)
	}
}

func TestSignInSimulatesDelay(t *testing.T) {
	ctx := context.Background()
	svc, clk := newTestSessionService(store.NewMemoryKV())

	if _, err := svc.SignIn(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	slept := clk.Slept()
	if len(slept) != 1 || slept[0] != 800*time.Millisecond {
		t.Errorf("expected one 800ms delay, got %v", slept)
	}
}

func TestSignOutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc, _ := newTestSessionService(kv)

	if _, err := svc.SignIn(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("first SignOut returned error: %v", err)
	}
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("second SignOut returned error: %v", err)
	}
	if svc.Current() != nil {
		t.Error("expected no current session after sign-out")
	}

	if ok, _ := kv.Exists(ctx, SessionKey); ok {
		t.Error("persisted record present after sign-out")
	}
}

func TestEnrollmentLedgerMutations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(store.NewMemoryKV())

	if err := svc.Enroll(ctx, "algebra-foundations"); err != model.ErrNoSession {
		t.Fatalf("expected ErrNoSession before sign-in, got %v", err)
	}

	if _, err := svc.SignIn(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	if err := svc.Enroll(ctx, "no-such-course"); err != model.ErrUnknownCourse {
		t.Fatalf("expected ErrUnknownCourse, got %v", err)
	}

	if err := svc.Enroll(ctx, "algebra-foundations"); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	// Enrolling twice leaves a single ledger entry
	if err := svc.Enroll(ctx, "algebra-foundations"); err != nil {
		t.Fatalf("second Enroll returned error: %v", err)
	}
	user := svc.Current().User
	if len(user.Enrolled) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(user.Enrolled))
	}

	if err := svc.SetProgress(ctx, "algebra-foundations", 130); err != nil {
		t.Fatalf("SetProgress returned error: %v", err)
	}
	if got := svc.Current().User.Enrolled[0].Progress; got != 100 {
		t.Errorf("expected progress clamped to 100, got %d", got)
	}

	if err := svc.SetDueDate(ctx, "critical-thinking", nil); err != model.ErrNotEnrolled {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}

	if err := svc.Unenroll(ctx, "algebra-foundations"); err != nil {
		t.Fatalf("Unenroll returned error: %v", err)
	}
	if len(svc.Current().User.Enrolled) != 0 {
		t.Error("ledger entry still present after unenroll")
	}
}

func TestFailedPersistLeavesSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemoryKV()}
	svc, _ := newTestSessionService(kv)

	if _, err := svc.SignIn(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	kv.failWrites = true
	if err := svc.Enroll(ctx, "algebra-foundations"); err == nil {
		t.Fatal("expected enroll to fail on storage error")
	}

	// The in-memory record was not swapped
	if len(svc.Current().User.Enrolled) != 0 {
		t.Error("ledger mutated despite failed persistence")
	}
}

func TestRecordPracticeResultAdvancesProgress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService(store.NewMemoryKV())

	if _, err := svc.SignIn(ctx, "a@b.com", ""); err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if err := svc.Enroll(ctx, "algebra-foundations"); err != nil {
		t.Fatalf("Enroll returned error: %v", err)
	}
	if err := svc.SetProgress(ctx, "algebra-foundations", 95); err != nil {
		t.Fatalf("SetProgress returned error: %v", err)
	}

	// An incorrect result leaves the record untouched
	if err := svc.RecordPracticeResult(ctx, "algebra-foundations", &model.GradeResult{Score: 20}); err != nil {
		t.Fatalf("RecordPracticeResult returned error: %v", err)
	}
	if got := svc.Current().User.Enrolled[0].Progress; got != 95 {
		t.Errorf("progress changed on incorrect result: %d", got)
	}

	result := &model.GradeResult{Score: 88, IsCorrect: true}
	if err := svc.RecordPracticeResult(ctx, "algebra-foundations", result); err != nil {
		t.Fatalf("RecordPracticeResult returned error: %v", err)
	}

	user := svc.Current().User
	if got := user.Enrolled[0].Progress; got != 100 {
		t.Errorf("expected progress clamped at 100, got %d", got)
	}
	if user.Stats.TotalXP != 88 {
		t.Errorf("expected 88 XP, got %d", user.Stats.TotalXP)
	}
	if user.Stats.CoursesCompleted != 1 {
		t.Errorf("expected completion counted once, got %d", user.Stats.CoursesCompleted)
	}
}
