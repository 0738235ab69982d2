package services

import (
	"context"
	"testing"
	"time"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/store"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

func newTestTutorService(kv store.KV, collab Collaborator) *TutorService {
	clk := clock.NewManual(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	return NewTutorService(kv, clk, collab)
}

func TestRequestReplyAppendsBothMessages(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	collab := &fakeCollaborator{
		tutorFn: func(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error) {
			if len(history) == 0 {
				t.Error("expected the pending user message in the history")
			}
			return "Think about what addition means.", nil
		},
	}
	svc := newTestTutorService(kv, collab)
	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}

	reply, err := svc.RequestReply(ctx, "How do I add fractions?")
	if err != nil {
		t.Fatalf("RequestReply returned error: %v", err)
	}
	if reply.Role != model.MessageRoleModel {
		t.Errorf("expected model role on the reply, got %q", reply.Role)
	}

	history := svc.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != model.MessageRoleUser || history[1].Role != model.MessageRoleModel {
		t.Error("messages out of order")
	}

	// Both messages were written through to storage
	var persisted []model.ChatMessage
	if err := kv.GetJSON(ctx, ChatKeyPrefix+"en", &persisted); err != nil {
		t.Fatalf("reading persisted log: %v", err)
	}
	if len(persisted) != 2 {
		t.Errorf("expected 2 persisted messages, got %d", len(persisted))
	}
}

func TestRequestReplyFailureLeavesLogUntouched(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	collab := &fakeCollaborator{
		tutorFn: func(ctx context.Context, history []model.ChatMessage, lang model.Language) (string, error) {
			return "", errFakeUnavailable
		},
	}
	svc := newTestTutorService(kv, collab)
	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}
	if _, err := svc.Append(ctx, model.MessageRoleUser, "earlier message"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	if _, err := svc.RequestReply(ctx, "this will fail"); err == nil {
		t.Fatal("expected RequestReply to fail")
	}

	history := svc.History()
	if len(history) != 1 || history[0].Text != "earlier message" {
		t.Errorf("log changed by a failed request: %v", history)
	}
}

func TestConversationLogsAreIsolatedPerLanguage(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestTutorService(kv, &fakeCollaborator{})

	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}
	if _, err := svc.Append(ctx, model.MessageRoleUser, "hello"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	// Switching language shows an independent empty log
	if _, err := svc.LoadForLanguage(ctx, model.LangArabic); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}
	if got := len(svc.History()); got != 0 {
		t.Fatalf("expected empty arabic log, got %d messages", got)
	}
	if _, err := svc.Append(ctx, model.MessageRoleUser, "مرحبا"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	// Switching back restores the english log unchanged
	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}
	history := svc.History()
	if len(history) != 1 || history[0].Text != "hello" {
		t.Errorf("english log changed by arabic writes: %v", history)
	}
}

func TestCorruptPersistedLogTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	if err := kv.Set(ctx, ChatKeyPrefix+"fr", "][ garbage"); err != nil {
		t.Fatalf("seeding corrupt log: %v", err)
	}

	svc := newTestTutorService(kv, &fakeCollaborator{})
	history, err := svc.LoadForLanguage(ctx, model.LangFrench)
	if err != nil {
		t.Fatalf("expected corrupt log to be swallowed, got %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty log, got %d messages", len(history))
	}
}

func TestClearRemovesPersistedLog(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	svc := newTestTutorService(kv, &fakeCollaborator{})

	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}
	if _, err := svc.Append(ctx, model.MessageRoleUser, "hello"); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	if err := svc.Clear(ctx, model.LangEnglish); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if len(svc.History()) != 0 {
		t.Error("in-memory log not cleared")
	}
	if ok, _ := kv.Exists(ctx, ChatKeyPrefix+"en"); ok {
		t.Error("persisted log not removed")
	}
}

func TestAppendFailureLeavesMemoryUnchanged(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemoryKV()}
	svc := newTestTutorService(kv, &fakeCollaborator{})

	if _, err := svc.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		t.Fatalf("LoadForLanguage returned error: %v", err)
	}

	kv.failWrites = true
	if _, err := svc.Append(ctx, model.MessageRoleUser, "lost"); err == nil {
		t.Fatal("expected append to fail on storage error")
	}
	if len(svc.History()) != 0 {
		t.Error("in-memory log extended despite failed write")
	}
}
