package services

import (
	"context"
	"testing"
	"time"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

func newTestForumService(collab Collaborator) *ForumService {
	clk := clock.NewManual(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	return NewForumService(collab, clk)
}

func TestForumSeedPosts(t *testing.T) {
	svc := newTestForumService(&fakeCollaborator{})

	posts := svc.Posts()
	if len(posts) != 3 {
		t.Fatalf("expected 3 seed posts, got %d", len(posts))
	}

	langs := map[model.Language]bool{}
	for _, p := range posts {
		langs[p.Language] = true
	}
	for _, lang := range []model.Language{model.LangEnglish, model.LangFrench, model.LangArabic} {
		if !langs[lang] {
			t.Errorf("no seed post in %q", lang)
		}
	}
}

func TestTranslateCachesPerLanguage(t *testing.T) {
	ctx := context.Background()
	collab := &fakeCollaborator{}
	svc := newTestForumService(collab)

	first, err := svc.Translate(ctx, "1", model.LangFrench)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	second, err := svc.Translate(ctx, "1", model.LangFrench)
	if err != nil {
		t.Fatalf("second Translate returned error: %v", err)
	}
	if first != second {
		t.Errorf("cached translation differs: %q vs %q", first, second)
	}
	if collab.translateCalls != 1 {
		t.Errorf("expected one collaborator call, got %d", collab.translateCalls)
	}

	// A different target language is a separate cache entry
	if _, err := svc.Translate(ctx, "1", model.LangArabic); err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if collab.translateCalls != 2 {
		t.Errorf("expected a second collaborator call, got %d", collab.translateCalls)
	}
}

func TestTranslateSameLanguageSkipsCollaborator(t *testing.T) {
	ctx := context.Background()
	collab := &fakeCollaborator{}
	svc := newTestForumService(collab)

	text, err := svc.Translate(ctx, "1", model.LangEnglish)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if text == "" {
		t.Error("expected the original content")
	}
	if collab.translateCalls != 0 {
		t.Errorf("collaborator contacted for a same-language request")
	}
}

func TestTranslateUnknownPost(t *testing.T) {
	svc := newTestForumService(&fakeCollaborator{})
	if _, err := svc.Translate(context.Background(), "99", model.LangFrench); err != model.ErrUnknownPost {
		t.Fatalf("expected ErrUnknownPost, got %v", err)
	}
}

func TestTranslateFailureIsNotCached(t *testing.T) {
	ctx := context.Background()
	collab := &fakeCollaborator{
		translateFn: func(ctx context.Context, text string, target model.Language) (string, error) {
			return "", errFakeUnavailable
		},
	}
	svc := newTestForumService(collab)

	if _, err := svc.Translate(ctx, "1", model.LangFrench); err == nil {
		t.Fatal("expected Translate to fail")
	}

	collab.translateFn = nil
	if _, err := svc.Translate(ctx, "1", model.LangFrench); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if collab.translateCalls != 2 {
		t.Errorf("expected retry to reach the collaborator, got %d calls", collab.translateCalls)
	}
}
