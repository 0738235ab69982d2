package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/store"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

// ChatKeyPrefix prefixes the per-language storage keys for conversation logs
const ChatKeyPrefix = "bridge_ed_chat_"

// TutorService keeps the tutoring conversation log for the active language.
// The log is append-only and written through to the KV store after every
// append; logs for different languages never mix.
type TutorService struct {
	mu     sync.Mutex
	kv     store.KV
	clock  clock.Clock
	collab Collaborator
	lang   model.Language
	log    []model.ChatMessage
}

// NewTutorService creates a tutor service with an empty in-memory log
func NewTutorService(kv store.KV, clk clock.Clock, collab Collaborator) *TutorService {
	return &TutorService{
		kv:     kv,
		clock:  clk,
		collab: collab,
		lang:   model.LangEnglish,
	}
}

func chatKey(lang model.Language) string {
	return ChatKeyPrefix + string(lang)
}

// LoadForLanguage replaces the in-memory log with the persisted log for the
// language, or an empty log if none was stored. A corrupt persisted log is
// treated as empty, never fatal.
func (t *TutorService) LoadForLanguage(ctx context.Context, lang model.Language) ([]model.ChatMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var messages []model.ChatMessage
	err := t.kv.GetJSON(ctx, chatKey(lang), &messages)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		if !isJSONDecodingError(err) {
			return nil, err
		}
		log.Printf("[tutor] discarding corrupt conversation log for %s: %v", lang, err)
		messages = nil
	}

	t.lang = lang
	t.log = messages
	return t.historyLocked(), nil
}

// History returns a copy of the in-memory log for the active language
func (t *TutorService) History() []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.historyLocked()
}

// ActiveLanguage returns the language whose log is currently loaded
func (t *TutorService) ActiveLanguage() model.Language {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lang
}

// Append adds a message with a generated timestamp and writes the full log
// through to storage. The in-memory log is only extended when the write
// succeeds.
func (t *TutorService) Append(ctx context.Context, role model.MessageRole, text string) (model.ChatMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.appendLocked(ctx, role, text)
}

func (t *TutorService) appendLocked(ctx context.Context, role model.MessageRole, text string) (model.ChatMessage, error) {
	msg := model.ChatMessage{
		Role:      role,
		Text:      text,
		Timestamp: t.clock.Now().UnixMilli(),
	}

	next := make([]model.ChatMessage, len(t.log), len(t.log)+1)
	copy(next, t.log)
	next = append(next, msg)

	if err := t.kv.SetJSON(ctx, chatKey(t.lang), next); err != nil {
		return model.ChatMessage{}, err
	}
	t.log = next
	return msg, nil
}

// Clear empties both the in-memory and the persisted log for the language
func (t *TutorService) Clear(ctx context.Context, lang model.Language) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.kv.Delete(ctx, chatKey(lang)); err != nil {
		return err
	}
	if t.lang == lang {
		t.log = nil
	}
	return nil
}

// RequestReply appends the user's message, sends the full ordered history to
// the collaborator and appends the reply. On collaborator failure the log is
// left exactly as it was, so the user retries by resending the message.
func (t *TutorService) RequestReply(ctx context.Context, text string) (model.ChatMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	userMsg := model.ChatMessage{
		Role:      model.MessageRoleUser,
		Text:      text,
		Timestamp: t.clock.Now().UnixMilli(),
	}
	history := append(t.historyLocked(), userMsg)

	reply, err := t.collab.TutorReply(ctx, history, t.lang)
	if err != nil {
		return model.ChatMessage{}, err
	}

	if _, err := t.appendLocked(ctx, model.MessageRoleUser, text); err != nil {
		return model.ChatMessage{}, err
	}
	return t.appendLocked(ctx, model.MessageRoleModel, reply)
}

func (t *TutorService) historyLocked() []model.ChatMessage {
	out := make([]model.ChatMessage, len(t.log))
	copy(out, t.log)
	return out
}
