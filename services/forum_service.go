package services

import (
	"context"
	"sync"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

// ForumService serves community posts and translates them on demand.
// Translations are cached per language on the post so each post is
// translated at most once per target language.
type ForumService struct {
	mu     sync.Mutex
	posts  []model.ForumPost
	collab Collaborator
}

// NewForumService creates a forum service with the seed posts
func NewForumService(collab Collaborator, clk clock.Clock) *ForumService {
	now := clk.Now().UnixMilli()
	return &ForumService{
		collab: collab,
		posts: []model.ForumPost{
			{
				ID:        "1",
				Author:    "Sarah (UK)",
				Content:   "How does the study of Al-Jabr influence modern algorithms?",
				Language:  model.LangEnglish,
				Timestamp: now,
			},
			{
				ID:        "2",
				Author:    "Ahmed (Egypt)",
				Content:   "التفكير النقدي ضروري جداً لتطوير المجتمعات العربية.",
				Language:  model.LangArabic,
				Timestamp: now,
			},
			{
				ID:        "3",
				Author:    "Lucie (France)",
				Content:   "La collaboration interdisciplinaire est la clé du futur.",
				Language:  model.LangFrench,
				Timestamp: now,
			},
		},
	}
}

// Posts returns a snapshot of all posts
func (f *ForumService) Posts() []model.ForumPost {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.ForumPost, len(f.posts))
	for i, p := range f.posts {
		out[i] = p
		if len(p.Translations) > 0 {
			out[i].Translations = make(map[model.Language]string, len(p.Translations))
			for k, v := range p.Translations {
				out[i].Translations[k] = v
			}
		}
	}
	return out
}

// Translate returns the post content in the target language, calling the
// collaborator only on a cache miss
func (f *ForumService) Translate(ctx context.Context, postID string, target model.Language) (string, error) {
	f.mu.Lock()
	var post *model.ForumPost
	for i := range f.posts {
		if f.posts[i].ID == postID {
			post = &f.posts[i]
			break
		}
	}
	if post == nil {
		f.mu.Unlock()
		return "", model.ErrUnknownPost
	}
	if post.Language == target {
		content := post.Content
		f.mu.Unlock()
		return content, nil
	}
	if cached, ok := post.Translations[target]; ok {
		f.mu.Unlock()
		return cached, nil
	}
	content := post.Content
	f.mu.Unlock()

	translated, err := f.collab.Translate(ctx, content, target)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	if post.Translations == nil {
		post.Translations = make(map[model.Language]string)
	}
	post.Translations[target] = translated
	f.mu.Unlock()

	return translated, nil
}
