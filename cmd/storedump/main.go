package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	kv, err := store.NewRedisKV(redisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer kv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("BridgeEd - Store Inspection")
	fmt.Println(separator)
	fmt.Println()

	dumpSession(ctx, kv)
	fmt.Println()
	dumpChats(ctx, kv)
}

func dumpSession(ctx context.Context, kv store.KV) {
	var session model.AuthSession
	err := kv.GetJSON(ctx, services.SessionKey, &session)
	if err == store.ErrNotFound {
		fmt.Println("No persisted session.")
		return
	}
	if err != nil {
		fmt.Printf("Session record unreadable: %v\n", err)
		return
	}

	fmt.Printf("Session: %s <%s> tier=%s\n", session.User.Name, session.User.Email, session.User.Tier)
	for _, e := range session.User.Enrolled {
		due := "none"
		if e.DueDate != nil {
			due = e.DueDate.Format(time.RFC3339)
		}
		fmt.Printf("  - %s progress=%d%% due=%s\n", e.CourseID, e.Progress, due)
	}
}

func dumpChats(ctx context.Context, kv store.KV) {
	for _, lang := range []model.Language{model.LangEnglish, model.LangFrench, model.LangArabic} {
		var messages []model.ChatMessage
		err := kv.GetJSON(ctx, services.ChatKeyPrefix+string(lang), &messages)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			fmt.Printf("Chat log %s unreadable: %v\n", lang, err)
			continue
		}
		fmt.Printf("Chat log %s: %d messages\n", lang, len(messages))
		for _, m := range messages {
			text := m.Text
			if len(text) > 72 {
				text = text[:72] + "..."
			}
			fmt.Printf("  [%s] %s\n", m.Role, text)
		}
	}
}
