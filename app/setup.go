package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/CHYou2Sef/BridgeEd/api"
	"github.com/CHYou2Sef/BridgeEd/config"
	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/router"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/services/cron"
	"github.com/CHYou2Sef/BridgeEd/services/gemini"
	"github.com/CHYou2Sef/BridgeEd/store"
	"github.com/CHYou2Sef/BridgeEd/utils/auth"
	"github.com/CHYou2Sef/BridgeEd/utils/clock"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err

	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize the session store, falling back to in-memory when Redis
	// is not reachable
	var kv store.KV
	if getEnv.REDIS_URL != "" {
		redisKV, err := store.NewRedisKV(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Falling back to in-memory store.", err)
			kv = store.NewMemoryKV()
		} else {
			kv = redisKV
		}
	} else {
		log.Println("REDIS_URL not set, using in-memory store")
		kv = store.NewMemoryKV()
	}
	defer kv.Close()

	// Initialize the Gemini collaborator
	collaborator := gemini.NewClient(gemini.Config{
		APIKey:  getEnv.GEMINI_API_KEY,
		BaseURL: getEnv.GEMINI_BASE_URL,
		Model:   getEnv.GEMINI_MODEL,
	})

	// Initialize session token signing
	jwtSecret := getEnv.JWT_SECRET
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "bridge-ed-api"
	}
	clk := clock.Real{}
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: jwtSecret,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
		Clock:  clk,
	})

	// Initialize services
	catalog := services.NewCatalogService()
	sessions := services.NewSessionService(kv, clk, tokens, catalog)
	gateway := services.NewGatewayService(collaborator, clk)
	practice := services.NewPracticeService(gateway, catalog)
	tutor := services.NewTutorService(kv, clk, collaborator)
	forum := services.NewForumService(collaborator, clk)

	// Restore persisted state from the previous run, if any
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	restored, err := sessions.Restore(ctx)
	if err != nil {
		log.Printf("Warning: Failed to restore session: %v", err)
	} else if restored != nil {
		log.Printf("Restored session for %s", restored.User.Email)
	}
	if _, err := tutor.LoadForLanguage(ctx, model.LangEnglish); err != nil {
		log.Printf("Warning: Failed to load conversation log: %v", err)
	}
	cancel()

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(gateway)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			// Don't fail the app, just log the warning
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, router.Deps{
		Tokens:         tokens,
		Sessions:       sessions,
		Catalog:        catalog,
		Practice:       practice,
		Tutor:          tutor,
		Forum:          forum,
		Gateway:        gateway,
		AllowedOrigins: getEnv.ALLOWED_ORIGINS,
	})

	// Get the PORT & Start the Server
	return server.Run()

}
