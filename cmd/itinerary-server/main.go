package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/database"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/generator"
	"deep-travel-collections/internal/itinerary"
	"deep-travel-collections/internal/llm"
	"deep-travel-collections/internal/metrics"
	"deep-travel-collections/internal/server"
	"deep-travel-collections/internal/storage"
	"deep-travel-collections/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize Infrastructure (LLMs)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer geminiClient.Close()

	groqClient := llm.NewGroqClient(cfg, llm.ModelItinerary, 0.7)

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	destRepo := destination.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 3. Initialize Services
	factory, err := generator.NewFactory(cfg, llm.NewMeteredGenerator("gemini", geminiClient, metricsStore))
	if err != nil {
		log.Fatalf("Failed to initialize generator factory: %v", err)
	}
	factory.Register(generator.TypeEfficient,
		generator.NewStrategy(llm.NewMeteredGenerator("groq", groqClient, metricsStore)))

	store, err := storage.NewItineraryStore(cfg.ItineraryStoragePath)
	if err != nil {
		log.Fatalf("Failed to initialize itinerary store: %v", err)
	}

	svc := itinerary.NewService(factory)

	mux := http.NewServeMux()
	server.New(svc, destRepo, store, cfg.ItineraryStoragePath).RegisterHandlers(mux)

	// 4. Initialize Telegram Bot (optional)
	if cfg.TelegramBotToken != "" {
		bot, err := telegram.NewBot(cfg, svc, destRepo)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram Bot: %v", err)
		}
		bot.RegisterHandlers(mux)
	}

	// 5. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.Printf("Itinerary server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
