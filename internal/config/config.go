package config

import (
	"fmt"
	"os"
)

// Config holds the configuration for the application.
type Config struct {
	CMSURL        string
	CMSContentKey string
	CMSAdminKey   string
	GeminiAPIKey  string
	GroqAPIKey    string
	OpenAIAPIKey  string

	DatabasePath         string
	ItineraryStoragePath string

	// Generator selection policy
	DefaultGenerator string
	PremiumGenerator string

	// Logging flags for the generator factory
	LogGeneratorUsage    bool
	LogContentGeneration bool

	// Telegram Config (optional, required only for the bot)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cmsURL := os.Getenv("CMS_API_URL")
	if cmsURL == "" {
		return nil, fmt.Errorf("CMS_API_URL environment variable not set")
	}

	cmsContentKey := os.Getenv("CMS_CONTENT_API_KEY")
	if cmsContentKey == "" {
		return nil, fmt.Errorf("CMS_CONTENT_API_KEY environment variable not set")
	}

	cmsAdminKey := os.Getenv("CMS_ADMIN_API_KEY")
	if cmsAdminKey == "" {
		// Fallback to content key if only one is provided
		cmsAdminKey = cmsContentKey
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "data/travel.db"
	}

	storagePath := os.Getenv("ITINERARY_STORAGE_PATH")
	if storagePath == "" {
		storagePath = "data/itineraries"
	}

	defaultGenerator := os.Getenv("DEFAULT_GENERATOR")
	if defaultGenerator == "" {
		defaultGenerator = "default"
	}

	premiumGenerator := os.Getenv("PREMIUM_GENERATOR")
	if premiumGenerator == "" {
		premiumGenerator = "resilient"
	}

	telegramBotToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	telegramWebhookURL := os.Getenv("TELEGRAM_WEBHOOK_URL")
	telegramAllowUserIDStr := os.Getenv("TELEGRAM_ALLOW_USER_ID")
	var telegramAllowUserID int64
	if telegramAllowUserIDStr != "" {
		fmt.Sscanf(telegramAllowUserIDStr, "%d", &telegramAllowUserID)
	}

	return &Config{
		CMSURL:               cmsURL,
		CMSContentKey:        cmsContentKey,
		CMSAdminKey:          cmsAdminKey,
		GeminiAPIKey:         geminiAPIKey,
		GroqAPIKey:           groqAPIKey,
		OpenAIAPIKey:         os.Getenv("OPENAI_API_KEY"),
		DatabasePath:         databasePath,
		ItineraryStoragePath: storagePath,
		DefaultGenerator:     defaultGenerator,
		PremiumGenerator:     premiumGenerator,
		LogGeneratorUsage:    os.Getenv("LOG_GENERATOR_USAGE") != "false",
		LogContentGeneration: os.Getenv("LOG_CONTENT_GENERATION") != "false",
		TelegramBotToken:     telegramBotToken,
		TelegramWebhookURL:   telegramWebhookURL,
		TelegramAllowUserID:  telegramAllowUserID,
	}, nil
}
