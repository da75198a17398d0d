package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"deep-travel-collections/internal/app"
	"deep-travel-collections/internal/cms"
	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/database"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/generator"
	"deep-travel-collections/internal/itinerary"
	"deep-travel-collections/internal/llm"
	"deep-travel-collections/internal/metrics"
	"deep-travel-collections/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	cmsClient := cms.NewClient(cfg)

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	destRepo := destination.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// Gemini drives the built-in strategies; Groq backs the efficient one.
	factory, err := generator.NewFactory(cfg, llm.NewMeteredGenerator("gemini", geminiClient, metricsStore))
	if err != nil {
		log.Fatalf("Failed to initialize generator factory: %v", err)
	}

	groqClient := llm.NewGroqClient(cfg, llm.ModelItinerary, 0.7)
	factory.Register(generator.TypeEfficient,
		generator.NewStrategy(llm.NewMeteredGenerator("groq", groqClient, metricsStore)))

	if cfg.OpenAIAPIKey != "" {
		openAIClient, err := llm.NewOpenAIClient(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		factory.Register(generator.TypeResilient,
			generator.NewStrategy(llm.NewMeteredGenerator("openai", openAIClient, metricsStore)))
	}

	store, err := storage.NewItineraryStore(cfg.ItineraryStoragePath)
	if err != nil {
		log.Fatalf("Failed to initialize itinerary store: %v", err)
	}

	svc := itinerary.NewService(factory)

	application := app.NewApp(cmsClient, destRepo, svc, store)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "import":
		if err := application.ImportDestinations(ctx); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case "generate":
		generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		genType := generateCmd.String("type", "", "Generator type (default|chunked|resilient|efficient); empty uses the selection policy")
		pdfPath := generateCmd.String("pdf", "", "Also write a PDF rendition to this path")
		generateCmd.Parse(os.Args[2:])

		if generateCmd.NArg() < 1 {
			log.Fatal("Usage: generate [-type <type>] [-pdf <path>] <destination>")
		}
		if err := application.GenerateItinerary(ctx, generateCmd.Arg(0), *genType, *pdfPath); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
	case "extract":
		if len(os.Args) < 3 {
			log.Fatal("Usage: extract <destination>")
		}
		if err := application.ExtractionReport(ctx, os.Args[2]); err != nil {
			log.Fatalf("Extraction report failed: %v", err)
		}
	case "publish-preview":
		if len(os.Args) < 3 {
			log.Fatal("Usage: publish-preview <destination>")
		}
		if err := application.PublishPreview(ctx, os.Args[2]); err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
	case "metrics-usage":
		usageCmd := flag.NewFlagSet("metrics-usage", flag.ExitOnError)
		days := usageCmd.Int("days", 7, "Show usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		usage, err := metricsStore.GetDailyUsage(*days)
		if err != nil {
			log.Fatalf("Failed to query usage: %v", err)
		}
		for _, u := range usage {
			fmt.Printf("%s  prompt=%d completion=%d calls=%d\n", u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecution)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: itinerary-engine <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  import             Fetch destination guides from the CMS")
	fmt.Println("  generate           Generate a normalized 7-day itinerary for a destination")
	fmt.Println("  extract            Print the per-day extraction report for the latest itinerary")
	fmt.Println("  publish-preview    Push the latest itinerary to the CMS as a draft")
	fmt.Println("  metrics-usage      Show daily token usage")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
