package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"deep-travel-collections/internal/cms"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/generator"
	"deep-travel-collections/internal/itinerary"
	"deep-travel-collections/internal/render"
	"deep-travel-collections/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	cmsClient cms.Client
	repo      *destination.Repository
	svc       *itinerary.Service
	store     *storage.ItineraryStore
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cmsClient cms.Client,
	repo *destination.Repository,
	svc *itinerary.Service,
	store *storage.ItineraryStore,
) *App {
	return &App{
		cmsClient: cmsClient,
		repo:      repo,
		svc:       svc,
		store:     store,
	}
}

// ImportDestinations fetches destination guide posts from the CMS and saves
// them as destination records.
func (a *App) ImportDestinations(ctx context.Context) error {
	fmt.Println("Fetching destination guides from CMS...")

	posts, err := a.cmsClient.FetchDestinations()
	if err != nil {
		return fmt.Errorf("failed to fetch destinations from CMS: %w", err)
	}

	fmt.Printf("Fetched %d destination guide posts.\n", len(posts))
	imported := 0
	for _, post := range posts {
		dest, err := cms.MapToDestination(post)
		if err != nil {
			log.Printf("Failed to map post '%s': %v", post.Title, err)
			continue
		}
		if err := a.repo.Save(ctx, dest); err != nil {
			log.Printf("Failed to save destination '%s': %v", dest.Name, err)
			continue
		}
		imported++
		log.Printf("Imported '%s' (%s, featured=%t)", dest.Name, dest.Country, dest.Featured)
	}

	fmt.Printf("Import complete. Saved %d destinations.\n", imported)
	return nil
}

// GenerateItinerary runs the full pipeline for one destination and prints a
// per-day extraction summary. An empty typeStr leaves strategy selection to
// the factory's policy; a non-empty pdfPath additionally writes a PDF.
func (a *App) GenerateItinerary(ctx context.Context, destID, typeStr, pdfPath string) error {
	dest, err := a.lookup(ctx, destID)
	if err != nil {
		return err
	}

	var explicitType generator.Type
	if typeStr != "" {
		explicitType, err = generator.ParseType(typeStr)
		if err != nil {
			return fmt.Errorf("invalid generator type %q: %w", typeStr, err)
		}
	}

	fmt.Printf("Generating itinerary for %s, %s...\n", dest.Name, dest.Country)

	it, err := a.svc.Generate(ctx, *dest, explicitType)
	if err != nil {
		return err
	}

	if err := a.store.Save(it); err != nil {
		log.Printf("Warning: failed to persist itinerary: %v", err)
	}

	printDaySummary(it)

	if pdfPath != "" {
		pdfBytes, err := render.PDF(it)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}
		if err := os.WriteFile(pdfPath, pdfBytes, 0644); err != nil {
			return fmt.Errorf("failed to write PDF file: %w", err)
		}
		fmt.Printf("Wrote PDF to %s\n", pdfPath)
	}

	return nil
}

// ExtractionReport re-runs extraction over the latest stored itinerary for a
// destination and prints the presence flags.
func (a *App) ExtractionReport(ctx context.Context, destID string) error {
	dest, err := a.lookup(ctx, destID)
	if err != nil {
		return err
	}

	it, err := a.store.LoadLatest(dest.ID)
	if err != nil {
		return fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it == nil {
		return fmt.Errorf("no itinerary generated yet for %s", dest.Name)
	}

	printDaySummary(it)
	return nil
}

// PublishPreview renders the latest itinerary as HTML and pushes it to the
// CMS as a draft post.
func (a *App) PublishPreview(ctx context.Context, destID string) error {
	dest, err := a.lookup(ctx, destID)
	if err != nil {
		return err
	}

	it, err := a.store.LoadLatest(dest.ID)
	if err != nil {
		return fmt.Errorf("failed to load itinerary: %w", err)
	}
	if it == nil {
		return fmt.Errorf("no itinerary generated yet for %s", dest.Name)
	}

	html, err := render.HTML(it)
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}

	title := fmt.Sprintf("%s: A 7-Day Itinerary", dest.Name)
	post, err := a.cmsClient.CreatePost(title, html, false)
	if err != nil {
		return fmt.Errorf("failed to publish preview: %w", err)
	}

	fmt.Printf("Published draft preview '%s' (post ID %s).\n", post.Title, post.ID)
	return nil
}

// lookup resolves a destination by ID first, then by display name.
func (a *App) lookup(ctx context.Context, idOrName string) (*destination.Destination, error) {
	dest, err := a.repo.Get(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if dest == nil {
		dest, err = a.repo.GetByName(ctx, idOrName)
		if err != nil {
			return nil, fmt.Errorf("failed to load destination: %w", err)
		}
	}
	if dest == nil {
		return nil, fmt.Errorf("destination %q not found (run 'import' first?)", idOrName)
	}
	return dest, nil
}

func printDaySummary(it *itinerary.Itinerary) {
	fmt.Printf("\n=== Extraction summary for %s ===\n", it.DestinationName)
	for _, day := range it.Days {
		status := "missing"
		if day.Extracted {
			status = fmt.Sprintf("morning=%t lunch=%t afternoon=%t evening=%t",
				day.Sections.Morning, day.Sections.Lunch, day.Sections.Afternoon, day.Sections.Evening)
		}
		fmt.Printf("Day %d: %s\n", day.Day, status)
	}
}
