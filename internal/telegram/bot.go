// Package telegram runs a webhook bot that generates itineraries on demand
// for the editorial team.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"deep-travel-collections/internal/config"
	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/itinerary"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageLen = 4000

// Bot wraps the Telegram API and the itinerary service.
type Bot struct {
	api  *tgbotapi.BotAPI
	svc  *itinerary.Service
	repo *destination.Repository
	cfg  *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, svc *itinerary.Service, repo *destination.Repository) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{api: api, svc: svc, repo: repo, cfg: cfg}, nil
}

// RegisterHandlers registers the webhook handler on the given mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	b.handleMessage(r.Context(), update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/itinerary"):
		name := strings.TrimSpace(strings.TrimPrefix(text, "/itinerary"))
		if name == "" {
			b.send(msg.Chat.ID, "Usage: /itinerary <destination name>")
			return
		}
		b.generateAndSend(ctx, msg.Chat.ID, name)
	case strings.HasPrefix(text, "/destinations"):
		b.listDestinations(ctx, msg.Chat.ID)
	default:
		b.send(msg.Chat.ID, "Commands:\n/destinations - list available destinations\n/itinerary <name> - generate a 7-day itinerary")
	}
}

func (b *Bot) generateAndSend(ctx context.Context, chatID int64, name string) {
	dest, err := b.repo.GetByName(ctx, name)
	if err != nil {
		log.Printf("Failed to look up destination %q: %v", name, err)
		b.send(chatID, "Something went wrong looking up that destination.")
		return
	}
	if dest == nil {
		b.send(chatID, fmt.Sprintf("I don't know %q yet. Try /destinations.", name))
		return
	}

	b.send(chatID, fmt.Sprintf("Generating a 7-day itinerary for %s, %s. This can take a minute...", dest.Name, dest.Country))

	it, err := b.svc.Generate(ctx, *dest, "")
	if err != nil {
		log.Printf("Generation failed for %s: %v", dest.Name, err)
		b.send(chatID, "Generation failed. Please try again later.")
		return
	}

	for _, chunk := range splitMessage(it.Markdown) {
		b.send(chatID, chunk)
	}
}

func (b *Bot) listDestinations(ctx context.Context, chatID int64) {
	destinations, err := b.repo.List(ctx)
	if err != nil {
		log.Printf("Failed to list destinations: %v", err)
		b.send(chatID, "Something went wrong listing destinations.")
		return
	}
	if len(destinations) == 0 {
		b.send(chatID, "No destinations imported yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Available destinations:\n")
	for _, d := range destinations {
		marker := ""
		if d.Featured {
			marker = " *"
		}
		fmt.Fprintf(&sb, "- %s, %s%s\n", d.Name, d.Country, marker)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

// splitMessage breaks long markdown at line boundaries so each piece fits in
// one Telegram message.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if current.Len()+len(line)+1 > maxMessageLen && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
