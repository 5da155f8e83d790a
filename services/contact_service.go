package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/greentable/site-backend/models"
	"github.com/greentable/site-backend/realtime"
)

// The footer contact block lives in Redis under a fixed key. Every write is
// published on a channel so all server instances forward the change to their
// connected clients; nothing polls and nothing reloads.
const (
	ContactKey     = "site:footer_contact"
	ContactChannel = "site:contact_updates"
)

const DefaultWhatsAppLink = "https://wa.me/551199998888"

// DefaultContactBlock is served while the key is unset.
var DefaultContactBlock = models.ContactBlock{
	Address:      "Rua do Pôquer, 123 - Centro",
	Phone:        "(11) 9999-8888",
	WhatsAppText: "Fale conosco diretamente pelo WhatsApp",
	WhatsAppLink: DefaultWhatsAppLink,
}

type ContactInput struct {
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	WhatsAppText string `json:"whatsapp_text"`
	WhatsAppLink string `json:"whatsapp_link"`
}

type ContactService interface {
	GetContact(ctx context.Context) (*models.ContactBlock, error)
	SaveContact(ctx context.Context, input ContactInput) (*models.ContactBlock, error)
	// Listen subscribes to the contact update channel and forwards every
	// published block to the websocket hub. It blocks until ctx is canceled.
	Listen(ctx context.Context) error
}

type contactService struct {
	rdb      *redis.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewContactService(rdb *redis.Client, notifier Notifier, logger *slog.Logger) ContactService {
	return &contactService{
		rdb:      rdb,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *contactService) GetContact(ctx context.Context) (*models.ContactBlock, error) {
	raw, err := s.rdb.Get(ctx, ContactKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			block := DefaultContactBlock
			return &block, nil
		}
		return nil, fmt.Errorf("failed to read contact block: %w", err)
	}

	var block models.ContactBlock
	if err := json.Unmarshal([]byte(raw), &block); err != nil {
		return nil, fmt.Errorf("failed to decode contact block: %w", err)
	}
	return &block, nil
}

func (s *contactService) SaveContact(ctx context.Context, input ContactInput) (*models.ContactBlock, error) {
	block := models.ContactBlock{
		Address:      strings.TrimSpace(input.Address),
		Phone:        strings.TrimSpace(input.Phone),
		WhatsAppText: strings.TrimSpace(input.WhatsAppText),
		WhatsAppLink: NormalizeWhatsAppLink(input.WhatsAppLink),
	}
	if block.Address == "" {
		block.Address = DefaultContactBlock.Address
	}
	if block.Phone == "" {
		block.Phone = DefaultContactBlock.Phone
	}
	if block.WhatsAppText == "" {
		block.WhatsAppText = DefaultContactBlock.WhatsAppText
	}

	raw, err := json.Marshal(block)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact block: %w", err)
	}

	if err := s.rdb.Set(ctx, ContactKey, raw, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to store contact block: %w", err)
	}
	if err := s.rdb.Publish(ctx, ContactChannel, raw).Err(); err != nil {
		return nil, fmt.Errorf("failed to publish contact update: %w", err)
	}
	return &block, nil
}

func (s *contactService) Listen(ctx context.Context) error {
	sub := s.rdb.Subscribe(ctx, ContactChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var block models.ContactBlock
			if err := json.Unmarshal([]byte(msg.Payload), &block); err != nil {
				s.logger.Warn("dropping malformed contact update", slog.Any("error", err))
				continue
			}
			if s.notifier != nil {
				s.notifier.BroadcastToRoom(realtime.RoomContact, realtime.EventContactUpdated, block)
			}
		}
	}
}

// NormalizeWhatsAppLink rebuilds a wa.me deep link from whatever the editor
// typed: absolute http(s) URLs pass through, bare numbers and "wa.me/..."
// forms are prefixed, and an empty value falls back to the house number.
func NormalizeWhatsAppLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return DefaultWhatsAppLink
	}
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	link = strings.TrimPrefix(link, "wa.me/")
	return "https://wa.me/" + link
}
