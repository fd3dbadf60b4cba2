package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/maltedev/amazon-price-notifier/internal/models"
)

const (
	// MessageTypeProductFound is the only message type this tool emits.
	MessageTypeProductFound = "product_found"

	defaultUsername = "amazon-price-notifier"
	deliveryTimeout = 10 * time.Second

	embedColorGreen = 0x2ecc71
)

// Metadata is optional context attached to a notification.
type Metadata struct {
	Source      string `json:"source,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Message is the structural payload handed to the notification channel.
type Message struct {
	Type     string           `json:"type"`
	Products []models.Product `json:"products"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// NewProductFound builds a product_found message.
func NewProductFound(products []models.Product, meta *Metadata) Message {
	return Message{
		Type:     MessageTypeProductFound,
		Products: products,
		Metadata: meta,
	}
}

// webhookPayload is the Discord webhook body.
type webhookPayload struct {
	Username string  `json:"username,omitempty"`
	Content  string  `json:"content,omitempty"`
	Embeds   []embed `json:"embeds,omitempty"`
}

type embed struct {
	Title       string       `json:"title,omitempty"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []embedField `json:"fields,omitempty"`
	Footer      *embedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// Discord delivers messages to a Discord-compatible webhook endpoint.
type Discord struct {
	client     *resty.Client
	webhookURL string
	username   string
	logger     *slog.Logger
}

type Option func(*Discord)

// WithUsername overrides the webhook display name.
func WithUsername(name string) Option {
	return func(d *Discord) { d.username = name }
}

func NewDiscord(webhookURL string, logger *slog.Logger, opts ...Option) *Discord {
	d := &Discord{
		client:     resty.New().SetTimeout(deliveryTimeout),
		webhookURL: webhookURL,
		username:   defaultUsername,
		logger:     logger.With("component", "notifier"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Notify renders the message as webhook embeds and delivers it. A non-2xx
// response is a delivery failure.
func (d *Discord) Notify(ctx context.Context, msg Message) error {
	if len(msg.Products) == 0 {
		return nil
	}

	eventID := uuid.New().String()
	payload := d.buildPayload(msg, eventID)

	resp, err := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(d.webhookURL)
	if err != nil {
		d.logger.Error("webhook delivery failed", "event_id", eventID, "error", err)
		return fmt.Errorf("deliver webhook: %w", err)
	}
	if resp.StatusCode() >= 300 {
		d.logger.Error("webhook endpoint rejected message",
			"event_id", eventID,
			"status", resp.StatusCode(),
		)
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode())
	}

	d.logger.Info("notification delivered",
		"event_id", eventID,
		"type", msg.Type,
		"products", len(msg.Products),
	)
	return nil
}

func (d *Discord) buildPayload(msg Message, eventID string) webhookPayload {
	embeds := make([]embed, 0, len(msg.Products))
	for _, p := range msg.Products {
		e := embed{
			Title: p.Title.String(),
			URL:   p.URL.String(),
			Color: embedColorGreen,
			Fields: []embedField{
				{Name: "Price", Value: p.Price.String(), Inline: true},
			},
			Footer:    &embedFooter{Text: "event " + eventID},
			Timestamp: time.Unix(p.Timestamp, 0).UTC().Format(time.RFC3339),
		}
		if msg.Metadata != nil && msg.Metadata.Description != "" {
			e.Description = msg.Metadata.Description
		}
		embeds = append(embeds, e)
	}

	content := fmt.Sprintf("Found %d product(s)", len(msg.Products))
	if msg.Metadata != nil && msg.Metadata.Source != "" {
		content += " via " + msg.Metadata.Source
	}

	return webhookPayload{
		Username: d.username,
		Content:  content,
		Embeds:   embeds,
	}
}
