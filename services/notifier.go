package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"vetdesk-backend/models"
)

// Notifier accepts a notification for a recipient. Dispatch is best-effort;
// the transition that triggered it never fails because delivery did.
type Notifier interface {
	Notify(ctx context.Context, recipientID uuid.UUID, notificationType, content string)
}

// TwilioNotifier writes a NotificationLog row for every request and hands the
// message to Twilio when credentials are configured. Without credentials the
// log row is still written with a pending status and delivery is left to an
// out-of-band dispatcher.
type TwilioNotifier struct {
	logs    NotificationStore
	clients ClientStore
	client  *twilio.RestClient
	from    string
	waFrom  string
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	FromNumber     string
	WhatsAppNumber string
}

func NewTwilioNotifier(logs NotificationStore, clients ClientStore, cfg TwilioConfig) *TwilioNotifier {
	n := &TwilioNotifier{
		logs:    logs,
		clients: clients,
		from:    cfg.FromNumber,
		waFrom:  cfg.WhatsAppNumber,
	}
	if cfg.AccountSID != "" && cfg.AuthToken != "" {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		})
	}
	return n
}

func (n *TwilioNotifier) Notify(ctx context.Context, recipientID uuid.UUID, notificationType, content string) {
	entry := &models.NotificationLog{
		RecipientID:      recipientID,
		NotificationType: notificationType,
		Content:          content,
		DeliveryStatus:   models.DeliveryPending,
	}
	if err := n.logs.Create(ctx, entry); err != nil {
		log.Printf("[notify] failed to log %s for %s: %v", notificationType, recipientID, err)
		return
	}

	if n.client == nil {
		return
	}

	client, err := n.clients.GetByID(ctx, recipientID)
	if err != nil || client.Phone == "" {
		entry.DeliveryStatus = models.DeliveryFailed
		entry.ErrorMessage = "recipient has no reachable phone"
		n.saveOutcome(ctx, entry)
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetBody(content)
	if strings.HasPrefix(client.Phone, "+") && n.waFrom != "" {
		params.SetTo("whatsapp:" + client.Phone)
		params.SetFrom("whatsapp:" + n.waFrom)
		entry.Channel = "whatsapp"
	} else {
		params.SetTo(client.Phone)
		params.SetFrom(n.from)
		entry.Channel = "sms"
	}

	now := time.Now()
	if _, err := n.client.Api.CreateMessage(params); err != nil {
		log.Printf("[notify] send to %s failed: %v", client.Phone, err)
		entry.DeliveryStatus = models.DeliveryFailed
		entry.ErrorMessage = err.Error()
	} else {
		entry.DeliveryStatus = models.DeliveryDelivered
		entry.SentAt = &now
	}
	n.saveOutcome(ctx, entry)
}

func (n *TwilioNotifier) saveOutcome(ctx context.Context, entry *models.NotificationLog) {
	if err := n.logs.Update(ctx, entry); err != nil {
		log.Printf("[notify] failed to update log %s: %v", entry.ID, err)
	}
}
