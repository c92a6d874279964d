package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"coleta-portal/internal/models"
)

// FCMService sends collection-day reminders to residents who
// registered a device token.
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates an FCM service instance from a credentials file
func NewFCMService(credentialsFile string) (*FCMService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// NewFCMServiceFromBase64 creates an FCM service instance from base64-encoded
// credentials, useful on hosts (Railway, Fly.io, Render) where uploading a
// credentials file is awkward.
func NewFCMServiceFromBase64(credentialsBase64 string) (*FCMService, error) {
	ctx := context.Background()

	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}

	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// SendColetaReminder tells a resident which residue types get collected
// today. Failures are the caller's to log; residents never see them.
func (s *FCMService) SendColetaReminder(token string, dia models.DiaColeta) error {
	ctx := context.Background()

	body := fmt.Sprintf("Hoje tem coleta de %s", strings.Join(dia.Tipos, ", "))
	if dia.Periodo != "" {
		body = fmt.Sprintf("%s no período da %s", body, strings.ToLower(dia.Periodo))
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Dia de coleta! 🚛",
			Body:  body,
		},
		Data: map[string]string{
			"type":    "coleta_reminder",
			"dia":     dia.Dia,
			"periodo": dia.Periodo,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending FCM message: %w", err)
	}

	log.Printf("✅ Coleta reminder sent: %s", response)
	return nil
}
