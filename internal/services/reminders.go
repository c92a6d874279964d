package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"coleta-portal/internal/calendar"
	"coleta-portal/internal/database"
)

// ReminderService pushes a "today is collection day" notification to
// every resident who registered a device token and whose agenda has an
// entry for today's weekday. Calls to the routing service use the
// configured service token.
type ReminderService struct {
	store        database.MoradorStore
	rotas        *RotasClient
	fcm          *FCMService
	serviceToken string
}

func NewReminderService(store database.MoradorStore, rotas *RotasClient, fcm *FCMService, serviceToken string) *ReminderService {
	return &ReminderService{
		store:        store,
		rotas:        rotas,
		fcm:          fcm,
		serviceToken: serviceToken,
	}
}

// SendDailyReminders walks the registered residents once. Individual
// failures are logged and skipped so one broken token or upstream
// hiccup does not starve everyone else. Returns how many reminders
// went out.
func (s *ReminderService) SendDailyReminders(ctx context.Context, now time.Time) (int, error) {
	moradores, err := s.store.ListWithFCMTokens()
	if err != nil {
		return 0, err
	}

	todayWeekday := calendar.FromTime(now.Weekday())
	sent := 0

	for _, m := range moradores {
		lat, errLat := strconv.ParseFloat(m.Latitude.String, 64)
		lon, errLon := strconv.ParseFloat(m.Longitude.String, 64)
		if errLat != nil || errLon != nil {
			continue
		}

		dias, err := s.rotas.GetAgenda(ctx, s.serviceToken, lat, lon)
		if err != nil {
			log.Printf("⚠️  Reminder skipped for morador %d: %v", m.ID, err)
			continue
		}

		for _, dia := range dias {
			wd, ok := calendar.ParseDia(dia.Dia)
			if !ok || wd != todayWeekday {
				continue
			}
			if err := s.fcm.SendColetaReminder(m.FCMToken.String, dia); err != nil {
				log.Printf("⚠️  Failed to send reminder to morador %d: %v", m.ID, err)
				continue
			}
			sent++
			break
		}
	}

	return sent, nil
}
