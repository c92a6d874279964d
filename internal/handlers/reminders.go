package handlers

import (
	"log"
	"net/http"
	"time"

	"coleta-portal/internal/services"
	"coleta-portal/pkg/utils"
)

// SendReminders handles POST /api/manager/reminders/send. It is meant
// to be hit once a morning by the platform scheduler; running it twice
// just re-sends the same notifications.
func SendReminders(reminders *services.ReminderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reminders == nil {
			utils.RespondError(w, http.StatusServiceUnavailable, "Push notifications are not configured")
			return
		}

		sent, err := reminders.SendDailyReminders(r.Context(), time.Now())
		if err != nil {
			log.Printf("❌ Reminder dispatch failed: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to dispatch reminders")
			return
		}

		log.Printf("✅ Dispatched %d coleta reminders", sent)
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"sent":    sent,
		})
	}
}
