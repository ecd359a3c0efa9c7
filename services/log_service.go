package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/warbee0712/lunajoy/config"
	"github.com/warbee0712/lunajoy/models"
)

// LogInput carries a log submission. Pointer fields distinguish an absent
// value from a legitimate zero (mood 0 is a valid answer).
type LogInput struct {
	UserID                   string   `json:"userId"`
	LogDate                  string   `json:"log_date"` // optional, YYYY-MM-DD
	Mood                     *int     `json:"mood"`
	Anxiety                  *int     `json:"anxiety"`
	Stress                   *int     `json:"stress"`
	SleepHours               *float64 `json:"sleep_hours"`
	SleepQuality             *string  `json:"sleep_quality"`
	PhysicalActivity         *string  `json:"physical_activity"`
	PhysicalActivityDuration *int     `json:"physical_activity_duration"`
	SocialInteractions       *int     `json:"social_interactions"`
	Symptoms                 *string  `json:"symptoms"`
	SymptomSeverity          *int     `json:"symptom_severity"`
}

// firstMissingField walks the required fields in their contract order and
// returns the first absent one. Empty strings count as absent.
func (in *LogInput) firstMissingField() string {
	checks := []struct {
		name    string
		missing bool
	}{
		{"userId", in.UserID == ""},
		{"mood", in.Mood == nil},
		{"anxiety", in.Anxiety == nil},
		{"stress", in.Stress == nil},
		{"sleep_hours", in.SleepHours == nil},
		{"sleep_quality", in.SleepQuality == nil || *in.SleepQuality == ""},
		{"physical_activity", in.PhysicalActivity == nil || *in.PhysicalActivity == ""},
		{"physical_activity_duration", in.PhysicalActivityDuration == nil},
		{"social_interactions", in.SocialInteractions == nil},
		{"symptoms", in.Symptoms == nil || *in.Symptoms == ""},
		{"symptom_severity", in.SymptomSeverity == nil},
	}
	for _, c := range checks {
		if c.missing {
			return c.name
		}
	}
	return ""
}

// LogService validates and persists log submissions and fans the result out
// to the owner's realtime room.
type LogService struct {
	hub *Hub
}

func NewLogService(hub *Hub) *LogService {
	return &LogService{hub: hub}
}

// SubmitLog persists a new log and publishes its reduced projection to the
// owner's room. The submission succeeds once the row is stored; realtime
// delivery is best-effort and its failure is logged, never surfaced.
func (s *LogService) SubmitLog(in *LogInput) (uint, error) {
	if name := in.firstMissingField(); name != "" {
		return 0, &models.MissingFieldError{Field: name}
	}
	if !models.ValidSleepQuality(*in.SleepQuality) {
		return 0, models.ErrInvalidSleepQuality
	}

	var owner models.User
	if err := config.DB.First(&owner, "id = ?", in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.ErrUnknownUser
		}
		return 0, fmt.Errorf("look up owner: %w", err)
	}

	logDate := in.LogDate
	if logDate == "" {
		logDate = time.Now().Format("2006-01-02")
	}

	entry := models.MentalHealthLog{
		UserID:                   in.UserID,
		LogDate:                  logDate,
		Mood:                     *in.Mood,
		Anxiety:                  *in.Anxiety,
		Stress:                   *in.Stress,
		SleepHours:               *in.SleepHours,
		SleepQuality:             *in.SleepQuality,
		PhysicalActivity:         *in.PhysicalActivity,
		PhysicalActivityDuration: *in.PhysicalActivityDuration,
		SocialInteractions:       *in.SocialInteractions,
		Symptoms:                 *in.Symptoms,
		SymptomSeverity:          *in.SymptomSeverity,
	}

	if err := config.DB.Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("insert log: %w", err)
	}
	logsSubmitted.Inc()

	event := models.LogCreatedEvent{
		ID:      entry.ID,
		UserID:  entry.UserID,
		Mood:    entry.Mood,
		Anxiety: entry.Anxiety,
		Stress:  entry.Stress,
		LogDate: entry.LogDate,
	}
	if err := s.hub.Publish(entry.UserID, Frame{Event: "newLog", Data: event}); err != nil {
		slog.Warn("failed to publish newLog event",
			"userId", entry.UserID, "logId", entry.ID, "error", err)
	}

	slog.Info("log submitted", "userId", entry.UserID, "logId", entry.ID, "logDate", entry.LogDate)
	return entry.ID, nil
}

// GetLogsByUser returns every log owned by userID. An empty result is
// reported as ErrNoLogs so callers can tell it apart from a store failure.
func (s *LogService) GetLogsByUser(userID string) ([]models.MentalHealthLog, error) {
	var logs []models.MentalHealthLog
	if err := config.DB.Where("user_id = ?", userID).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}
	if len(logs) == 0 {
		return nil, models.ErrNoLogs
	}
	return logs, nil
}

// GetLogsByDateRange returns userID's logs with log_date in [from, to].
func (s *LogService) GetLogsByDateRange(userID, from, to string) ([]models.MentalHealthLog, error) {
	var logs []models.MentalHealthLog
	err := config.DB.
		Where("user_id = ? AND log_date BETWEEN ? AND ?", userID, from, to).
		Order("log_date").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("fetch logs by range: %w", err)
	}
	return logs, nil
}
