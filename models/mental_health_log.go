package models

// Sleep quality values accepted on submission.
const (
	SleepQualityGood    = "Good"
	SleepQualityAverage = "Average"
	SleepQualityPoor    = "Poor"
)

// ValidSleepQuality reports whether q is one of the accepted values.
func ValidSleepQuality(q string) bool {
	switch q {
	case SleepQualityGood, SleepQualityAverage, SleepQualityPoor:
		return true
	}
	return false
}

// MentalHealthLog is one calendar-day journal entry. Rows are immutable once
// inserted; there is no update or delete path. The store does not enforce one
// log per user per date.
type MentalHealthLog struct {
	ID                       uint    `gorm:"primaryKey" json:"id"`
	UserID                   string  `gorm:"index;not null" json:"userId"`
	LogDate                  string  `gorm:"index;not null" json:"log_date"` // YYYY-MM-DD
	Mood                     int     `json:"mood"`                           // 0-10
	Anxiety                  int     `json:"anxiety"`                        // 0-10
	Stress                   int     `json:"stress"`                         // 0-10
	SleepHours               float64 `json:"sleep_hours"`
	SleepQuality             string  `gorm:"size:16" json:"sleep_quality"`
	PhysicalActivity         string  `gorm:"type:text" json:"physical_activity"`
	PhysicalActivityDuration int     `json:"physical_activity_duration"` // minutes
	SocialInteractions       int     `json:"social_interactions"`        // 0-10
	Symptoms                 string  `gorm:"type:text" json:"symptoms"`
	SymptomSeverity          int     `json:"symptom_severity"` // 0-10
}

// LogCreatedEvent is the reduced projection pushed to the owner's room after
// a successful submission. Deliberately smaller than the stored row.
type LogCreatedEvent struct {
	ID      uint   `json:"id"`
	UserID  string `json:"userId"`
	Mood    int    `json:"mood"`
	Anxiety int    `json:"anxiety"`
	Stress  int    `json:"stress"`
	LogDate string `json:"log_date"`
}
