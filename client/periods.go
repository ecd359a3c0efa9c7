package client

import (
	"fmt"
	"sort"
	"time"
)

// weekKey formats a date into its ISO-week bucket, e.g. "2024-W18".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// monthKey formats a date into its month bucket, e.g. "2024-05".
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Periods returns the sorted ISO-week and month buckets present in the
// timeline. Dates that fail to parse are skipped.
func (t Timeline) Periods() (weeks, months []string) {
	weekSet := make(map[string]struct{})
	monthSet := make(map[string]struct{})

	for _, d := range t.Dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		weekSet[weekKey(parsed)] = struct{}{}
		monthSet[monthKey(parsed)] = struct{}{}
	}

	for k := range weekSet {
		weeks = append(weeks, k)
	}
	for k := range monthSet {
		months = append(months, k)
	}
	sort.Strings(weeks)
	sort.Strings(months)
	return weeks, months
}

// FilterWeek returns the date-ordered slice of the timeline whose entries
// fall in the given ISO-week bucket.
func (t Timeline) FilterWeek(key string) Timeline {
	return t.filter(func(d time.Time) bool { return weekKey(d) == key })
}

// FilterMonth returns the date-ordered slice of the timeline whose entries
// fall in the given month bucket.
func (t Timeline) FilterMonth(key string) Timeline {
	return t.filter(func(d time.Time) bool { return monthKey(d) == key })
}

func (t Timeline) filter(match func(time.Time) bool) Timeline {
	var idx []int
	for i, d := range t.Dates {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if match(parsed) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Dates[idx[a]] < t.Dates[idx[b]]
	})

	var out Timeline
	for _, i := range idx {
		out.Dates = append(out.Dates, t.Dates[i])
		out.Mood = append(out.Mood, t.Mood[i])
		out.Anxiety = append(out.Anxiety, t.Anxiety[i])
		out.Stress = append(out.Stress, t.Stress[i])
		out.SleepHours = append(out.SleepHours, t.SleepHours[i])
		out.SleepQuality = append(out.SleepQuality, t.SleepQuality[i])
		out.PhysicalActivity = append(out.PhysicalActivity, t.PhysicalActivity[i])
		out.PhysicalActivityDuration = append(out.PhysicalActivityDuration, t.PhysicalActivityDuration[i])
		out.SocialInteractions = append(out.SocialInteractions, t.SocialInteractions[i])
		out.Symptoms = append(out.Symptoms, t.Symptoms[i])
		out.SymptomSeverity = append(out.SymptomSeverity, t.SymptomSeverity[i])
	}
	return out
}
