// Package client holds the session-side view of a user's journal: the
// date-ordered timeline, reconciliation of pushed events with fetched
// history, and the realtime connection that feeds it.
package client

import (
	"sort"
	"sync"

	"github.com/warbee0712/lunajoy/models"
)

// Timeline is the in-memory projection the chart renders from: one sequence
// per field, aligned by index to the same date. All sequences always have
// equal length.
type Timeline struct {
	Dates                    []string
	Mood                     []int
	Anxiety                  []int
	Stress                   []int
	SleepHours               []float64
	SleepQuality             []string
	PhysicalActivity         []string
	PhysicalActivityDuration []int
	SocialInteractions       []int
	Symptoms                 []string
	SymptomSeverity          []int
}

// Len returns the number of entries in the timeline.
func (t Timeline) Len() int { return len(t.Dates) }

func (t *Timeline) containsDate(date string) bool {
	for _, d := range t.Dates {
		if d == date {
			return true
		}
	}
	return false
}

func (t *Timeline) append(e models.MentalHealthLog) {
	t.Dates = append(t.Dates, e.LogDate)
	t.Mood = append(t.Mood, e.Mood)
	t.Anxiety = append(t.Anxiety, e.Anxiety)
	t.Stress = append(t.Stress, e.Stress)
	t.SleepHours = append(t.SleepHours, e.SleepHours)
	t.SleepQuality = append(t.SleepQuality, e.SleepQuality)
	t.PhysicalActivity = append(t.PhysicalActivity, e.PhysicalActivity)
	t.PhysicalActivityDuration = append(t.PhysicalActivityDuration, e.PhysicalActivityDuration)
	t.SocialInteractions = append(t.SocialInteractions, e.SocialInteractions)
	t.Symptoms = append(t.Symptoms, e.Symptoms)
	t.SymptomSeverity = append(t.SymptomSeverity, e.SymptomSeverity)
}

// RoomMembership is the reconciler's handle on the realtime channel; the
// websocket Client implements it.
type RoomMembership interface {
	Join(userID string) error
	Leave(userID string) error
}

// Reconciler owns the timeline for the active user. It merges the initial
// bulk fetch with pushed events, deduplicating pushes by date.
type Reconciler struct {
	mu     sync.Mutex
	userID string
	tl     Timeline
	rooms  RoomMembership
}

// NewReconciler builds a reconciler with no active user. rooms may be nil
// when there is no realtime connection.
func NewReconciler(rooms RoomMembership) *Reconciler {
	return &Reconciler{rooms: rooms}
}

// ActiveUser returns the user the timeline currently belongs to.
func (r *Reconciler) ActiveUser() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userID
}

// Timeline returns a copy of the current timeline.
func (r *Reconciler) Timeline() Timeline {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := Timeline{}
	cp.Dates = append(cp.Dates, r.tl.Dates...)
	cp.Mood = append(cp.Mood, r.tl.Mood...)
	cp.Anxiety = append(cp.Anxiety, r.tl.Anxiety...)
	cp.Stress = append(cp.Stress, r.tl.Stress...)
	cp.SleepHours = append(cp.SleepHours, r.tl.SleepHours...)
	cp.SleepQuality = append(cp.SleepQuality, r.tl.SleepQuality...)
	cp.PhysicalActivity = append(cp.PhysicalActivity, r.tl.PhysicalActivity...)
	cp.PhysicalActivityDuration = append(cp.PhysicalActivityDuration, r.tl.PhysicalActivityDuration...)
	cp.SocialInteractions = append(cp.SocialInteractions, r.tl.SocialInteractions...)
	cp.Symptoms = append(cp.Symptoms, r.tl.Symptoms...)
	cp.SymptomSeverity = append(cp.SymptomSeverity, r.tl.SymptomSeverity...)
	return cp
}

// SetUser switches the active user. Ordering matters: leave the old room,
// clear the timeline, then join the new room, so no event from the previous
// user can land in the new timeline. An empty userID is a logout.
// The membership calls are network writes and happen outside the lock, so a
// stalled connection cannot block ApplyPushed or Timeline.
func (r *Reconciler) SetUser(userID string) {
	r.mu.Lock()
	prev := r.userID
	r.mu.Unlock()

	if r.rooms != nil && prev != "" && prev != userID {
		_ = r.rooms.Leave(prev)
	}

	r.mu.Lock()
	r.tl = Timeline{}
	r.userID = userID
	r.mu.Unlock()

	if r.rooms != nil && userID != "" {
		_ = r.rooms.Join(userID)
	}
}

// LoadInitial replaces the timeline wholesale with entries sorted ascending
// by log date. Called once after the bulk fetch.
func (r *Reconciler) LoadInitial(entries []models.MentalHealthLog) {
	sorted := make([]models.MentalHealthLog, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LogDate < sorted[j].LogDate
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tl = Timeline{}
	for _, e := range sorted {
		r.tl.append(e)
	}
}

// ApplyPushed merges one pushed event into the timeline. Events for another
// user are discarded, as are events whose date is already present; applying
// the same event twice leaves the timeline unchanged. Fields the reduced
// projection does not carry are appended as zero values, keeping all
// sequences aligned. Reports whether the event was applied.
func (r *Reconciler) ApplyPushed(event models.LogCreatedEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.UserID != r.userID {
		return false
	}
	if r.tl.containsDate(event.LogDate) {
		return false
	}

	r.tl.append(models.MentalHealthLog{
		UserID:  event.UserID,
		LogDate: event.LogDate,
		Mood:    event.Mood,
		Anxiety: event.Anxiety,
		Stress:  event.Stress,
	})
	return true
}
