package repository

import (
	"context"
	"math"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

const (
	frequencyDays   = 30
	frequencyLayout = "Jan 02"
)

// ComputeAnalytics derives productivity statistics from the current contents
// of the store. Nothing is cached.
func (s *MemoryStore) ComputeAnalytics(ctx context.Context) (entities.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)
	recentSince := now.AddDate(0, 0, -frequencyDays)

	var (
		totalMinutes int
		weekly       int
		recent       int
		perDay       = make(map[string]int)
	)
	for _, m := range s.meetings {
		if m.Duration != nil {
			totalMinutes += *m.Duration
		}
		if !m.Date.Before(weekStart) && m.Date.Before(weekEnd) {
			weekly++
		}
		if !m.Date.Before(recentSince) {
			recent++
		}
		perDay[m.Date.In(now.Location()).Format(time.DateOnly)]++
	}

	var completed, pending int
	for _, item := range s.actionItems {
		switch item.Status {
		case entities.ActionItemStatusCompleted:
			completed++
		case entities.ActionItemStatusPending:
			pending++
		}
	}

	totalMeetings := len(s.meetings)
	totalItems := len(s.actionItems)

	a := entities.Analytics{
		TotalMeetings:    totalMeetings,
		TotalHours:       round1(float64(totalMinutes) / 60),
		CompletedActions: completed,
		WeeklyMeetings:   weekly,
		MeetingFrequency: make([]entities.FrequencyPoint, 0, frequencyDays),
		ActionItemCompletion: entities.ActionItemCompletion{
			Completed: completed,
			Pending:   pending,
		},
		MeetingsPerWeek: round1(float64(recent) / 4),
	}
	if totalMeetings > 0 {
		a.AvgDuration = int(math.Round(float64(totalMinutes) / float64(totalMeetings)))
		a.ActionItemsPerMeeting = round1(float64(totalItems) / float64(totalMeetings))
	}
	if totalItems > 0 {
		a.ProductivityScore = int(math.Round(float64(completed) / float64(totalItems) * 100))
	}

	for i := frequencyDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		a.MeetingFrequency = append(a.MeetingFrequency, entities.FrequencyPoint{
			Date:  day.Format(frequencyLayout),
			Count: perDay[day.Format(time.DateOnly)],
		})
	}

	return a, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
