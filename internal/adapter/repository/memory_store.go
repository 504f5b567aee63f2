package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
)

var _ repositories.Store = (*MemoryStore)(nil)

// MemoryStore keeps meetings and action items in process memory.
// Every method holds the store lock for its whole duration, so each call is
// atomic on its own. Sequences of calls are not.
type MemoryStore struct {
	mu               sync.RWMutex
	meetings         map[int64]entities.Meeting
	actionItems      map[int64]entities.ActionItem
	nextMeetingID    int64
	nextActionItemID int64
	now              func() time.Time
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithClock overrides the time source used for createdAt and analytics
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an empty store. Ids start at 1.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		meetings:         make(map[int64]entities.Meeting),
		actionItems:      make(map[int64]entities.ActionItem),
		nextMeetingID:    1,
		nextActionItemID: 1,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMeeting stores a new meeting
func (s *MemoryStore) CreateMeeting(ctx context.Context, in entities.NewMeeting) (entities.Meeting, error) {
	if strings.TrimSpace(in.Title) == "" {
		return entities.Meeting{}, entities.ErrEmptyMeetingTitle
	}
	status := in.Status
	if status == "" {
		status = entities.MeetingStatusUploaded
	}
	if !status.IsValid() {
		return entities.Meeting{}, fmt.Errorf("%w: %q", entities.ErrInvalidMeetingStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := entities.Meeting{
		ID:             s.nextMeetingID,
		Title:          in.Title,
		Date:           in.Date,
		Duration:       in.Duration,
		Status:         status,
		AudioReference: in.AudioReference,
		Transcription:  in.Transcription,
		MeetingType:    in.MeetingType,
		Participants:   in.Participants,
		CreatedAt:      s.now(),
	}.Clone()
	s.nextMeetingID++
	s.meetings[m.ID] = m

	return m.Clone(), nil
}

// GetMeeting returns a copy of the meeting with the given id
func (s *MemoryStore) GetMeeting(ctx context.Context, id int64) (entities.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.meetings[id]
	if !ok {
		return entities.Meeting{}, entities.ErrMeetingNotFound
	}
	return m.Clone(), nil
}

// ListMeetings returns all meetings ordered by date, newest first
func (s *MemoryStore) ListMeetings(ctx context.Context) ([]entities.MeetingWithStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.withStats(func(entities.Meeting) bool { return true }), nil
}

// UpdateMeeting merges patch into the stored meeting.
// Status changes that would move the lifecycle backwards are rejected.
func (s *MemoryStore) UpdateMeeting(ctx context.Context, id int64, patch entities.MeetingPatch) (entities.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.meetings[id]
	if !ok {
		return entities.Meeting{}, entities.ErrMeetingNotFound
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return entities.Meeting{}, entities.ErrEmptyMeetingTitle
		}
		m.Title = *patch.Title
	}
	if patch.Status != nil {
		if !m.Status.CanTransitionTo(*patch.Status) {
			return entities.Meeting{}, fmt.Errorf("%w: %s -> %s", entities.ErrInvalidStatusTransition, m.Status, *patch.Status)
		}
		m.Status = *patch.Status
	}
	if patch.Date != nil {
		m.Date = *patch.Date
	}
	if patch.Duration != nil {
		m.Duration = patch.Duration
	}
	if patch.ClearAudioReference {
		m.AudioReference = nil
	} else if patch.AudioReference != nil {
		m.AudioReference = patch.AudioReference
	}
	if patch.Transcription != nil {
		m.Transcription = patch.Transcription
	}
	if patch.MeetingType != nil {
		m.MeetingType = patch.MeetingType
	}
	if patch.Participants != nil {
		m.Participants = *patch.Participants
	}

	m = m.Clone()
	s.meetings[id] = m
	return m.Clone(), nil
}

// DeleteMeeting removes the meeting's action items, then the meeting
func (s *MemoryStore) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for itemID, item := range s.actionItems {
		if item.MeetingID == id {
			delete(s.actionItems, itemID)
		}
	}

	if _, ok := s.meetings[id]; !ok {
		return false, nil
	}
	delete(s.meetings, id)
	return true, nil
}

// SearchMeetings does a case-insensitive substring match on title,
// transcription and participant names
func (s *MemoryStore) SearchMeetings(ctx context.Context, query string) ([]entities.MeetingWithStats, error) {
	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(v string) bool {
		return strings.Contains(fold.String(v), needle)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.withStats(func(m entities.Meeting) bool {
		if contains(m.Title) {
			return true
		}
		if m.Transcription != nil && contains(*m.Transcription) {
			return true
		}
		return slices.ContainsFunc(m.Participants, contains)
	}), nil
}

// withStats must be called with the lock held
func (s *MemoryStore) withStats(keep func(entities.Meeting) bool) []entities.MeetingWithStats {
	total := make(map[int64]int)
	pending := make(map[int64]int)
	for _, item := range s.actionItems {
		total[item.MeetingID]++
		if item.IsPending() {
			pending[item.MeetingID]++
		}
	}

	out := make([]entities.MeetingWithStats, 0, len(s.meetings))
	for _, m := range s.meetings {
		if !keep(m) {
			continue
		}
		out = append(out, entities.MeetingWithStats{
			Meeting:            m.Clone(),
			ActionItemsCount:   total[m.ID],
			PendingActionItems: pending[m.ID],
		})
	}

	slices.SortFunc(out, func(a, b entities.MeetingWithStats) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}

// CreateActionItem stores a new action item. The referenced meeting must exist.
func (s *MemoryStore) CreateActionItem(ctx context.Context, in entities.NewActionItem) (entities.ActionItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return entities.ActionItem{}, entities.ErrEmptyActionItemTitle
	}
	status := in.Status
	if status == "" {
		status = entities.ActionItemStatusPending
	}
	if !status.IsValid() {
		return entities.ActionItem{}, fmt.Errorf("%w: %q", entities.ErrInvalidActionItemStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.meetings[in.MeetingID]; !ok {
		return entities.ActionItem{}, entities.ErrMeetingNotFound
	}

	item := entities.ActionItem{
		ID:          s.nextActionItemID,
		MeetingID:   in.MeetingID,
		Title:       in.Title,
		Description: in.Description,
		Assignee:    in.Assignee,
		Status:      status,
		DueDate:     in.DueDate,
		CreatedAt:   s.now(),
	}.Clone()
	s.nextActionItemID++
	s.actionItems[item.ID] = item

	return item.Clone(), nil
}

// GetActionItem returns a copy of the action item with the given id
func (s *MemoryStore) GetActionItem(ctx context.Context, id int64) (entities.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.actionItems[id]
	if !ok {
		return entities.ActionItem{}, entities.ErrActionItemNotFound
	}
	return item.Clone(), nil
}

// ListActionItemsForMeeting returns the meeting's items in creation order
func (s *MemoryStore) ListActionItemsForMeeting(ctx context.Context, meetingID int64) ([]entities.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collect(func(item entities.ActionItem) bool { return item.MeetingID == meetingID })
	slices.SortFunc(items, func(a, b entities.ActionItem) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return items, nil
}

// ListAllActionItems returns every item, newest first
func (s *MemoryStore) ListAllActionItems(ctx context.Context) ([]entities.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collect(func(entities.ActionItem) bool { return true })
	slices.SortFunc(items, newestFirst)
	return items, nil
}

// ListPendingActionItems returns pending items. Items with a due date come
// first, soonest due first; undated items follow, newest first.
func (s *MemoryStore) ListPendingActionItems(ctx context.Context) ([]entities.ActionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collect(entities.ActionItem.IsPending)
	slices.SortFunc(items, func(a, b entities.ActionItem) int {
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if c := a.DueDate.Compare(*b.DueDate); c != 0 {
				return c
			}
		case a.DueDate != nil:
			return -1
		case b.DueDate != nil:
			return 1
		}
		return newestFirst(a, b)
	})
	return items, nil
}

// UpdateActionItem merges patch into the stored item
func (s *MemoryStore) UpdateActionItem(ctx context.Context, id int64, patch entities.ActionItemPatch) (entities.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.actionItems[id]
	if !ok {
		return entities.ActionItem{}, entities.ErrActionItemNotFound
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return entities.ActionItem{}, entities.ErrEmptyActionItemTitle
		}
		item.Title = *patch.Title
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return entities.ActionItem{}, fmt.Errorf("%w: %q", entities.ErrInvalidActionItemStatus, *patch.Status)
		}
		item.Status = *patch.Status
	}
	if patch.ClearDescription {
		item.Description = nil
	} else if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.ClearAssignee {
		item.Assignee = nil
	} else if patch.Assignee != nil {
		item.Assignee = patch.Assignee
	}
	if patch.ClearDueDate {
		item.DueDate = nil
	} else if patch.DueDate != nil {
		item.DueDate = patch.DueDate
	}

	item = item.Clone()
	s.actionItems[id] = item
	return item.Clone(), nil
}

// DeleteActionItem removes a single action item
func (s *MemoryStore) DeleteActionItem(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actionItems[id]; !ok {
		return false, nil
	}
	delete(s.actionItems, id)
	return true, nil
}

// collect must be called with the lock held
func (s *MemoryStore) collect(keep func(entities.ActionItem) bool) []entities.ActionItem {
	out := make([]entities.ActionItem, 0)
	for _, item := range s.actionItems {
		if keep(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}

func newestFirst(a, b entities.ActionItem) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
