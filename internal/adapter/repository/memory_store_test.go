package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

// tickingClock advances by one second on every call
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func newTestStore() *MemoryStore {
	return NewMemoryStore(WithClock(tickingClock(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC))))
}

func mustCreateMeeting(t *testing.T, s *MemoryStore, title string, date time.Time) entities.Meeting {
	t.Helper()
	m, err := s.CreateMeeting(context.Background(), entities.NewMeeting{Title: title, Date: date})
	require.NoError(t, err)
	return m
}

func mustCreateItem(t *testing.T, s *MemoryStore, in entities.NewActionItem) entities.ActionItem {
	t.Helper()
	item, err := s.CreateActionItem(context.Background(), in)
	require.NoError(t, err)
	return item
}

func TestMemoryStore_CreateAndGetMeeting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	date := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	created, err := s.CreateMeeting(ctx, entities.NewMeeting{
		Title:        "Planning",
		Date:         date,
		MeetingType:  ptr("planning"),
		Participants: []string{"Ana", "Bo"},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, entities.MeetingStatusUploaded, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetMeeting(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryStore_CreateMeetingValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.CreateMeeting(ctx, entities.NewMeeting{Title: "   "})
	assert.ErrorIs(t, err, entities.ErrEmptyMeetingTitle)

	_, err = s.CreateMeeting(ctx, entities.NewMeeting{Title: "x", Status: "archived"})
	assert.ErrorIs(t, err, entities.ErrInvalidMeetingStatus)
}

func TestMemoryStore_IDsAreMonotonicAndNeverReused(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	date := time.Now()

	first := mustCreateMeeting(t, s, "one", date)
	second := mustCreateMeeting(t, s, "two", date)
	deleted, err := s.DeleteMeeting(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	third := mustCreateMeeting(t, s, "three", date)

	assert.Less(t, first.ID, second.ID)
	assert.Less(t, second.ID, third.ID)

	itemA := mustCreateItem(t, s, entities.NewActionItem{MeetingID: first.ID, Title: "a"})
	itemB := mustCreateItem(t, s, entities.NewActionItem{MeetingID: third.ID, Title: "b"})
	assert.Equal(t, int64(1), itemA.ID)
	assert.Equal(t, int64(2), itemB.ID)
}

func TestMemoryStore_ConcurrentCreatesGetDistinctIDs(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := s.CreateMeeting(context.Background(), entities.NewMeeting{Title: "m", Date: time.Now()})
			if err == nil {
				ids <- m.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestMemoryStore_ReturnedValuesAreCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	m, err := s.CreateMeeting(ctx, entities.NewMeeting{Title: "t", Date: time.Now(), Participants: []string{"Ana"}})
	require.NoError(t, err)
	m.Participants[0] = "Mallory"
	m.Title = "changed"

	got, err := s.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
	assert.Equal(t, []string{"Ana"}, got.Participants)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.GetMeeting(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	_, err = s.GetActionItem(ctx, 42)
	assert.ErrorIs(t, err, entities.ErrActionItemNotFound)

	_, err = s.UpdateMeeting(ctx, 42, entities.MeetingPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	deleted, err := s.DeleteMeeting(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStore_UpdateMeeting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	m := mustCreateMeeting(t, s, "Original", time.Now())

	processing := entities.MeetingStatusProcessing
	updated, err := s.UpdateMeeting(ctx, m.ID, entities.MeetingPatch{
		Title:  ptr("Renamed"),
		Status: &processing,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, entities.MeetingStatusProcessing, updated.Status)
	assert.Equal(t, m.CreatedAt, updated.CreatedAt)
	assert.Equal(t, m.ID, updated.ID)

	t.Run("rejects backwards transition", func(t *testing.T) {
		uploaded := entities.MeetingStatusUploaded
		_, err := s.UpdateMeeting(ctx, m.ID, entities.MeetingPatch{Status: &uploaded})
		assert.ErrorIs(t, err, entities.ErrInvalidStatusTransition)
	})

	t.Run("clears audio reference", func(t *testing.T) {
		_, err := s.UpdateMeeting(ctx, m.ID, entities.MeetingPatch{AudioReference: ptr("uploads/a.mp3")})
		require.NoError(t, err)
		cleared, err := s.UpdateMeeting(ctx, m.ID, entities.MeetingPatch{ClearAudioReference: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.AudioReference)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		_, err := s.UpdateMeeting(ctx, m.ID, entities.MeetingPatch{Title: ptr(" ")})
		assert.ErrorIs(t, err, entities.ErrEmptyMeetingTitle)
	})
}

func TestMemoryStore_DeleteMeetingCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	m := mustCreateMeeting(t, s, "doomed", time.Now())
	other := mustCreateMeeting(t, s, "kept", time.Now())
	for _, title := range []string{"a", "b", "c"} {
		mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: title})
	}
	keep := mustCreateItem(t, s, entities.NewActionItem{MeetingID: other.ID, Title: "keep"})

	deleted, err := s.DeleteMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.GetMeeting(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	items, err := s.ListActionItemsForMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	all, err := s.ListAllActionItems(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestMemoryStore_ListMeetingsOrderAndStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	old := mustCreateMeeting(t, s, "old", day)
	recent := mustCreateMeeting(t, s, "recent", day.AddDate(0, 0, 5))
	sameDay := mustCreateMeeting(t, s, "same day as old", day)

	completed := entities.ActionItemStatusCompleted
	mustCreateItem(t, s, entities.NewActionItem{MeetingID: recent.ID, Title: "one"})
	mustCreateItem(t, s, entities.NewActionItem{MeetingID: recent.ID, Title: "two", Status: completed})

	list, err := s.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, sameDay.ID, list[1].ID, "ties broken by id, newest first")
	assert.Equal(t, old.ID, list[2].ID)

	assert.Equal(t, 2, list[0].ActionItemsCount)
	assert.Equal(t, 1, list[0].PendingActionItems)
	assert.Equal(t, 0, list[2].ActionItemsCount)
}

func TestMemoryStore_SearchMeetings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.CreateMeeting(ctx, entities.NewMeeting{Title: "Weekly Sync", Date: time.Now()})
	require.NoError(t, err)
	_, err = s.CreateMeeting(ctx, entities.NewMeeting{Title: "Retro", Date: time.Now(), Transcription: ptr("we discussed the weekly metrics")})
	require.NoError(t, err)
	_, err = s.CreateMeeting(ctx, entities.NewMeeting{Title: "1:1", Date: time.Now(), Participants: []string{"Weeks, Jordan"}})
	require.NoError(t, err)
	_, err = s.CreateMeeting(ctx, entities.NewMeeting{Title: "Équipe planning", Date: time.Now()})
	require.NoError(t, err)

	results, err := s.SearchMeetings(ctx, "WEEK")
	require.NoError(t, err)
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
	}
	assert.ElementsMatch(t, []string{"Weekly Sync", "Retro", "1:1"}, titles)

	folded, err := s.SearchMeetings(ctx, "éQUIPE")
	require.NoError(t, err)
	require.Len(t, folded, 1)
	assert.Equal(t, "Équipe planning", folded[0].Title)

	none, err := s.SearchMeetings(ctx, "budget")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_CreateActionItemRequiresMeeting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()

	_, err := s.CreateActionItem(ctx, entities.NewActionItem{MeetingID: 99, Title: "orphan"})
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)

	m := mustCreateMeeting(t, s, "m", time.Now())
	item, err := s.CreateActionItem(ctx, entities.NewActionItem{MeetingID: m.ID, Title: "follow up"})
	require.NoError(t, err)
	assert.Equal(t, entities.ActionItemStatusPending, item.Status)

	_, err = s.CreateActionItem(ctx, entities.NewActionItem{MeetingID: m.ID, Title: ""})
	assert.ErrorIs(t, err, entities.ErrEmptyActionItemTitle)
}

func TestMemoryStore_ListActionItemOrders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	m := mustCreateMeeting(t, s, "m", time.Now())

	due := func(day int) *time.Time {
		d := time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	undatedOld := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "undated old"})
	lateDue := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "due 20", DueDate: due(20)})
	done := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "done", Status: entities.ActionItemStatusCompleted})
	earlyDue := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "due 5", DueDate: due(5)})
	undatedNew := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "undated new"})

	ids := func(items []entities.ActionItem) []int64 {
		out := make([]int64, len(items))
		for i, item := range items {
			out[i] = item.ID
		}
		return out
	}

	forMeeting, err := s.ListActionItemsForMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{undatedOld.ID, lateDue.ID, done.ID, earlyDue.ID, undatedNew.ID}, ids(forMeeting))

	all, err := s.ListAllActionItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{undatedNew.ID, earlyDue.ID, done.ID, lateDue.ID, undatedOld.ID}, ids(all))

	pending, err := s.ListPendingActionItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{earlyDue.ID, lateDue.ID, undatedNew.ID, undatedOld.ID}, ids(pending))
}

func TestMemoryStore_UpdateAndDeleteActionItem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore()
	m := mustCreateMeeting(t, s, "m", time.Now())
	due := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	item := mustCreateItem(t, s, entities.NewActionItem{MeetingID: m.ID, Title: "draft", DueDate: &due})

	completed := entities.ActionItemStatusCompleted
	updated, err := s.UpdateActionItem(ctx, item.ID, entities.ActionItemPatch{
		Status:       &completed,
		Assignee:     ptr("Ana"),
		ClearDueDate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, completed, updated.Status)
	assert.Equal(t, "Ana", *updated.Assignee)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "draft", updated.Title)

	updated, err = s.UpdateActionItem(ctx, item.ID, entities.ActionItemPatch{ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Assignee)

	bogus := entities.ActionItemStatus("blocked")
	_, err = s.UpdateActionItem(ctx, item.ID, entities.ActionItemPatch{Status: &bogus})
	assert.ErrorIs(t, err, entities.ErrInvalidActionItemStatus)

	deleted, err := s.DeleteActionItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteActionItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
