package presenter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func ptr[T any](v T) *T { return &v }

func TestWriteActionItemsCSV(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	due := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	items := []entities.ActionItem{
		{
			ID:          2,
			MeetingID:   7,
			Title:       `Review "Q1, final" numbers`,
			Description: ptr("line one\nline two"),
			Assignee:    ptr("Ana"),
			Status:      entities.ActionItemStatusPending,
			DueDate:     &due,
			CreatedAt:   created,
		},
		{
			ID:        1,
			MeetingID: 7,
			Title:     "Plain",
			Status:    entities.ActionItemStatusCompleted,
			CreatedAt: created,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteActionItemsCSV(&buf, items))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Meeting ID", "Title", "Description", "Assignee", "Status", "Due Date", "Created At"}, records[0])
	assert.Equal(t, []string{
		"2", "7", `Review "Q1, final" numbers`, "line one\nline two", "Ana", "pending",
		"2025-03-08T00:00:00Z", "2025-03-01T09:30:00Z",
	}, records[1])
	assert.Equal(t, []string{"1", "7", "Plain", "", "", "completed", "", "2025-03-01T09:30:00Z"}, records[2])
}

func TestWriteActionItemsCSV_EveryValueQuoted(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	items := []entities.ActionItem{{
		ID:        5,
		MeetingID: 2,
		Title:     `Say "hi"`,
		Status:    entities.ActionItemStatusPending,
		CreatedAt: created,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteActionItemsCSV(&buf, items))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"5","2","Say ""hi""","","","pending","","2025-03-01T09:30:00Z"`, lines[1])
}

func TestWriteActionItemsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteActionItemsCSV(&buf, nil))
	assert.Equal(t, "ID,Meeting ID,Title,Description,Assignee,Status,Due Date,Created At\n", buf.String())
}

func TestToMeetingListResponse(t *testing.T) {
	in := []entities.MeetingWithStats{
		{
			Meeting:            entities.Meeting{ID: 3, Title: "B", Status: entities.MeetingStatusTranscribed},
			ActionItemsCount:   4,
			PendingActionItems: 1,
		},
		{Meeting: entities.Meeting{ID: 1, Title: "A", Status: entities.MeetingStatusUploaded}},
	}

	out := ToMeetingListResponse(in)
	require.Len(t, out, 2)
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, "transcribed", out[0].Status)
	assert.Equal(t, 4, out[0].ActionItemsCount)
	assert.Equal(t, 1, out[0].PendingActionItems)
	assert.NotNil(t, out[1].Participants)
}
