package presenter

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

var actionItemCSVHeader = []string{
	"ID", "Meeting ID", "Title", "Description", "Assignee", "Status", "Due Date", "Created At",
}

// ToActionItemResponse converts an ActionItem entity to its DTO
func ToActionItemResponse(a entities.ActionItem) *actionitem.ActionItemResponse {
	return &actionitem.ActionItemResponse{
		ID:          a.ID,
		MeetingID:   a.MeetingID,
		Title:       a.Title,
		Description: a.Description,
		Assignee:    a.Assignee,
		Status:      string(a.Status),
		DueDate:     a.DueDate,
		CreatedAt:   a.CreatedAt,
	}
}

// ToActionItemListResponse converts action items, keeping their order
func ToActionItemListResponse(items []entities.ActionItem) []*actionitem.ActionItemResponse {
	out := make([]*actionitem.ActionItemResponse, len(items))
	for i, a := range items {
		out[i] = ToActionItemResponse(a)
	}
	return out
}

// WriteActionItemsCSV writes items as CSV with a header row. Every data
// value is enclosed in double quotes with embedded quotes doubled, so
// delimiters and newlines inside a value never break a row. Timestamps are
// RFC 3339; missing values are empty quoted cells.
func WriteActionItemsCSV(w io.Writer, items []entities.ActionItem) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(actionItemCSVHeader, ",") + "\n"); err != nil {
		return err
	}

	for _, a := range items {
		record := []string{
			strconv.FormatInt(a.ID, 10),
			strconv.FormatInt(a.MeetingID, 10),
			a.Title,
			deref(a.Description),
			deref(a.Assignee),
			string(a.Status),
			formatTime(a.DueDate),
			a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writeQuotedRecord(bw, record); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeQuotedRecord(w *bufio.Writer, record []string) error {
	for i, field := range record {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(field, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
