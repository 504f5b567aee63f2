package actionitem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/pkg/dateparse"
)

// Service defines the interface for the action item use case
type Service interface {
	Create(ctx context.Context, input CreateInput) (entities.ActionItem, error)
	Get(ctx context.Context, id int64) (entities.ActionItem, error)

	// ListAll returns every action item, newest first
	ListAll(ctx context.Context) ([]entities.ActionItem, error)

	// ListPending returns open items, those with a due date first
	ListPending(ctx context.Context) ([]entities.ActionItem, error)

	Update(ctx context.Context, id int64, input UpdateInput) (entities.ActionItem, error)
	Delete(ctx context.Context, id int64) error
}

// Ensure ActionItemService implements Service interface
var _ Service = (*ActionItemService)(nil)

// CreateInput represents input for creating an action item by hand
type CreateInput struct {
	MeetingID   int64
	Title       string
	Description *string
	Assignee    *string
	Status      *string
	DueDate     *string
}

// UpdateInput lists the fields to change. A blank Description, Assignee or
// DueDate clears that field.
type UpdateInput struct {
	Title       *string
	Description *string
	Assignee    *string
	Status      *string
	DueDate     *string
}

// ActionItemService handles action item business logic
type ActionItemService struct {
	store  repositories.ActionItemRepository
	logger *zap.Logger
}

// NewActionItemService creates a new action item service
func NewActionItemService(store repositories.ActionItemRepository, logger *zap.Logger) *ActionItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionItemService{store: store, logger: logger}
}

// Create validates the input and stores a new action item. The meeting
// must exist.
func (s *ActionItemService) Create(ctx context.Context, input CreateInput) (entities.ActionItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return entities.ActionItem{}, usecaseErrors.Invalid("title", entities.ErrEmptyActionItemTitle)
	}

	status := entities.ActionItemStatusPending
	if input.Status != nil {
		parsed, err := parseStatus(*input.Status)
		if err != nil {
			return entities.ActionItem{}, err
		}
		status = parsed
	}

	var due *time.Time
	if input.DueDate != nil && strings.TrimSpace(*input.DueDate) != "" {
		t, err := parseDueDate(*input.DueDate)
		if err != nil {
			return entities.ActionItem{}, err
		}
		due = &t
	}

	item, err := s.store.CreateActionItem(ctx, entities.NewActionItem{
		MeetingID:   input.MeetingID,
		Title:       title,
		Description: trimOptional(input.Description),
		Assignee:    trimOptional(input.Assignee),
		Status:      status,
		DueDate:     due,
	})
	if err != nil {
		return entities.ActionItem{}, err
	}

	s.logger.Info("✅ Action item created",
		zap.Int64("action_item_id", item.ID),
		zap.Int64("meeting_id", item.MeetingID),
	)
	return item, nil
}

// Get retrieves an action item by ID
func (s *ActionItemService) Get(ctx context.Context, id int64) (entities.ActionItem, error) {
	return s.store.GetActionItem(ctx, id)
}

func (s *ActionItemService) ListAll(ctx context.Context) ([]entities.ActionItem, error) {
	return s.store.ListAllActionItems(ctx)
}

func (s *ActionItemService) ListPending(ctx context.Context) ([]entities.ActionItem, error) {
	return s.store.ListPendingActionItems(ctx)
}

// Update applies a partial change to an action item
func (s *ActionItemService) Update(ctx context.Context, id int64, input UpdateInput) (entities.ActionItem, error) {
	var patch entities.ActionItemPatch

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.ActionItem{}, usecaseErrors.Invalid("title", entities.ErrEmptyActionItemTitle)
		}
		patch.Title = &title
	}
	if input.Description != nil {
		patch.Description = trimOptional(input.Description)
		patch.ClearDescription = patch.Description == nil
	}
	if input.Assignee != nil {
		patch.Assignee = trimOptional(input.Assignee)
		patch.ClearAssignee = patch.Assignee == nil
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return entities.ActionItem{}, err
		}
		patch.Status = &status
	}
	if input.DueDate != nil {
		if strings.TrimSpace(*input.DueDate) == "" {
			patch.ClearDueDate = true
		} else {
			t, err := parseDueDate(*input.DueDate)
			if err != nil {
				return entities.ActionItem{}, err
			}
			patch.DueDate = &t
		}
	}

	return s.store.UpdateActionItem(ctx, id, patch)
}

// Delete removes an action item
func (s *ActionItemService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteActionItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return entities.ErrActionItemNotFound
	}
	return nil
}

func parseStatus(raw string) (entities.ActionItemStatus, error) {
	status := entities.ActionItemStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", usecaseErrors.Invalid("status", fmt.Errorf("%w: %q", entities.ErrInvalidActionItemStatus, raw))
	}
	return status, nil
}

func parseDueDate(raw string) (time.Time, error) {
	t, err := dateparse.Parse(raw)
	if err != nil {
		return time.Time{}, usecaseErrors.Invalid("dueDate", fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidDate, err))
	}
	return t, nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}
