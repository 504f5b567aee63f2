package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/actionitem"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	actionItemUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/actionitem"
)

// ActionItem handles action item HTTP requests
type ActionItem struct {
	service actionItemUsecase.Service
	logger  *zap.Logger
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(service actionItemUsecase.Service, logger *zap.Logger) *ActionItem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionItem{service: service, logger: logger}
}

// ListActionItems handles GET /action-items
// @Summary      List action items
// @Description  Lists every action item, newest first
// @Tags         Action Items
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]actionitem.ActionItemResponse}
// @Router       /action-items [get]
func (h *ActionItem) ListActionItems(c echo.Context) error {
	items, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemListResponse(items))
}

// ListPendingActionItems handles GET /action-items/pending
// @Summary      List pending action items
// @Description  Items with a due date come first, earliest due date first
// @Tags         Action Items
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]actionitem.ActionItemResponse}
// @Router       /action-items/pending [get]
func (h *ActionItem) ListPendingActionItems(c echo.Context) error {
	items, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemListResponse(items))
}

// CreateActionItem handles POST /action-items
// @Summary      Create an action item
// @Tags         Action Items
// @Accept       json
// @Produce      json
// @Param        request  body      actionitem.CreateActionItemRequest  true  "Action item"
// @Success      201      {object}  common.SuccessResponse{data=actionitem.ActionItemResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Meeting not found"
// @Router       /action-items [post]
func (h *ActionItem) CreateActionItem(c echo.Context) error {
	var req actionitem.CreateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err))
	}

	item, err := h.service.Create(c.Request().Context(), actionItemUsecase.CreateInput{
		MeetingID:   req.MeetingID,
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, req.MeetingID))
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToActionItemResponse(item))
}

// GetActionItem handles GET /action-items/:id
// @Summary      Get an action item
// @Tags         Action Items
// @Produce      json
// @Param        id   path      int  true  "Action item ID"
// @Success      200  {object}  common.SuccessResponse{data=actionitem.ActionItemResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/{id} [get]
func (h *ActionItem) GetActionItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, withActionItemID(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// UpdateActionItem handles PATCH /action-items/:id
// @Summary      Update an action item
// @Description  Partial update. An empty dueDate clears the due date.
// @Tags         Action Items
// @Accept       json
// @Produce      json
// @Param        id       path      int                                 true  "Action item ID"
// @Param        request  body      actionitem.UpdateActionItemRequest  true  "Fields to change"
// @Success      200      {object}  common.SuccessResponse{data=actionitem.ActionItemResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /action-items/{id} [patch]
func (h *ActionItem) UpdateActionItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req actionitem.UpdateActionItemRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err))
	}

	item, err := h.service.Update(c.Request().Context(), id, actionItemUsecase.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Assignee:    req.Assignee,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return HandleError(h.logger, c, withActionItemID(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemResponse(item))
}

// DeleteActionItem handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Tags         Action Items
// @Produce      json
// @Param        id   path      int  true  "Action item ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/{id} [delete]
func (h *ActionItem) DeleteActionItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, withActionItemID(err, id))
	}
	return HandleSuccess(h.logger, c, map[string]int64{"id": id})
}

func withActionItemID(err error, id int64) error {
	appErr := toAppError(err)
	if appErr.Code == errors.ErrorCode_ACTION_ITEM_NOT_FOUND {
		return errors.ErrActionItemNotFound(id)
	}
	return appErr
}
