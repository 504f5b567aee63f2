package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	actionItemUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/actionitem"
	meetingUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
)

const (
	meetingsExportFilename    = "meetings.json"
	actionItemsExportFilename = "action-items.csv"
)

// Report serves analytics and bulk exports
type Report struct {
	meetings    meetingUsecase.Service
	actionItems actionItemUsecase.Service
	logger      *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(meetings meetingUsecase.Service, actionItems actionItemUsecase.Service, logger *zap.Logger) *Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Report{meetings: meetings, actionItems: actionItems, logger: logger}
}

// GetAnalytics handles GET /analytics
// @Summary      Meeting analytics
// @Description  Totals, average duration, productivity score and a 30 day meeting frequency
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=meeting.AnalyticsResponse}
// @Router       /analytics [get]
func (h *Report) GetAnalytics(c echo.Context) error {
	analytics, err := h.meetings.Analytics(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToAnalyticsResponse(analytics))
}

// ExportMeetings handles GET /export/meetings
// @Summary      Export meetings
// @Description  Downloads every meeting with its action item counts as meetings.json
// @Tags         Reports
// @Produce      json
// @Success      200  {array}   meeting.MeetingListItem
// @Failure      500  {object}  common.ErrorResponse
// @Router       /export/meetings [get]
func (h *Report) ExportMeetings(c echo.Context) error {
	meetings, err := h.meetings.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReportExportFailed("json", err))
	}

	setAttachment(c, meetingsExportFilename)
	return c.JSON(http.StatusOK, presenter.ToMeetingListResponse(meetings))
}

// ExportActionItems handles GET /export/action-items
// @Summary      Export action items
// @Description  Downloads every action item as action-items.csv
// @Tags         Reports
// @Produce      text/csv
// @Success      200  {string}  string  "CSV file"
// @Failure      500  {object}  common.ErrorResponse
// @Router       /export/action-items [get]
func (h *Report) ExportActionItems(c echo.Context) error {
	items, err := h.actionItems.ListAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReportExportFailed("csv", err))
	}

	var buf bytes.Buffer
	if err := presenter.WriteActionItemsCSV(&buf, items); err != nil {
		return HandleError(h.logger, c, errors.ErrReportExportFailed("csv", err))
	}

	h.logger.Debug("📤 Action items exported", zap.Int("count", len(items)))

	setAttachment(c, actionItemsExportFilename)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func setAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}
