package handler

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-insights/internal/adapter/presenter"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	meetingUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
)

const idempotencyHeader = "Idempotency-Key"

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	service        meetingUsecase.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(service meetingUsecase.Service, maxUploadBytes int64, logger *zap.Logger) *Meeting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meeting{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadMeeting handles POST /meetings
// @Summary      Upload a meeting recording
// @Description  Creates a meeting from an audio file and starts transcription in the background
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        title            formData  string  true   "Meeting title"
// @Param        date             formData  string  true   "Meeting date (ISO 8601)"
// @Param        meetingType      formData  string  false  "Meeting type"
// @Param        participants     formData  string  false  "JSON array of names, or repeat the field"
// @Param        autoAnalysis     formData  bool    false  "Extract action items after transcription (default true)"
// @Param        audio            formData  file    true   "MP3, WAV or M4A recording"
// @Param        Idempotency-Key  header    string  false  "Replays the first upload made with this key"
// @Success      201  {object}  common.SuccessResponse{data=meeting.UploadMeetingResponse}  "Upload accepted"
// @Success      200  {object}  common.SuccessResponse{data=meeting.UploadMeetingResponse}  "Replayed upload"
// @Failure      400  {object}  common.ErrorResponse  "Invalid request or validation failed"
// @Failure      409  {object}  common.ErrorResponse  "Upload with the same key in progress"
// @Failure      413  {object}  common.ErrorResponse  "File too large"
// @Router       /meetings [post]
func (h *Meeting) UploadMeeting(c echo.Context) error {
	var req meeting.UploadMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err))
	}

	autoAnalysis := true
	if req.AutoAnalysis != "" {
		v, err := strconv.ParseBool(req.AutoAnalysis)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("autoAnalysis must be true or false"))
		}
		autoAnalysis = v
	}

	form, err := c.MultipartForm()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	participants, err := parseParticipants(form.Value["participants"])
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.UploadInput{
		Title:          req.Title,
		Date:           req.Date,
		Participants:   participants,
		AutoAnalysis:   autoAnalysis,
		IdempotencyKey: c.Request().Header.Get(idempotencyHeader),
	}
	if req.MeetingType != "" {
		input.MeetingType = &req.MeetingType
	}

	fh, err := c.FormFile("audio")
	switch {
	case stdErrors.Is(err, http.ErrMissingFile):
	case err != nil:
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	default:
		file, err := fh.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		defer file.Close()

		input.Audio = &meetingUsecase.AudioFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Reader:      file,
		}
	}

	output, err := h.service.Upload(c.Request().Context(), input)
	if err != nil {
		if stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge) {
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxUploadBytes))
		}
		if stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudio) && input.Audio != nil {
			return HandleError(h.logger, c, errors.ErrUnsupportedMedia(input.Audio.ContentType))
		}
		return HandleError(h.logger, c, err)
	}

	resp := &meeting.UploadMeetingResponse{
		Meeting:  presenter.ToMeetingResponse(output.Meeting),
		Replayed: output.Replayed,
	}
	if output.Task != nil {
		resp.JobID = output.Task.ID().String()
	}

	status := http.StatusCreated
	if output.Replayed {
		status = http.StatusOK
	}
	return HandleSuccessWithStatus(h.logger, c, status, resp)
}

// parseParticipants accepts either one JSON array string or repeated values
func parseParticipants(values []string) ([]string, error) {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var names []string
		if err := json.Unmarshal([]byte(values[0]), &names); err != nil {
			return nil, usecaseErrors.Invalid("participants", usecaseErrors.ErrInvalidParticipant)
		}
		return names, nil
	}
	return values, nil
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists all meetings, most recent first, with action item counts
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=[]meeting.MeetingListItem}
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	meetings, err := h.service.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// SearchMeetings handles GET /meetings/search/:query
// @Summary      Search meetings
// @Description  Case-insensitive search over title, transcription and participants
// @Tags         Meetings
// @Produce      json
// @Param        query  path      string  true  "At least 3 characters"
// @Success      200    {object}  common.SuccessResponse{data=[]meeting.MeetingListItem}
// @Failure      400    {object}  common.ErrorResponse  "Query too short"
// @Router       /meetings/search/{query} [get]
func (h *Meeting) SearchMeetings(c echo.Context) error {
	meetings, err := h.service.SearchMeetings(c.Request().Context(), c.Param("query"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorResponse  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.service.GetMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// UpdateMeeting handles PATCH /meetings/:id
// @Summary      Update a meeting
// @Description  Updates title, date, meeting type or participants
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Meeting ID"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200      {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /meetings/{id} [patch]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meeting.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation(err))
	}

	m, err := h.service.UpdateMeeting(c.Request().Context(), id, meetingUsecase.UpdateMeetingInput{
		Title:        req.Title,
		Date:         req.Date,
		MeetingType:  req.MeetingType,
		Participants: req.Participants,
	})
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Deletes the meeting and all of its action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.service.DeleteMeeting(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, map[string]int64{"id": id})
}

// ListMeetingActionItems handles GET /meetings/:id/action-items
// @Summary      List a meeting's action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=[]actionitem.ActionItemResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/action-items [get]
func (h *Meeting) ListMeetingActionItems(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	items, err := h.service.ListActionItems(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, presenter.ToActionItemListResponse(items))
}

// GetMeetingSummary handles GET /meetings/:id/summary
// @Summary      Summarize a meeting
// @Description  Generates a summary of the transcription with the language model
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=dto.MeetingSummaryResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Meeting not transcribed"
// @Failure      503  {object}  common.ErrorResponse  "Language model not configured"
// @Router       /meetings/{id}/summary [get]
func (h *Meeting) GetMeetingSummary(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	summary, err := h.service.Summarize(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, &dto.MeetingSummaryResponse{MeetingID: id, Summary: summary})
}

// GetMeetingTopics handles GET /meetings/:id/topics
// @Summary      Key topics of a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse{data=dto.KeyTopicsResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Meeting not transcribed"
// @Router       /meetings/{id}/topics [get]
func (h *Meeting) GetMeetingTopics(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	topics, err := h.service.KeyTopics(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, withMeetingID(err, id))
	}
	return HandleSuccess(h.logger, c, &dto.KeyTopicsResponse{MeetingID: id, Topics: topics})
}

// withMeetingID attaches the meeting id to meeting scoped errors
func withMeetingID(err error, id int64) error {
	appErr := toAppError(err)
	switch appErr.Code {
	case errors.ErrorCode_MEETING_NOT_FOUND:
		return errors.ErrMeetingNotFound(id)
	case errors.ErrorCode_MEETING_NOT_TRANSCRIBED:
		return errors.ErrMeetingNotTranscribed(id)
	}
	return appErr
}
