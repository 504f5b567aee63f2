package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ingest"
)

// getRequestID reads the request id set by the RequestID middleware
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// parseID reads a positive integer path parameter
func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidArgument(name + " must be a positive integer")
	}
	return id, nil
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleSuccessWithStatus(logger, c, http.StatusOK, data)
}

// HandleSuccessWithStatus is HandleSuccess with an explicit HTTP status
func HandleSuccessWithStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger.
// Server errors never expose their cause to the client.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", appErr.HTTPCode),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Info("http.response.error", fields...)
		}
	}

	body := common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if appErr.HTTPCode < http.StatusInternalServerError && appErr.Raw != nil {
		body.Info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}

// toAppError maps use case and domain errors onto HTTP facing AppErrors
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var (
		validationErr *usecaseErrors.ValidationError
		extractionErr *ai.ExtractionError
	)

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge):
		return errors.ErrPayloadTooLarge(0)
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudio):
		appErr = errors.ErrUnsupportedMedia("")
		appErr.Raw = err
		return appErr
	case stdErrors.As(err, &validationErr):
		return errors.ErrValidation(err).WithDetail("field", validationErr.Field)
	case stdErrors.Is(err, entities.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(0)
	case stdErrors.Is(err, entities.ErrActionItemNotFound):
		return errors.ErrActionItemNotFound(0)
	case stdErrors.Is(err, entities.ErrInvalidStatusTransition):
		return errors.ErrMeetingInvalidTransition(err)
	case stdErrors.Is(err, entities.ErrEmptyMeetingTitle),
		stdErrors.Is(err, entities.ErrEmptyActionItemTitle),
		stdErrors.Is(err, entities.ErrInvalidActionItemStatus),
		stdErrors.Is(err, entities.ErrInvalidMeetingStatus):
		return errors.ErrValidation(err)
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotTranscribed):
		return errors.ErrMeetingNotTranscribed(0)
	case stdErrors.Is(err, usecaseErrors.ErrUploadInProgress):
		appErr = errors.ErrConflict("Upload with this idempotency key is still in progress")
		appErr.Raw = err
		return appErr
	case stdErrors.Is(err, usecaseErrors.ErrLLMUnavailable):
		return errors.ErrAIServiceUnavailable("groq")
	case stdErrors.Is(err, ingest.ErrPipelineClosed):
		return errors.ErrAIServiceUnavailable("ingestion")
	case stdErrors.As(err, &extractionErr):
		return errors.ErrAISummaryFailed(err)
	}

	return errors.ErrInternal(err)
}

// HTTPErrorHandler renders errors raised outside handlers (routing, body
// limits, binding) with the same envelope as HandleError
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			err = fromHTTPError(he)
		}
		if writeErr := HandleError(logger, c, err); writeErr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	switch he.Code {
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case http.StatusRequestEntityTooLarge:
		return errors.ErrPayloadTooLarge(0)
	case http.StatusMethodNotAllowed:
		return errors.AppError{
			HTTPCode: he.Code,
			Code:     errors.ErrorCode_INVALID_ARGUMENT,
			Message:  "Method not allowed",
		}
	}
	if he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError {
		return errors.AppError{
			Raw:      he,
			HTTPCode: he.Code,
			Code:     errors.ErrorCode_INVALID_PAYLOAD,
			Message:  http.StatusText(he.Code),
		}
	}
	return errors.ErrInternal(he)
}
