package errors

import "strconv"

// ErrorCode is the application level error code returned in response bodies
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1004
	ErrorCode_PAYLOAD_TOO_LARGE ErrorCode = 1005
	ErrorCode_UNSUPPORTED_MEDIA ErrorCode = 1006
	ErrorCode_CONFLICT          ErrorCode = 1007

	// Meetings
	ErrorCode_MEETING_NOT_FOUND          ErrorCode = 2000
	ErrorCode_MEETING_INVALID_TRANSITION ErrorCode = 2001
	ErrorCode_MEETING_NOT_TRANSCRIBED    ErrorCode = 2002

	// Action items
	ErrorCode_ACTION_ITEM_NOT_FOUND ErrorCode = 3000

	// AI
	ErrorCode_AI_TRANSCRIPTION_FAILED ErrorCode = 4000
	ErrorCode_AI_ANALYSIS_FAILED      ErrorCode = 4001
	ErrorCode_AI_SUMMARY_FAILED       ErrorCode = 4002
	ErrorCode_AI_SERVICE_UNAVAILABLE  ErrorCode = 4003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 5001

	// Export
	ErrorCode_REPORT_EXPORT_FAILED ErrorCode = 6000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_PAYLOAD_TOO_LARGE:          "PAYLOAD_TOO_LARGE",
	ErrorCode_UNSUPPORTED_MEDIA:          "UNSUPPORTED_MEDIA",
	ErrorCode_CONFLICT:                   "CONFLICT",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_TRANSITION: "MEETING_INVALID_TRANSITION",
	ErrorCode_MEETING_NOT_TRANSCRIBED:    "MEETING_NOT_TRANSCRIBED",
	ErrorCode_ACTION_ITEM_NOT_FOUND:      "ACTION_ITEM_NOT_FOUND",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_ANALYSIS_FAILED:         "AI_ANALYSIS_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:     "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_REPORT_EXPORT_FAILED:       "REPORT_EXPORT_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "CODE_" + strconv.Itoa(int(c))
}
