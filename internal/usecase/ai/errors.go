package ai

import "fmt"

// TranscriptionError means the audio could not be turned into text.
// The meeting should be marked as errored.
type TranscriptionError struct {
	AudioRef string
	Err      error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("failed to transcribe audio: %v", e.Err)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Err
}

// ExtractionError means the language model call failed or returned
// something that is not JSON. The transcript itself is still valid.
type ExtractionError struct {
	Op  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
