package ai

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
)

// SpeechToText is the external transcription service
type SpeechToText interface {
	Transcribe(ctx context.Context, audio io.Reader) (pkgai.TranscriptResult, error)
}

// AudioOpener gives read access to stored uploads
type AudioOpener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// TranscriptionResult is what the pipeline stores on the meeting
type TranscriptionResult struct {
	Text            string
	DurationSeconds float64
}

// Transcriber reads an uploaded audio file and sends it to the speech service
type Transcriber struct {
	stt    SpeechToText
	audio  AudioOpener
	logger *zap.Logger
}

func NewTranscriber(stt SpeechToText, audio AudioOpener, logger *zap.Logger) *Transcriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{stt: stt, audio: audio, logger: logger}
}

// Transcribe returns the transcript for the audio at ref. Every failure is
// reported as *TranscriptionError. Nothing is retried.
func (t *Transcriber) Transcribe(ctx context.Context, ref string) (TranscriptionResult, error) {
	if t.stt == nil {
		return TranscriptionResult{}, &TranscriptionError{AudioRef: ref, Err: errors.New("speech to text service not configured")}
	}

	f, err := t.audio.Open(ctx, ref)
	if err != nil {
		return TranscriptionResult{}, &TranscriptionError{AudioRef: ref, Err: err}
	}
	defer f.Close()

	t.logger.Info("📤 Sending audio for transcription", zap.String("audio_ref", ref))

	res, err := t.stt.Transcribe(ctx, f)
	if err != nil {
		return TranscriptionResult{}, &TranscriptionError{AudioRef: ref, Err: err}
	}

	return TranscriptionResult{Text: res.Text, DurationSeconds: res.DurationSeconds}, nil
}
