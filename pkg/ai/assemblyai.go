package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

var errTranscriptPending = errors.New("transcript not ready")

// TranscriptResult is the finished output of a transcription job
type TranscriptResult struct {
	ID              string
	Text            string
	DurationSeconds float64
}

// AssemblyAIClient uploads audio to AssemblyAI and waits for the transcript
type AssemblyAIClient struct {
	client       *aai.Client
	apiKey       string
	languageCode string
	pollInterval time.Duration
	pollTimeout  time.Duration
	logger       *zap.Logger
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	var c config.AssemblyAIConfig
	if cfg != nil {
		c = *cfg
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	if c.LanguageCode == "" {
		c.LanguageCode = "en"
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = 30 * time.Minute
	}

	opts := []aai.ClientOption{aai.WithAPIKey(c.APIKey)}
	if c.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(c.BaseURL))
	}

	return &AssemblyAIClient{
		client:       aai.NewClientWithOptions(opts...),
		apiKey:       c.APIKey,
		languageCode: c.LanguageCode,
		pollInterval: c.PollInterval,
		pollTimeout:  c.PollTimeout,
		logger:       logger,
	}
}

// Configured reports whether an API key is available
func (c *AssemblyAIClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Transcribe uploads the audio, submits a transcript job and polls until
// AssemblyAI reports completed or error.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) (TranscriptResult, error) {
	if !c.Configured() {
		return TranscriptResult{}, fmt.Errorf("assemblyai client not configured")
	}

	uploadURL, err := c.client.Upload(ctx, audio)
	if err != nil {
		return TranscriptResult{}, fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}
	if uploadURL == "" {
		return TranscriptResult{}, fmt.Errorf("assemblyai returned an empty upload url")
	}

	params := &aai.TranscriptOptionalParams{
		LanguageCode:  aai.TranscriptLanguageCode(c.languageCode),
		SpeakerLabels: aai.Bool(true),
	}
	submitted, err := c.client.Transcripts.SubmitFromURL(ctx, uploadURL, params)
	if err != nil {
		return TranscriptResult{}, fmt.Errorf("failed to submit transcript: %w", err)
	}
	if submitted.ID == nil || *submitted.ID == "" {
		return TranscriptResult{}, fmt.Errorf("assemblyai returned a transcript without id")
	}
	transcriptID := *submitted.ID

	c.logger.Info("🎙️ Transcript submitted",
		zap.String("transcript_id", transcriptID),
		zap.String("language", c.languageCode),
	)

	var result TranscriptResult
	poll := func() error {
		transcript, err := c.client.Transcripts.Get(ctx, transcriptID)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to fetch transcript: %w", err))
		}

		switch transcript.Status {
		case aai.TranscriptStatusCompleted:
			result.ID = transcriptID
			if transcript.Text != nil {
				result.Text = *transcript.Text
			}
			if transcript.AudioDuration != nil {
				result.DurationSeconds = float64(*transcript.AudioDuration)
			}
			return nil
		case aai.TranscriptStatusError:
			msg := "unknown error"
			if transcript.Error != nil {
				msg = *transcript.Error
			}
			return backoff.Permanent(fmt.Errorf("AssemblyAI error: %s", msg))
		default:
			return errTranscriptPending
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.pollInterval
	bo.MaxInterval = 4 * c.pollInterval
	bo.MaxElapsedTime = c.pollTimeout

	if err := backoff.Retry(poll, backoff.WithContext(bo, ctx)); err != nil {
		if errors.Is(err, errTranscriptPending) {
			return TranscriptResult{}, fmt.Errorf("transcript %s not ready after %s", transcriptID, c.pollTimeout)
		}
		return TranscriptResult{}, err
	}

	c.logger.Info("✅ Transcript completed",
		zap.String("transcript_id", transcriptID),
		zap.Float64("duration_seconds", result.DurationSeconds),
	)
	return result, nil
}
