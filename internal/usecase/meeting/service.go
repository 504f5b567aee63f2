package meeting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-insights/pkg/dateparse"
)

const (
	minSearchLength   = 3
	idempotencyPrefix = "idempotency:upload:"
	pendingMarker     = "pending"
)

var allowedAudioTypes = map[string]bool{
	"audio/mpeg":   true,
	"audio/mp3":    true,
	"audio/wav":    true,
	"audio/wave":   true,
	"audio/x-wav":  true,
	"audio/mp4":    true,
	"audio/m4a":    true,
	"audio/x-m4a":  true,
	"audio/x-mpeg": true,
}

var allowedAudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
}

// Ingester schedules uploaded audio for processing
type Ingester interface {
	Ingest(ctx context.Context, req ingest.IngestRequest) (entities.Meeting, *ingest.Task, error)
}

// AudioSaver persists uploaded audio and can release it again
type AudioSaver interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, ref string) error
}

// Analyzer produces summaries and topics from a transcript
type Analyzer interface {
	Available() bool
	Summarize(ctx context.Context, transcript string) (string, error)
	ExtractKeyTopics(ctx context.Context, transcript string) ([]string, error)
}

// Service defines the interface for the meeting use case
type Service interface {
	// Upload validates and stores the audio, then hands it to the pipeline
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)

	GetMeeting(ctx context.Context, id int64) (entities.Meeting, error)
	ListMeetings(ctx context.Context) ([]entities.MeetingWithStats, error)

	// SearchMeetings requires a query of at least three characters
	SearchMeetings(ctx context.Context, query string) ([]entities.MeetingWithStats, error)

	UpdateMeeting(ctx context.Context, id int64, input UpdateMeetingInput) (entities.Meeting, error)
	DeleteMeeting(ctx context.Context, id int64) error

	ListActionItems(ctx context.Context, meetingID int64) ([]entities.ActionItem, error)
	Summarize(ctx context.Context, id int64) (string, error)
	KeyTopics(ctx context.Context, id int64) ([]string, error)
	Analytics(ctx context.Context) (entities.Analytics, error)
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)

// AudioFile is the uploaded file as received by the handler
type AudioFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadInput represents input for uploading a meeting recording
type UploadInput struct {
	Title          string
	Date           string
	MeetingType    *string
	Participants   []string
	AutoAnalysis   bool
	Audio          *AudioFile
	IdempotencyKey string
}

// UploadOutput is the accepted meeting. Replayed is set when an earlier
// upload with the same idempotency key is returned instead.
type UploadOutput struct {
	Meeting  entities.Meeting
	Task     *ingest.Task
	Replayed bool
}

// UpdateMeetingInput lists the user editable fields. Nil leaves a field unchanged.
type UpdateMeetingInput struct {
	Title        *string
	Date         *string
	MeetingType  *string
	Participants *[]string
}

// MeetingService handles meeting business logic
type MeetingService struct {
	store          repositories.Store
	ingester       Ingester
	audio          AudioSaver
	analyzer       Analyzer
	idempotency    cache.Store
	idempotencyTTL time.Duration
	maxUploadBytes int64
	logger         *zap.Logger
}

// Config holds the limits applied by MeetingService
type Config struct {
	MaxUploadBytes int64
	IdempotencyTTL time.Duration
}

// NewMeetingService creates a new meeting service. idempotency may be nil,
// in which case Idempotency-Key headers are ignored.
func NewMeetingService(
	store repositories.Store,
	ingester Ingester,
	audio AudioSaver,
	analyzer Analyzer,
	idempotency cache.Store,
	cfg Config,
	logger *zap.Logger,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		store:          store,
		ingester:       ingester,
		audio:          audio,
		analyzer:       analyzer,
		idempotency:    idempotency,
		idempotencyTTL: cfg.IdempotencyTTL,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         logger,
	}
}

// Upload validates the request, stores the audio and starts ingestion.
// Validation happens before any state is created.
func (s *MeetingService) Upload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, usecaseErrors.Invalid("title", entities.ErrEmptyMeetingTitle)
	}

	date, err := dateparse.Parse(input.Date)
	if err != nil {
		return nil, usecaseErrors.Invalid("date", fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidDate, err))
	}

	if err := s.validateAudio(input.Audio); err != nil {
		return nil, err
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	if key != "" && s.idempotency != nil {
		existing, err := s.claimKey(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			s.logger.Info("🔁 Upload replayed from idempotency key",
				zap.Int64("meeting_id", existing.ID),
			)
			return &UploadOutput{Meeting: *existing, Replayed: true}, nil
		}
	} else {
		key = ""
	}

	meeting, task, err := s.startIngestion(ctx, title, date, input)
	if err != nil {
		s.releaseKey(ctx, key)
		return nil, err
	}

	if key != "" {
		if err := s.idempotency.Set(ctx, idempotencyPrefix+key, strconv.FormatInt(meeting.ID, 10), s.idempotencyTTL); err != nil {
			s.logger.Warn("⚠️ Failed to record idempotency key",
				zap.Int64("meeting_id", meeting.ID),
				zap.Error(err),
			)
		}
	}

	return &UploadOutput{Meeting: meeting, Task: task}, nil
}

func (s *MeetingService) startIngestion(ctx context.Context, title string, date time.Time, input UploadInput) (entities.Meeting, *ingest.Task, error) {
	audio := input.Audio
	ref, err := s.audio.Save(ctx, audio.Filename, audio.Reader, audio.Size, audio.ContentType)
	if err != nil {
		return entities.Meeting{}, nil, fmt.Errorf("failed to store audio: %w", err)
	}

	meeting, task, err := s.ingester.Ingest(ctx, ingest.IngestRequest{
		Title:          title,
		Date:           date,
		MeetingType:    normalizeOptional(input.MeetingType),
		Participants:   normalizeParticipants(input.Participants),
		AudioReference: ref,
		AutoAnalysis:   input.AutoAnalysis,
	})
	if err != nil {
		if rmErr := s.audio.Remove(ctx, ref); rmErr != nil {
			s.logger.Warn("⚠️ Failed to remove audio of rejected upload",
				zap.String("audio_ref", ref),
				zap.Error(rmErr),
			)
		}
		return entities.Meeting{}, nil, err
	}
	return meeting, task, nil
}

func (s *MeetingService) validateAudio(audio *AudioFile) error {
	if audio == nil || audio.Reader == nil {
		return usecaseErrors.Invalid("audio", usecaseErrors.ErrMissingAudio)
	}

	contentType := strings.ToLower(strings.TrimSpace(audio.ContentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext := strings.ToLower(filepath.Ext(audio.Filename))
	if !allowedAudioTypes[contentType] && !allowedAudioExtensions[ext] {
		return usecaseErrors.Invalid("audio", fmt.Errorf("%w: %s", usecaseErrors.ErrUnsupportedAudio, audio.ContentType))
	}

	if s.maxUploadBytes > 0 && audio.Size > s.maxUploadBytes {
		return usecaseErrors.Invalid("audio", usecaseErrors.ErrAudioTooLarge)
	}
	return nil
}

// claimKey reserves an idempotency key. It returns the meeting created by an
// earlier upload with the same key, or nil when this upload now owns the key.
func (s *MeetingService) claimKey(ctx context.Context, key string) (*entities.Meeting, error) {
	cacheKey := idempotencyPrefix + key

	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.idempotency.SetNX(ctx, cacheKey, pendingMarker, s.idempotencyTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to claim idempotency key: %w", err)
		}
		if ok {
			return nil, nil
		}

		value, found, err := s.idempotency.Get(ctx, cacheKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read idempotency key: %w", err)
		}
		if !found {
			continue
		}
		if value == pendingMarker {
			return nil, usecaseErrors.ErrUploadInProgress
		}

		id, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			m, err := s.store.GetMeeting(ctx, id)
			if err == nil {
				return &m, nil
			}
			if !errors.Is(err, entities.ErrMeetingNotFound) {
				return nil, err
			}
		}

		// The earlier meeting is gone; let this upload take the key over
		if err := s.idempotency.Delete(ctx, cacheKey); err != nil {
			return nil, fmt.Errorf("failed to reset idempotency key: %w", err)
		}
	}
	return nil, usecaseErrors.ErrUploadInProgress
}

func (s *MeetingService) releaseKey(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.idempotency.Delete(ctx, idempotencyPrefix+key); err != nil {
		s.logger.Warn("⚠️ Failed to release idempotency key", zap.Error(err))
	}
}

// GetMeeting retrieves a meeting by ID
func (s *MeetingService) GetMeeting(ctx context.Context, id int64) (entities.Meeting, error) {
	return s.store.GetMeeting(ctx, id)
}

// ListMeetings retrieves every meeting with its action item counts
func (s *MeetingService) ListMeetings(ctx context.Context) ([]entities.MeetingWithStats, error) {
	return s.store.ListMeetings(ctx)
}

func (s *MeetingService) SearchMeetings(ctx context.Context, query string) ([]entities.MeetingWithStats, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchLength {
		return nil, usecaseErrors.Invalid("query", usecaseErrors.ErrQueryTooShort)
	}
	return s.store.SearchMeetings(ctx, query)
}

// UpdateMeeting applies user edits. Status, transcription and audio are
// owned by the pipeline and cannot be changed here.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id int64, input UpdateMeetingInput) (entities.Meeting, error) {
	var patch entities.MeetingPatch

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return entities.Meeting{}, usecaseErrors.Invalid("title", entities.ErrEmptyMeetingTitle)
		}
		patch.Title = &title
	}
	if input.Date != nil {
		date, err := dateparse.Parse(*input.Date)
		if err != nil {
			return entities.Meeting{}, usecaseErrors.Invalid("date", fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidDate, err))
		}
		patch.Date = &date
	}
	if input.MeetingType != nil {
		mt := strings.TrimSpace(*input.MeetingType)
		patch.MeetingType = &mt
	}
	if input.Participants != nil {
		participants := normalizeParticipants(*input.Participants)
		patch.Participants = &participants
	}

	return s.store.UpdateMeeting(ctx, id, patch)
}

// DeleteMeeting removes the meeting and its action items
func (s *MeetingService) DeleteMeeting(ctx context.Context, id int64) error {
	deleted, err := s.store.DeleteMeeting(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return entities.ErrMeetingNotFound
	}

	s.logger.Info("🗑️ Meeting deleted", zap.Int64("meeting_id", id))
	return nil
}

func (s *MeetingService) ListActionItems(ctx context.Context, meetingID int64) ([]entities.ActionItem, error) {
	if _, err := s.store.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.store.ListActionItemsForMeeting(ctx, meetingID)
}

// Summarize asks the language model for a summary of the meeting transcript
func (s *MeetingService) Summarize(ctx context.Context, id int64) (string, error) {
	transcript, err := s.transcriptFor(ctx, id)
	if err != nil {
		return "", err
	}
	return s.analyzer.Summarize(ctx, transcript)
}

// KeyTopics asks the language model for the main topics of the meeting
func (s *MeetingService) KeyTopics(ctx context.Context, id int64) ([]string, error) {
	transcript, err := s.transcriptFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.analyzer.ExtractKeyTopics(ctx, transcript)
}

func (s *MeetingService) transcriptFor(ctx context.Context, id int64) (string, error) {
	m, err := s.store.GetMeeting(ctx, id)
	if err != nil {
		return "", err
	}
	if !m.HasTranscription() {
		return "", usecaseErrors.ErrMeetingNotTranscribed
	}
	if s.analyzer == nil || !s.analyzer.Available() {
		return "", usecaseErrors.ErrLLMUnavailable
	}
	return *m.Transcription, nil
}

// Analytics computes dashboard statistics at call time
func (s *MeetingService) Analytics(ctx context.Context) (entities.Analytics, error) {
	return s.store.ComputeAnalytics(ctx)
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// normalizeParticipants trims names and drops blanks, keeping order
func normalizeParticipants(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
