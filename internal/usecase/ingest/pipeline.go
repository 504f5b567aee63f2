package ingest

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ai"
	"github.com/johnquangdev/meeting-insights/pkg/dateparse"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

const jobType = "meeting_ingestion"

// ErrPipelineClosed is returned by Ingest after Shutdown has been called
var ErrPipelineClosed = errors.New("ingestion pipeline is shut down")

// Transcriber turns stored audio into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioRef string) (ai.TranscriptionResult, error)
}

// ActionItemExtractor proposes action items for a transcript
type ActionItemExtractor interface {
	ExtractActionItems(ctx context.Context, transcript string) ([]ai.Candidate, error)
}

// AudioRemover releases uploaded audio once it is no longer needed
type AudioRemover interface {
	Remove(ctx context.Context, ref string) error
}

// IngestRequest is an accepted upload waiting to be processed
type IngestRequest struct {
	Title          string
	Date           time.Time
	MeetingType    *string
	Participants   []string
	AudioReference string
	AutoAnalysis   bool
}

// Task tracks one background ingestion
type Task struct {
	id        uuid.UUID
	meetingID int64
	done      chan struct{}
	outcome   string
	err       error
}

func (t *Task) ID() uuid.UUID { return t.id }

func (t *Task) MeetingID() int64 { return t.meetingID }

// Done is closed once the task has finished, cleanup included
func (t *Task) Done() <-chan struct{} { return t.done }

// Err returns the failure that ended the task. Only valid after Done.
func (t *Task) Err() error { return t.err }

// Outcome returns the metrics outcome label. Only valid after Done.
func (t *Task) Outcome() string { return t.outcome }

// Pipeline runs uploads through transcription and action item extraction
type Pipeline struct {
	store       repositories.Store
	transcriber Transcriber
	extractor   ActionItemExtractor
	audio       AudioRemover
	metrics     *metrics.PipelineMetrics
	logger      *zap.Logger

	sem    chan struct{}
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

type Option func(*Pipeline)

// WithMetrics records pipeline metrics
func WithMetrics(m *metrics.PipelineMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithMaxConcurrency bounds how many ingestions run at once
func WithMaxConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.sem = make(chan struct{}, n)
		}
	}
}

func NewPipeline(
	store repositories.Store,
	transcriber Transcriber,
	extractor ActionItemExtractor,
	audio AudioRemover,
	logger *zap.Logger,
	opts ...Option,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		store:       store,
		transcriber: transcriber,
		extractor:   extractor,
		audio:       audio,
		logger:      logger,
		sem:         make(chan struct{}, 4),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ingest creates the meeting in uploaded state and schedules its processing.
// It returns as soon as the meeting is stored.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (entities.Meeting, *Task, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return entities.Meeting{}, nil, ErrPipelineClosed
	}

	ref := req.AudioReference
	meeting, err := p.store.CreateMeeting(ctx, entities.NewMeeting{
		Title:          req.Title,
		Date:           req.Date,
		Status:         entities.MeetingStatusUploaded,
		AudioReference: &ref,
		MeetingType:    req.MeetingType,
		Participants:   req.Participants,
	})
	if err != nil {
		return entities.Meeting{}, nil, err
	}

	task := &Task{
		id:        uuid.New(),
		meetingID: meeting.ID,
		done:      make(chan struct{}),
	}

	p.logger.Info("📥 Meeting accepted for ingestion",
		zap.Int64("meeting_id", meeting.ID),
		zap.String("job_id", task.id.String()),
		zap.Bool("auto_analysis", req.AutoAnalysis),
	)

	// The task outlives the request that scheduled it
	p.wg.Add(1)
	go p.run(context.WithoutCancel(ctx), task, req)

	return meeting, task, nil
}

// Shutdown stops accepting uploads and waits for running ingestions
func (p *Pipeline) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.logger.Info("🛑 Stopping ingestion pipeline...")

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("✅ Ingestion pipeline stopped")
		return nil
	case <-ctx.Done():
		p.logger.Warn("⚠️ Ingestion pipeline shutdown timed out", zap.Error(ctx.Err()))
		return ctx.Err()
	}
}

func (p *Pipeline) run(parent context.Context, task *Task, req IngestRequest) {
	defer p.wg.Done()
	defer close(task.done)

	p.sem <- struct{}{}
	defer func() { <-p.sem }()

	defer p.metrics.TrackInFlight()()

	ctx, cancel := jobcontext.JobBegin(parent, task.id, jobType, task.meetingID, 0)
	defer cancel()

	var (
		outcome   string
		completed bool
	)
	err := jobcontext.Run(ctx, func(ctx context.Context) error {
		var err error
		outcome, err = p.process(ctx, task.meetingID, req)
		completed = true
		return err
	})

	var panicErr *jobcontext.PanicError
	switch {
	case errors.As(err, &panicErr):
		outcome = metrics.OutcomePanicked
		p.logger.Error("💥 Ingestion panicked",
			append(jobcontext.Fields(ctx),
				zap.Error(err),
				zap.ByteString("stack", stackOf(panicErr)),
			)...,
		)
		p.markFailed(ctx, task.meetingID)
	case !completed:
		outcome = metrics.OutcomeAbandoned
	}

	p.cleanup(ctx, task.meetingID, req.AudioReference)

	task.outcome = outcome
	task.err = err
	p.metrics.RecordOutcome(outcome)

	fields := append(jobcontext.Fields(ctx), zap.String("outcome", outcome))
	if err != nil {
		p.logger.Warn("⚠️ Ingestion finished with error", append(fields, zap.Error(err))...)
		return
	}
	p.logger.Info("✅ Ingestion finished", fields...)
}

// process drives the meeting through its status transitions and returns the
// outcome label together with the error that ended it, if any
func (p *Pipeline) process(ctx context.Context, meetingID int64, req IngestRequest) (string, error) {
	if ok, err := p.transition(ctx, meetingID, entities.MeetingPatch{
		Status: statusPtr(entities.MeetingStatusProcessing),
	}); !ok {
		return metrics.OutcomeAbandoned, err
	}

	started := time.Now()
	result, err := p.transcriber.Transcribe(ctx, req.AudioReference)
	p.metrics.ObserveStage("transcription", started)
	if err != nil {
		p.logger.Error("❌ Transcription failed",
			append(jobcontext.Fields(ctx), zap.Error(err))...,
		)
		if ok, uerr := p.transition(ctx, meetingID, entities.MeetingPatch{
			Status: statusPtr(entities.MeetingStatusError),
		}); !ok && uerr == nil {
			return metrics.OutcomeAbandoned, err
		}
		return metrics.OutcomeTranscribeFailed, err
	}

	duration := int(math.Round(result.DurationSeconds / 60))
	text := result.Text
	if ok, err := p.transition(ctx, meetingID, entities.MeetingPatch{
		Transcription: &text,
		Duration:      &duration,
		Status:        statusPtr(entities.MeetingStatusTranscribed),
	}); !ok {
		return metrics.OutcomeAbandoned, err
	}

	p.logger.Info("🎙️ Meeting transcribed",
		append(jobcontext.Fields(ctx),
			zap.Int("duration_minutes", duration),
			zap.Int("transcript_length", len(text)),
		)...,
	)

	if !req.AutoAnalysis || strings.TrimSpace(text) == "" {
		return metrics.OutcomeTranscribed, nil
	}

	started = time.Now()
	created, err := p.extract(ctx, meetingID, text)
	p.metrics.ObserveStage("extraction", started)
	p.metrics.AddActionItems(created)
	if errors.Is(err, entities.ErrMeetingNotFound) {
		return metrics.OutcomeAbandoned, nil
	}
	if err != nil {
		p.logger.Error("❌ Action item extraction failed",
			append(jobcontext.Fields(ctx),
				zap.Int("created", created),
				zap.Error(err),
			)...,
		)
		return metrics.OutcomeExtractFailed, err
	}
	return metrics.OutcomeAnalyzed, nil
}

// extract stores one pending action item per candidate. Items created before
// a failure are kept.
func (p *Pipeline) extract(ctx context.Context, meetingID int64, transcript string) (int, error) {
	candidates, err := p.extractor.ExtractActionItems(ctx, transcript)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, c := range candidates {
		_, err := p.store.CreateActionItem(ctx, entities.NewActionItem{
			MeetingID:   meetingID,
			Title:       c.Title,
			Description: c.Description,
			Assignee:    c.Assignee,
			Status:      entities.ActionItemStatusPending,
			DueDate:     dateparse.ParseOptional(c.DueDate),
		})
		if err != nil {
			return created, err
		}
		created++
	}

	p.logger.Info("📝 Action items stored",
		append(jobcontext.Fields(ctx), zap.Int("count", created))...,
	)
	return created, nil
}

// transition re-fetches the meeting and applies patch. It reports false when
// the meeting is gone or the update failed, in which case the task stops.
func (p *Pipeline) transition(ctx context.Context, meetingID int64, patch entities.MeetingPatch) (bool, error) {
	if _, err := p.store.GetMeeting(ctx, meetingID); err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			p.logger.Info("⏭️ Meeting deleted during ingestion", jobcontext.Fields(ctx)...)
			return false, nil
		}
		return false, err
	}

	if _, err := p.store.UpdateMeeting(ctx, meetingID, patch); err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			p.logger.Info("⏭️ Meeting deleted during ingestion", jobcontext.Fields(ctx)...)
			return false, nil
		}
		p.logger.Error("❌ Failed to update meeting",
			append(jobcontext.Fields(ctx), zap.Error(err))...,
		)
		return false, err
	}
	return true, nil
}

// markFailed moves a meeting stuck mid-run to error, when that is still allowed
func (p *Pipeline) markFailed(ctx context.Context, meetingID int64) {
	m, err := p.store.GetMeeting(ctx, meetingID)
	if err != nil || !m.Status.CanTransitionTo(entities.MeetingStatusError) {
		return
	}
	if _, err := p.store.UpdateMeeting(ctx, meetingID, entities.MeetingPatch{
		Status: statusPtr(entities.MeetingStatusError),
	}); err != nil {
		p.logger.Warn("⚠️ Failed to mark meeting as errored",
			append(jobcontext.Fields(ctx), zap.Error(err))...,
		)
	}
}

// cleanup removes the uploaded audio. Failures are logged and counted only.
func (p *Pipeline) cleanup(ctx context.Context, meetingID int64, ref string) {
	if ref == "" || p.audio == nil {
		return
	}

	if err := p.audio.Remove(ctx, ref); err != nil {
		p.metrics.CleanupFailed()
		p.logger.Warn("⚠️ Failed to remove uploaded audio",
			append(jobcontext.Fields(ctx),
				zap.String("audio_ref", ref),
				zap.Error(err),
			)...,
		)
		return
	}

	if _, err := p.store.UpdateMeeting(ctx, meetingID, entities.MeetingPatch{
		ClearAudioReference: true,
	}); err != nil && !errors.Is(err, entities.ErrMeetingNotFound) {
		p.logger.Warn("⚠️ Failed to clear audio reference",
			append(jobcontext.Fields(ctx), zap.Error(err))...,
		)
	}
}

func statusPtr(s entities.MeetingStatus) *entities.MeetingStatus {
	return &s
}

func stackOf(err *jobcontext.PanicError) []byte {
	if err == nil {
		return nil
	}
	return err.Stack
}
