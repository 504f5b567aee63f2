package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/usecase/actionitem"
	"github.com/johnquangdev/meeting-insights/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-insights/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

type stubIngester struct {
	store    *repository.MemoryStore
	requests []ingest.IngestRequest
}

func (s *stubIngester) Ingest(ctx context.Context, req ingest.IngestRequest) (entities.Meeting, *ingest.Task, error) {
	s.requests = append(s.requests, req)
	ref := req.AudioReference
	m, err := s.store.CreateMeeting(ctx, entities.NewMeeting{
		Title:          req.Title,
		Date:           req.Date,
		AudioReference: &ref,
		MeetingType:    req.MeetingType,
		Participants:   req.Participants,
	})
	return m, nil, err
}

type stubAudio struct{}

func (stubAudio) Save(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "ref-" + filename, nil
}

func (stubAudio) Remove(ctx context.Context, ref string) error { return nil }

type stubAnalyzer struct{ available bool }

func (s stubAnalyzer) Available() bool { return s.available }

func (stubAnalyzer) Summarize(ctx context.Context, transcript string) (string, error) {
	return "Short summary", nil
}

func (stubAnalyzer) ExtractKeyTopics(ctx context.Context, transcript string) ([]string, error) {
	return []string{"roadmap", "hiring"}, nil
}

type configured bool

func (c configured) Configured() bool { return bool(c) }

type testServer struct {
	e        *echo.Echo
	store    *repository.MemoryStore
	ingester *stubIngester
}

func newTestServer(t *testing.T, maxUploadBytes int64, analyzer meeting.Analyzer) *testServer {
	t.Helper()

	store := repository.NewMemoryStore()
	ingester := &stubIngester{store: store}
	idempotency := cache.NewMemoryStore()
	t.Cleanup(func() { _ = idempotency.Close() })

	meetingService := meeting.NewMeetingService(store, ingester, stubAudio{}, analyzer, idempotency, meeting.Config{
		MaxUploadBytes: maxUploadBytes,
		IdempotencyTTL: time.Hour,
	}, nil)
	actionItemService := actionitem.NewActionItemService(store, nil)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = HTTPErrorHandler(nil)

	cfg := &config.Config{Server: config.ServerConfig{Environment: "test"}}
	NewRouter(cfg,
		NewMeetingHandler(meetingService, maxUploadBytes, nil),
		NewActionItemHandler(actionItemService, nil),
		NewReportHandler(meetingService, actionItemService, nil),
		WithService("assemblyai", configured(true)),
		WithService("groq", configured(false)),
	).Setup(e)

	return &testServer{e: e, store: store, ingester: ingester}
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

type uploadForm struct {
	fields      map[string][]string
	filename    string
	contentType string
	audio       []byte
}

func newUploadRequest(t *testing.T, form uploadForm) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, values := range form.fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(name, v))
		}
	}
	if form.filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="audio"; filename="`+form.filename+`"`)
		h.Set("Content-Type", form.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(form.audio)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Info    string          `json:"info"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func validUpload() uploadForm {
	return uploadForm{
		fields: map[string][]string{
			"title":        {"Sprint planning"},
			"date":         {"2025-03-10T09:30:00Z"},
			"meetingType":  {"planning"},
			"participants": {`["Ana", " Ben ", ""]`},
		},
		filename:    "standup.mp3",
		contentType: "audio/mpeg",
		audio:       []byte("ID3 fake audio"),
	}
}

func TestUploadMeeting(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	rec := ts.do(newUploadRequest(t, validUpload()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decode(t, rec)
	var resp struct {
		Meeting struct {
			ID           int64    `json:"id"`
			Title        string   `json:"title"`
			Status       string   `json:"status"`
			Participants []string `json:"participants"`
			MeetingType  *string  `json:"meetingType"`
		} `json:"meeting"`
		Replayed bool `json:"replayed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(1), resp.Meeting.ID)
	assert.Equal(t, "Sprint planning", resp.Meeting.Title)
	assert.Equal(t, "uploaded", resp.Meeting.Status)
	assert.Equal(t, []string{"Ana", "Ben"}, resp.Meeting.Participants)
	require.NotNil(t, resp.Meeting.MeetingType)
	assert.Equal(t, "planning", *resp.Meeting.MeetingType)
	assert.False(t, resp.Replayed)

	require.Len(t, ts.ingester.requests, 1)
	assert.True(t, ts.ingester.requests[0].AutoAnalysis)
	assert.Equal(t, "ref-standup.mp3", ts.ingester.requests[0].AudioReference)
}

func TestUploadMeeting_RepeatedParticipantsAndAutoAnalysis(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	form := validUpload()
	form.fields["participants"] = []string{"Ana", "Ben"}
	form.fields["autoAnalysis"] = []string{"false"}

	rec := ts.do(newUploadRequest(t, form))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, ts.ingester.requests, 1)
	assert.Equal(t, []string{"Ana", "Ben"}, ts.ingester.requests[0].Participants)
	assert.False(t, ts.ingester.requests[0].AutoAnalysis)
}

func TestUploadMeeting_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*uploadForm)
		status int
	}{
		{
			name:   "missing title",
			mutate: func(f *uploadForm) { delete(f.fields, "title") },
			status: http.StatusBadRequest,
		},
		{
			name:   "blank title",
			mutate: func(f *uploadForm) { f.fields["title"] = []string{"   "} },
			status: http.StatusBadRequest,
		},
		{
			name:   "bad date",
			mutate: func(f *uploadForm) { f.fields["date"] = []string{"next tuesday"} },
			status: http.StatusBadRequest,
		},
		{
			name:   "missing audio",
			mutate: func(f *uploadForm) { f.filename = "" },
			status: http.StatusBadRequest,
		},
		{
			name: "unsupported audio",
			mutate: func(f *uploadForm) {
				f.filename = "notes.txt"
				f.contentType = "text/plain"
			},
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed participants",
			mutate: func(f *uploadForm) { f.fields["participants"] = []string{"[Ana"} },
			status: http.StatusBadRequest,
		},
		{
			name:   "too large",
			mutate: func(f *uploadForm) { f.audio = bytes.Repeat([]byte("a"), 2048) },
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, 1024, nil)
			form := validUpload()
			tt.mutate(&form)

			rec := ts.do(newUploadRequest(t, form))
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Empty(t, ts.ingester.requests)

			list, err := ts.store.ListMeetings(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestUploadMeeting_IdempotencyKey(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	first := newUploadRequest(t, validUpload())
	first.Header.Set("Idempotency-Key", "abc-123")
	rec := ts.do(first)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	second := newUploadRequest(t, validUpload())
	second.Header.Set("Idempotency-Key", "abc-123")
	rec = ts.do(second)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Meeting struct {
			ID int64 `json:"id"`
		} `json:"meeting"`
		Replayed bool `json:"replayed"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
	assert.Equal(t, int64(1), resp.Meeting.ID)
	assert.True(t, resp.Replayed)
	assert.Len(t, ts.ingester.requests, 1)
}

func TestGetMeeting_NotFound(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/42", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, float64(2000), env.Code)
	assert.Equal(t, "Meeting not found", env.Message)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/nothing-here", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1002), decode(t, rec).Code)
}

func TestSearchMeetings(t *testing.T) {
	ts := newTestServer(t, 1024, nil)
	ctx := context.Background()

	transcript := "We agreed to migrate the Billing service"
	_, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Weekly sync", Date: time.Now(), Transcription: &transcript})
	require.NoError(t, err)
	_, err = ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Retro", Date: time.Now()})
	require.NoError(t, err)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/search/billing", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Weekly sync", items[0].Title)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/search/ab", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decode(t, rec).Info)
}

func TestUpdateAndDeleteMeeting(t *testing.T) {
	ts := newTestServer(t, 1024, nil)
	ctx := context.Background()

	m, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Old", Date: time.Now()})
	require.NoError(t, err)
	_, err = ts.store.CreateActionItem(ctx, entities.NewActionItem{MeetingID: m.ID, Title: "Follow up", Status: entities.ActionItemStatusPending})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/v1/meetings/1", strings.NewReader(`{"title":"New","participants":["Kim"]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := ts.store.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, []string{"Kim"}, got.Participants)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/1/action-items", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/v1/meetings/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := ts.store.ListAllActionItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/v1/meetings/1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMeetingSummaryAndTopics(t *testing.T) {
	ctx := context.Background()
	transcript := "Discussed the roadmap and hiring plan"

	t.Run("not transcribed", func(t *testing.T) {
		ts := newTestServer(t, 1024, stubAnalyzer{available: true})
		_, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Kickoff", Date: time.Now()})
		require.NoError(t, err)

		rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/1/summary", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("model unavailable", func(t *testing.T) {
		ts := newTestServer(t, 1024, stubAnalyzer{available: false})
		_, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Kickoff", Date: time.Now(), Transcription: &transcript})
		require.NoError(t, err)

		rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/1/topics", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		ts := newTestServer(t, 1024, stubAnalyzer{available: true})
		_, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Kickoff", Date: time.Now(), Transcription: &transcript})
		require.NoError(t, err)

		rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/1/summary", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Short summary")

		rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/meetings/1/topics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "hiring")
	})
}

func TestActionItemEndpoints(t *testing.T) {
	ts := newTestServer(t, 1024, nil)
	ctx := context.Background()

	_, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Planning", Date: time.Now()})
	require.NoError(t, err)

	create := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/action-items", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return ts.do(req)
	}

	rec := create(`{"meetingId":1,"title":"Draft budget","dueDate":"2025-05-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = create(`{"meetingId":1,"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = create(`{"meetingId":7,"title":"Orphan"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPatch, "/v1/action-items/1", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/action-items/pending", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/action-items/9", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/v1/action-items/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportActionItemsCSV(t *testing.T) {
	ts := newTestServer(t, 1024, nil)
	ctx := context.Background()

	m, err := ts.store.CreateMeeting(ctx, entities.NewMeeting{Title: "Planning", Date: time.Now()})
	require.NoError(t, err)
	desc := "Needs \"quotes\", commas\nand newlines"
	_, err = ts.store.CreateActionItem(ctx, entities.NewActionItem{
		MeetingID:   m.ID,
		Title:       "Write, then review",
		Description: &desc,
		Status:      entities.ActionItemStatusPending,
	})
	require.NoError(t, err)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/export/action-items", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="action-items.csv"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"ID", "Meeting ID", "Title", "Description", "Assignee", "Status", "Due Date", "Created At"}, records[0])
	assert.Equal(t, "Write, then review", records[1][2])
	assert.Equal(t, desc, records[1][3])
	assert.Equal(t, "", records[1][6])
}

func TestExportMeetingsJSON(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	_, err := ts.store.CreateMeeting(context.Background(), entities.NewMeeting{Title: "Planning", Date: time.Now()})
	require.NoError(t, err)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/export/meetings", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="meetings.json"`, rec.Header().Get(echo.HeaderContentDisposition))

	var meetings []struct {
		Title            string `json:"title"`
		ActionItemsCount int    `json:"actionItemsCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meetings))
	require.Len(t, meetings, 1)
	assert.Equal(t, "Planning", meetings[0].Title)
}

func TestAnalyticsEmpty(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/analytics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var analytics struct {
		TotalMeetings     int `json:"totalMeetings"`
		ProductivityScore int `json:"productivityScore"`
		MeetingFrequency  []struct {
			Date string `json:"date"`
		} `json:"meetingFrequency"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &analytics))
	assert.Equal(t, 0, analytics.TotalMeetings)
	assert.Equal(t, 0, analytics.ProductivityScore)
	assert.Len(t, analytics.MeetingFrequency, 30)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, 1024, nil)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","environment":"test","services":{"assemblyai":"configured","groq":"unconfigured"}}`, rec.Body.String())
}
