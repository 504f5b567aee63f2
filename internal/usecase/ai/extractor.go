package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
)

// ChatCompleter is the external language model
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, req pkgai.ChatRequest) (string, error)
}

const (
	actionItemsSystemPrompt = "You analyze meeting transcripts and identify action items. Always respond with valid JSON in the requested format."
	actionItemsPrompt       = `Extract every action item, task, follow-up and commitment from the meeting transcript below.

For each one provide:
- title: a short, clear statement of the action (required)
- description: extra context if the transcript gives any (optional)
- assignee: the person responsible, if named (optional)
- dueDate: the deadline as an ISO 8601 date, if one is stated (optional)

Respond with a JSON object holding an "actionItems" array. Use an empty array when there are none.

{"actionItems":[{"title":"Send Q3 campaign numbers to marketing","description":"Include the regional breakdown","assignee":"Sarah","dueDate":"2024-01-15"}]}

Meeting transcript:
%s`

	summarySystemPrompt = "You summarize meetings. Keep summaries short, factual and professional."
	summaryPrompt       = `Summarize the meeting transcript below. Cover the main topics, the decisions taken and the agreed next steps.

Meeting transcript:
%s`

	topicsSystemPrompt = "You identify the key topics of meetings. Always respond with valid JSON in the requested format."
	topicsPrompt       = `List the main topics discussed in the meeting transcript below.

Respond with a JSON object holding a "topics" array of 3 to 7 short strings.

{"topics":["Budget planning","Project timeline","Hiring"]}

Meeting transcript:
%s`
)

// Extractor derives structured information from transcripts with an LLM
type Extractor struct {
	llm    ChatCompleter
	parser *Parser
	logger *zap.Logger
}

func NewExtractor(llm ChatCompleter, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{llm: llm, parser: NewParser(), logger: logger}
}

// Available reports whether a language model is wired in
func (e *Extractor) Available() bool {
	return e != nil && e.llm != nil
}

// ExtractActionItems asks the model for action items. Blank transcripts
// return an empty list without calling the model.
func (e *Extractor) ExtractActionItems(ctx context.Context, transcript string) ([]Candidate, error) {
	if strings.TrimSpace(transcript) == "" {
		return []Candidate{}, nil
	}

	content, err := e.complete(ctx, pkgai.ChatRequest{
		Messages: []pkgai.ChatMessage{
			{Role: "system", Content: actionItemsSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(actionItemsPrompt, transcript)},
		},
		Temperature:    0.3,
		MaxTokens:      2000,
		ResponseFormat: pkgai.JSONObjectFormat,
	})
	if err != nil {
		return nil, &ExtractionError{Op: "extract action items", Err: err}
	}

	candidates, err := e.parser.ParseActionItems(content)
	if err != nil {
		return nil, &ExtractionError{Op: "extract action items", Err: err}
	}

	e.logger.Info("🧠 Action items extracted", zap.Int("count", len(candidates)))
	return candidates, nil
}

// Summarize returns a prose summary of the transcript
func (e *Extractor) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", nil
	}

	content, err := e.complete(ctx, pkgai.ChatRequest{
		Messages: []pkgai.ChatMessage{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: fmt.Sprintf(summaryPrompt, transcript)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return "", &ExtractionError{Op: "summarize meeting", Err: err}
	}
	return strings.TrimSpace(content), nil
}

// ExtractKeyTopics returns up to seven topics discussed in the transcript
func (e *Extractor) ExtractKeyTopics(ctx context.Context, transcript string) ([]string, error) {
	if strings.TrimSpace(transcript) == "" {
		return []string{}, nil
	}

	content, err := e.complete(ctx, pkgai.ChatRequest{
		Messages: []pkgai.ChatMessage{
			{Role: "system", Content: topicsSystemPrompt},
			{Role: "user", Content: fmt.Sprintf(topicsPrompt, transcript)},
		},
		Temperature:    0.3,
		MaxTokens:      300,
		ResponseFormat: pkgai.JSONObjectFormat,
	})
	if err != nil {
		return nil, &ExtractionError{Op: "extract key topics", Err: err}
	}

	topics, err := e.parser.ParseTopics(content)
	if err != nil {
		return nil, &ExtractionError{Op: "extract key topics", Err: err}
	}
	return topics, nil
}

func (e *Extractor) complete(ctx context.Context, req pkgai.ChatRequest) (string, error) {
	if e.llm == nil {
		return "", errors.New("language model not configured")
	}
	return e.llm.ChatCompletion(ctx, req)
}
