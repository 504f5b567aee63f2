package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const maxTopics = 7

// Candidate is an action item proposed by the language model
type Candidate struct {
	Title       string
	Description *string
	Assignee    *string
	DueDate     *string
}

// Parser turns raw model output into validated values. Malformed entries
// are dropped rather than failing the whole response.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseActionItems reads {"actionItems":[...]}. A JSON document without that
// structure yields an empty list; only non-JSON content is an error.
func (p *Parser) ParseActionItems(content string) ([]Candidate, error) {
	doc, err := decode(content)
	if err != nil {
		return nil, err
	}

	list, ok := doc.([]interface{})
	if !ok {
		list = arrayField(doc, "actionItems", "action_items")
	}

	candidates := make([]Candidate, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		title := stringField(obj, "title")
		if title == nil {
			continue
		}
		candidates = append(candidates, Candidate{
			Title:       *title,
			Description: stringField(obj, "description"),
			Assignee:    stringField(obj, "assignee"),
			DueDate:     stringField(obj, "dueDate", "due_date"),
		})
	}
	return candidates, nil
}

// ParseTopics reads {"topics":[...]} and keeps at most seven non-empty strings
func (p *Parser) ParseTopics(content string) ([]string, error) {
	doc, err := decode(content)
	if err != nil {
		return nil, err
	}

	topics := make([]string, 0, maxTopics)
	for _, raw := range arrayField(doc, "topics") {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		topics = append(topics, s)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics, nil
}

func decode(content string) (interface{}, error) {
	content = extractJSON(content)
	if content == "" {
		return map[string]interface{}{}, nil
	}
	var doc interface{}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return doc, nil
}

// arrayField returns the first key holding an array, or nil
func arrayField(doc interface{}, keys ...string) []interface{} {
	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil
	}
	for _, k := range keys {
		if arr, ok := obj[k].([]interface{}); ok {
			return arr
		}
	}
	return nil
}

// stringField returns the trimmed value of the first non-blank string key
func stringField(obj map[string]interface{}, keys ...string) *string {
	for _, k := range keys {
		s, ok := obj[k].(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return &s
		}
	}
	return nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
