package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-textlens/types"
)

// completeFunc sends a system and user prompt to a chat model and returns the
// raw text of its reply.
type completeFunc func(ctx context.Context, system, prompt string) (string, error)

const entitySystemPrompt = `You are a named entity recognizer. Reply with JSON only, shaped as
{"entities":[{"text":"<exact substring of the input>","label":"<LABEL>"}]}.
Use these labels: PERSON, NORP, FAC, ORG, GPE, LOC, PRODUCT, EVENT, WORK_OF_ART, LAW,
LANGUAGE, DATE, TIME, PERCENT, MONEY, QUANTITY, ORDINAL, CARDINAL.
List entities in the order they appear and repeat an entity for every mention.
Copy the text exactly as written in the input.`

const sentimentSystemPrompt = `You are a sentiment analyzer. Reply with JSON only, shaped as
{"polarity":<number from -1 to 1>,"subjectivity":<number from 0 to 1>}.
Polarity is -1 for very negative, 0 for neutral and 1 for very positive text.
Subjectivity is 0 for purely factual and 1 for purely opinionated text.`

type llmEntityReply struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

type llmSentimentReply struct {
	Polarity     *float64 `json:"polarity"`
	Subjectivity *float64 `json:"subjectivity"`
}

// llmBackend implements both analysis halves on top of a chat model.
type llmBackend struct {
	name     string
	complete completeFunc
}

func (b *llmBackend) Name() string { return b.name }

func (b *llmBackend) ExtractEntities(ctx context.Context, text string) ([]types.Entity, error) {
	raw, err := b.complete(ctx, entitySystemPrompt, "Text:\n"+text)
	if err != nil {
		return nil, err
	}

	var reply llmEntityReply
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &reply); err != nil {
		return nil, fmt.Errorf("%s returned invalid entity json: %w", b.name, err)
	}

	found := make([]foundEntity, 0, len(reply.Entities))
	for _, e := range reply.Entities {
		found = append(found, foundEntity{Text: e.Text, Label: e.Label})
	}
	return locateEntities(text, found), nil
}

func (b *llmBackend) ScoreSentiment(ctx context.Context, text string) (float64, float64, error) {
	raw, err := b.complete(ctx, sentimentSystemPrompt, "Text:\n"+text)
	if err != nil {
		return 0, 0, err
	}

	var reply llmSentimentReply
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &reply); err != nil {
		return 0, 0, fmt.Errorf("%s returned invalid sentiment json: %w", b.name, err)
	}
	if reply.Polarity == nil || reply.Subjectivity == nil {
		return 0, 0, fmt.Errorf("%s reply is missing polarity or subjectivity: %s", b.name, raw)
	}
	return *reply.Polarity, *reply.Subjectivity, nil
}

// stripCodeFence removes a markdown ```json fence some models add in spite of
// being asked for bare json.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
