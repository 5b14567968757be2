package nlp

import (
	"context"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"

	"go-textlens/config"
	"go-textlens/types"
)

// languageAPI is the part of *language.Client the backend uses.
type languageAPI interface {
	AnalyzeEntities(ctx context.Context, req *languagepb.AnalyzeEntitiesRequest, opts ...gax.CallOption) (*languagepb.AnalyzeEntitiesResponse, error)
	AnalyzeSentiment(ctx context.Context, req *languagepb.AnalyzeSentimentRequest, opts ...gax.CallOption) (*languagepb.AnalyzeSentimentResponse, error)
	Close() error
}

// GoogleBackend calls the Cloud Natural Language API.
type GoogleBackend struct {
	client languageAPI
}

// NewGoogleBackend creates a language client from base64 encoded credentials.
func NewGoogleBackend(ctx context.Context, cfg config.Google) (*GoogleBackend, error) {
	creds, err := base64.StdEncoding.DecodeString(cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to decode Natural language credentials: %w", err)
	}

	client, err := language.NewClient(ctx, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create Natural Language client: %w", err)
	}
	return &GoogleBackend{client: client}, nil
}

func (g *GoogleBackend) Name() string { return config.ProviderGoogle }

func (g *GoogleBackend) Close() error {
	return g.client.Close()
}

func document(text string) *languagepb.Document {
	return &languagepb.Document{
		Source: &languagepb.Document_Content{
			Content: text,
		},
		Type: languagepb.Document_PLAIN_TEXT,
	}
}

// ExtractEntities returns one entity per proper or unclassified mention.
func (g *GoogleBackend) ExtractEntities(ctx context.Context, text string) ([]types.Entity, error) {
	// UTF32 offsets are code point offsets, the unit Entity uses
	req := &languagepb.AnalyzeEntitiesRequest{
		Document:     document(text),
		EncodingType: languagepb.EncodingType_UTF32,
	}

	resp, err := g.client.AnalyzeEntities(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("AnalyzeEntities error (%s): %w", status.Code(err), err)
	}
	return entitiesFromResponse(resp), nil
}

func entitiesFromResponse(resp *languagepb.AnalyzeEntitiesResponse) []types.Entity {
	entities := []types.Entity{}
	for _, e := range resp.GetEntities() {
		for _, m := range e.GetMentions() {
			// common nouns ("the house") are not named entities
			if m.GetType() == languagepb.EntityMention_COMMON {
				continue
			}
			span := m.GetText()
			if span.GetContent() == "" {
				continue
			}
			start := int(span.GetBeginOffset())
			entities = append(entities, types.Entity{
				Text:  span.GetContent(),
				Label: e.GetType().String(),
				Start: start,
				End:   start + utf8.RuneCountInString(span.GetContent()),
			})
		}
	}
	return entities
}

// ScoreSentiment maps the document score to polarity and the mean absolute
// sentence sentiment to subjectivity.
func (g *GoogleBackend) ScoreSentiment(ctx context.Context, text string) (float64, float64, error) {
	req := &languagepb.AnalyzeSentimentRequest{
		Document:     document(text),
		EncodingType: languagepb.EncodingType_UTF32,
	}

	resp, err := g.client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return 0, 0, fmt.Errorf("AnalyzeSentiment error (%s): %w", status.Code(err), err)
	}
	if resp.GetDocumentSentiment() == nil {
		return 0, 0, fmt.Errorf("AnalyzeSentiment returned no document sentiment")
	}
	polarity, subjectivity := sentimentFromResponse(resp)
	return polarity, subjectivity, nil
}

func sentimentFromResponse(resp *languagepb.AnalyzeSentimentResponse) (float64, float64) {
	doc := resp.GetDocumentSentiment()
	polarity := float64(doc.GetScore())

	sentences := len(resp.GetSentences())
	if sentences == 0 {
		return polarity, 0
	}
	subjectivity := float64(doc.GetMagnitude()) / float64(sentences)
	return polarity, clamp(subjectivity, 0, 1)
}
