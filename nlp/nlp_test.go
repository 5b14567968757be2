package nlp

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"go-textlens/config"
	"go-textlens/types"
)

type fakeExtractor struct {
	entities []types.Entity
	err      error
}

func (f fakeExtractor) ExtractEntities(ctx context.Context, text string) ([]types.Entity, error) {
	return f.entities, f.err
}

type fakeScorer struct {
	polarity, subjectivity float64
	err                    error
}

func (f fakeScorer) ScoreSentiment(ctx context.Context, text string) (float64, float64, error) {
	return f.polarity, f.subjectivity, f.err
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		polarity float64
		want     types.Category
	}{
		{1, types.Positive},
		{0.11, types.Positive},
		{0.1, types.Neutral},
		{0, types.Neutral},
		{-0.1, types.Neutral},
		{-0.1001, types.Negative},
		{-1, types.Negative},
	}
	for _, tc := range cases {
		if got := Categorize(tc.polarity); got != tc.want {
			t.Errorf("Categorize(%v) = %s, want %s", tc.polarity, got, tc.want)
		}
	}
}

func TestGetSentimentRoundsAndClamps(t *testing.T) {
	cases := []struct {
		name                   string
		polarity, subjectivity float64
		want                   types.Sentiment
	}{
		{"rounds", 0.456, 0.333, types.Sentiment{Polarity: 0.46, Subjectivity: 0.33, Category: types.Positive}},
		{"clamps", -1.7, 3, types.Sentiment{Polarity: -1, Subjectivity: 1, Category: types.Negative}},
		{"negative subjectivity", 0.05, -0.2, types.Sentiment{Polarity: 0.05, Subjectivity: 0, Category: types.Neutral}},
		{"half to even", 0.125, 0.625, types.Sentiment{Polarity: 0.12, Subjectivity: 0.62, Category: types.Positive}},
		{"negative half to even", -0.125, 0.375, types.Sentiment{Polarity: -0.12, Subjectivity: 0.38, Category: types.Negative}},
		// threshold uses the raw value, rounding would have made this 0.1
		{"threshold before rounding", 0.104, 0.5, types.Sentiment{Polarity: 0.1, Subjectivity: 0.5, Category: types.Positive}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetSentiment(context.Background(), fakeScorer{polarity: tc.polarity, subjectivity: tc.subjectivity}, "x")
			if err != nil {
				t.Fatalf("GetSentiment: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestGetSentimentRejectsNaN(t *testing.T) {
	_, err := GetSentiment(context.Background(), fakeScorer{polarity: math.NaN()}, "x")
	if err == nil {
		t.Fatal("expected error for NaN polarity")
	}
}

func TestGetSentimentNoNegativeZero(t *testing.T) {
	got, err := GetSentiment(context.Background(), fakeScorer{polarity: -0.001}, "x")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(got)
	if string(b) != `{"polarity":0,"subjectivity":0,"category":"neutral"}` {
		t.Errorf("unexpected json %s", b)
	}
}

func TestGetEntitiesCountsAndSorts(t *testing.T) {
	extractor := fakeExtractor{entities: []types.Entity{
		{Text: "London", Label: "GPE", Start: 29, End: 35},
		{Text: "Apple", Label: "ORG", Start: 0, End: 5},
		{Text: "Paris", Label: "GPE", Start: 40, End: 45},
	}}

	ner, err := GetEntities(context.Background(), extractor, "ignored")
	if err != nil {
		t.Fatalf("GetEntities: %v", err)
	}
	if ner.Entities[0].Text != "Apple" || ner.Entities[1].Text != "London" {
		t.Errorf("entities not sorted by offset: %+v", ner.Entities)
	}
	if ner.EntityCounts["GPE"] != 2 || ner.EntityCounts["ORG"] != 1 {
		t.Errorf("unexpected counts %v", ner.EntityCounts)
	}

	total := 0
	for _, n := range ner.EntityCounts {
		total += n
	}
	if total != len(ner.Entities) {
		t.Errorf("counts sum to %d, want %d", total, len(ner.Entities))
	}
}

func TestGetEntitiesEmptyIsNotNull(t *testing.T) {
	ner, err := GetEntities(context.Background(), fakeExtractor{}, "nothing here")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := json.Marshal(ner)
	if string(b) != `{"entities":[],"entity_counts":{}}` {
		t.Errorf("unexpected json %s", b)
	}
}

func TestAnalyze(t *testing.T) {
	a := &Analyzer{
		Entities:  fakeExtractor{entities: []types.Entity{{Text: "Bob", Label: "PERSON", Start: 0, End: 3}}},
		Sentiment: fakeScorer{polarity: -0.5, subjectivity: 0.9},
	}

	resp, err := a.Analyze(context.Background(), "Bob is sad")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if resp.Text != "Bob is sad" {
		t.Errorf("text not echoed: %q", resp.Text)
	}
	if resp.Sentiment.Category != types.Negative {
		t.Errorf("expected negative, got %s", resp.Sentiment.Category)
	}
	if len(resp.NER.Entities) != 1 || resp.NER.EntityCounts["PERSON"] != 1 {
		t.Errorf("unexpected ner %+v", resp.NER)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	boom := errors.New("model exploded")

	a := &Analyzer{Entities: fakeExtractor{err: boom}, Sentiment: fakeScorer{}}
	_, err := a.Analyze(context.Background(), "x")
	var ae *AnalysisError
	if !errors.As(err, &ae) || ae.Op != "entity extraction" {
		t.Fatalf("expected entity extraction AnalysisError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("cause not wrapped")
	}

	a = &Analyzer{Entities: fakeExtractor{}, Sentiment: fakeScorer{err: boom}}
	_, err = a.Analyze(context.Background(), "x")
	if !errors.As(err, &ae) || ae.Op != "sentiment scoring" {
		t.Fatalf("expected sentiment scoring AnalysisError, got %v", err)
	}
	if err.Error() != "sentiment scoring: model exploded" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNewBackend(t *testing.T) {
	cases := []struct {
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{cfg: config.Config{Provider: config.ProviderOpenAI, OpenAI: config.OpenAI{APIKey: "sk"}}, want: "openai"},
		{cfg: config.Config{Provider: config.ProviderOllama, Ollama: config.Ollama{Host: "http://localhost:11434"}}, want: "ollama"},
		{cfg: config.Config{Provider: config.ProviderOllama, Ollama: config.Ollama{Host: "localhost"}}, wantErr: true},
		{cfg: config.Config{Provider: config.ProviderGoogle, Google: config.Google{Credentials: "%%%not-base64"}}, wantErr: true},
		{cfg: config.Config{Provider: "spacy"}, wantErr: true},
	}
	for _, tc := range cases {
		b, err := NewBackend(context.Background(), &tc.cfg)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.cfg.Provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tc.cfg.Provider, err)
			continue
		}
		if b.Name() != tc.want {
			t.Errorf("expected %s backend, got %s", tc.want, b.Name())
		}
	}
}

func TestInitAnalyzerIsSingleton(t *testing.T) {
	cfg := &config.Config{Provider: config.ProviderOllama, Ollama: config.Ollama{Host: "http://localhost:11434", Model: "mistral"}}

	first, err := InitAnalyzer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("InitAnalyzer: %v", err)
	}
	second, err := InitAnalyzer(context.Background(), &config.Config{Provider: "bogus"})
	if err != nil || first != second {
		t.Errorf("second call should return the first analyzer, got %v %v", second, err)
	}
	CloseAnalyzer()
}
