package nlp

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"sync"

	"go-textlens/config"
	"go-textlens/types"
)

// EntityExtractor finds named entity spans in text.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) ([]types.Entity, error)
}

// SentimentScorer returns raw polarity in [-1,1] and subjectivity in [0,1].
type SentimentScorer interface {
	ScoreSentiment(ctx context.Context, text string) (polarity, subjectivity float64, err error)
}

// Backend is a provider that does both halves of the analysis.
type Backend interface {
	EntityExtractor
	SentimentScorer
	Name() string
}

const categoryThreshold = 0.1

// AnalysisError is returned when a backend call fails during Analyze.
type AnalysisError struct {
	Op  string
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer combines an entity extractor and a sentiment scorer.
type Analyzer struct {
	Entities  EntityExtractor
	Sentiment SentimentScorer
}

// NewAnalyzerFromBackend uses the same backend for both halves.
func NewAnalyzerFromBackend(b Backend) *Analyzer {
	return &Analyzer{Entities: b, Sentiment: b}
}

// Analyze runs entity extraction and sentiment scoring on text.
func (a *Analyzer) Analyze(ctx context.Context, text string) (types.AnalysisResponse, error) {
	var resp types.AnalysisResponse

	ner, err := GetEntities(ctx, a.Entities, text)
	if err != nil {
		return resp, &AnalysisError{Op: "entity extraction", Err: err}
	}

	sentiment, err := GetSentiment(ctx, a.Sentiment, text)
	if err != nil {
		return resp, &AnalysisError{Op: "sentiment scoring", Err: err}
	}

	resp.Text = text
	resp.NER = ner
	resp.Sentiment = sentiment
	return resp, nil
}

// GetEntities extracts entities and counts them by label.
func GetEntities(ctx context.Context, extractor EntityExtractor, text string) (types.NERResult, error) {
	entities, err := extractor.ExtractEntities(ctx, text)
	if err != nil {
		return types.NERResult{}, err
	}
	if entities == nil {
		entities = []types.Entity{}
	}
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})

	return types.NERResult{
		Entities:     entities,
		EntityCounts: CountEntities(entities),
	}, nil
}

// CountEntities maps each label to the number of entities carrying it.
func CountEntities(entities []types.Entity) types.EntityCounts {
	counts := make(types.EntityCounts)
	for _, e := range entities {
		counts[e.Label]++
	}
	return counts
}

// GetSentiment scores text and derives the category from the polarity.
func GetSentiment(ctx context.Context, scorer SentimentScorer, text string) (types.Sentiment, error) {
	polarity, subjectivity, err := scorer.ScoreSentiment(ctx, text)
	if err != nil {
		return types.Sentiment{}, err
	}
	if math.IsNaN(polarity) || math.IsNaN(subjectivity) {
		return types.Sentiment{}, fmt.Errorf("backend returned NaN sentiment scores")
	}

	polarity = clamp(polarity, -1, 1)
	subjectivity = clamp(subjectivity, 0, 1)

	return types.Sentiment{
		Polarity:     round2(polarity),
		Subjectivity: round2(subjectivity),
		Category:     Categorize(polarity),
	}, nil
}

// Categorize thresholds polarity at +/-0.1.
func Categorize(polarity float64) types.Category {
	switch {
	case polarity > categoryThreshold:
		return types.Positive
	case polarity < -categoryThreshold:
		return types.Negative
	default:
		return types.Neutral
	}
}

func round2(v float64) float64 {
	// half to even, like Python's round()
	r := math.RoundToEven(v*100) / 100
	if r == 0 {
		// avoid -0 in the json output
		return 0
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// analyzer is the process wide analyzer, built once at startup.
var (
	analyzer     *Analyzer
	backend      Backend
	analyzerErr  error
	analyzerOnce sync.Once
)

// InitAnalyzer builds the backend selected in cfg. Later calls return the
// first result.
func InitAnalyzer(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	analyzerOnce.Do(func() {
		backend, analyzerErr = NewBackend(ctx, cfg)
		if analyzerErr != nil {
			return
		}
		log.Printf("NLP backend ready: %s", backend.Name())
		analyzer = NewAnalyzerFromBackend(backend)
	})
	return analyzer, analyzerErr
}

// NewBackend creates the backend named by cfg.Provider.
func NewBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderGoogle:
		g, err := NewGoogleBackend(ctx, cfg.Google)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderOpenAI:
		return NewOpenAIBackend(cfg.OpenAI), nil
	case config.ProviderOllama:
		return NewOllamaBackend(cfg.Ollama, nil)
	default:
		return nil, fmt.Errorf("unknown NLP provider %q", cfg.Provider)
	}
}

// CloseAnalyzer releases the backend's connections, if it holds any.
func CloseAnalyzer() {
	if c, ok := backend.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("Error closing NLP backend: %v", err)
		}
	}
}
