package types

type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
	Neutral  Category = "neutral"
)

// Entity represents a named entity detected in the text.
// Start and End are character offsets, End is exclusive.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type EntityCounts map[string]int

type NERResult struct {
	Entities     []Entity     `json:"entities"`
	EntityCounts EntityCounts `json:"entity_counts"`
}

type Sentiment struct {
	Polarity     float64  `json:"polarity"`
	Subjectivity float64  `json:"subjectivity"`
	Category     Category `json:"category"`
}

// AnalyzeRequest is the body accepted by POST /analyze
type AnalyzeRequest struct {
	Text string `json:"text"`
}

type AnalysisResponse struct {
	Text      string    `json:"text"`
	NER       NERResult `json:"ner"`
	Sentiment Sentiment `json:"sentiment"`
}
