package cronjobs

import (
	"context"
	"errors"
	"testing"

	"go-textlens/nlp"
	"go-textlens/types"
)

type probeBackend struct {
	calls int
	err   error
}

func (p *probeBackend) Name() string { return "probe" }

func (p *probeBackend) ExtractEntities(ctx context.Context, text string) ([]types.Entity, error) {
	p.calls++
	return []types.Entity{{Text: "Apple", Label: "ORG", Start: 0, End: 5}}, p.err
}

func (p *probeBackend) ScoreSentiment(ctx context.Context, text string) (float64, float64, error) {
	return 0.6, 0.8, nil
}

func TestProbeBackend(t *testing.T) {
	b := &probeBackend{}
	if err := ProbeBackend(context.Background(), nlp.NewAnalyzerFromBackend(b)); err != nil {
		t.Fatalf("ProbeBackend: %v", err)
	}
	if b.calls != 1 {
		t.Errorf("expected one backend call, got %d", b.calls)
	}

	b.err = errors.New("quota exceeded")
	if err := ProbeBackend(context.Background(), nlp.NewAnalyzerFromBackend(b)); err == nil {
		t.Fatal("expected probe failure to be returned")
	}
}

func TestInitCronJobs(t *testing.T) {
	analyzer := nlp.NewAnalyzerFromBackend(&probeBackend{})

	if _, err := InitCronJobs("not a schedule", analyzer); err == nil {
		t.Fatal("expected invalid schedule error")
	}

	c, err := InitCronJobs("*/10 * * * *", analyzer)
	if err != nil {
		t.Fatalf("InitCronJobs: %v", err)
	}
	defer c.Stop()
	if len(c.Entries()) != 1 {
		t.Errorf("expected one scheduled job, got %d", len(c.Entries()))
	}
}
