package cronjobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"go-textlens/nlp"
)

const probeText = "Apple is opening a new office in London next year, and the team is thrilled."

// ProbeBackend runs one analysis against the backend and logs the outcome.
func ProbeBackend(ctx context.Context, analyzer *nlp.Analyzer) error {
	start := time.Now()
	resp, err := analyzer.Analyze(ctx, probeText)
	if err != nil {
		log.Printf("CronJob: NLP probe failed after %v: %v", time.Since(start), err)
		return err
	}
	log.Printf("CronJob: NLP probe ok in %v (%d entities, %s)",
		time.Since(start), len(resp.NER.Entities), resp.Sentiment.Category)
	return nil
}

// InitCronJobs schedules the backend probe and starts the scheduler. The
// caller stops it on shutdown.
func InitCronJobs(schedule string, analyzer *nlp.Analyzer) (*cron.Cron, error) {
	log.Println("Starting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		log.Println("CronJob: NLP probe running")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ProbeBackend(ctx, analyzer)
	})
	if err != nil {
		log.Println("Error scheduling NLP probe:", err)
		return nil, err
	}

	c.Start()
	return c, nil
}
