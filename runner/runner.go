// Package runner drives one browser session across a list of targets,
// producing exactly one contact record per target in input order.
package runner

import (
	"context"
	"log/slog"
	"sync"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/engine"
	"github.com/use-agent/scrapo/extractor"
	"github.com/use-agent/scrapo/models"
	"github.com/use-agent/scrapo/scraper"
)

// Runner iterates targets against a single long-lived browser session. The
// session is owned by the caller; the runner only borrows pages from it,
// one per target.
type Runner struct {
	session     engine.Session
	scraperCfg  config.ScraperConfig
	concurrency int
}

// New creates a Runner. Concurrency below 1 is treated as 1 (strictly
// sequential processing).
func New(session engine.Session, scraperCfg config.ScraperConfig, runnerCfg config.RunnerConfig) *Runner {
	concurrency := runnerCfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		session:     session,
		scraperCfg:  scraperCfg,
		concurrency: concurrency,
	}
}

// Run processes every target and returns one record per target, order
// matching the input. A target whose navigation or extraction fails
// degrades to an empty-fields record; nothing a single target does can
// abort the run.
func (r *Runner) Run(ctx context.Context, targets []string) []models.ContactRecord {
	records := make([]models.ContactRecord, len(targets))

	if r.concurrency == 1 {
		for i, target := range targets {
			slog.Info("scraping", "index", i+1, "total", len(targets), "target", target)
			records[i] = r.processOne(ctx, target)
		}
		return records
	}

	// Bounded worker pool: each in-flight target has its own page, results
	// land in order-indexed slots.
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(idx int, tgt string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			slog.Info("scraping", "index", idx+1, "total", len(targets), "target", tgt)
			records[idx] = r.processOne(ctx, tgt)
		}(i, target)
	}
	wg.Wait()

	return records
}

// ProcessOne scrapes a single target into a record. Exposed for the
// single-URL path, which shares the per-target pipeline with batch runs.
func (r *Runner) ProcessOne(ctx context.Context, target string) models.ContactRecord {
	return r.processOne(ctx, target)
}

func (r *Runner) processOne(ctx context.Context, target string) models.ContactRecord {
	capture, err := scraper.Navigate(ctx, r.session, target, r.scraperCfg)
	if err != nil {
		slog.Error("scrape failed, emitting empty record", "target", target, "error", err)
		return models.EmptyRecord(target)
	}

	contact := extractor.Extract(capture.HTML, capture.Links)
	return models.ContactRecord{
		Target:    target,
		Emails:    contact.Emails,
		Phones:    contact.Phones,
		Facebook:  contact.Socials["facebook"],
		Instagram: contact.Socials["instagram"],
		LinkedIn:  contact.Socials["linkedin"],
	}
}
