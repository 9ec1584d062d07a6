// Command scrapo-batch reads a spreadsheet of URLs/emails, scrapes each
// resolved target for contact information, and writes one CSV row per target.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/models"
	"github.com/use-agent/scrapo/output"
	"github.com/use-agent/scrapo/runner"
	"github.com/use-agent/scrapo/scraper"
	"github.com/use-agent/scrapo/source"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: scrapo-batch <input.csv|input.xlsx> <output.csv>")
		os.Exit(1)
	}
	inputFile, outputFile := os.Args[1], os.Args[2]

	cfg := config.Load()
	config.InitLogger(cfg.Log, os.Stderr)

	if err := run(inputFile, outputFile, cfg); err != nil {
		if models.IsFatalInput(err) {
			se := err.(*models.ScrapeError)
			fmt.Fprintln(os.Stderr, se.Message)
		} else {
			fmt.Fprintf(os.Stderr, "fatal: %+v\n", err)
		}
		os.Exit(1)
	}
}

func run(inputFile, outputFile string, cfg *config.Config) error {
	// All input validation happens before any browser session starts.
	table, err := source.ReadFile(inputFile)
	if err != nil {
		return err
	}
	targets, err := source.Resolve(table)
	if err != nil {
		return err
	}
	slog.Info("targets resolved", "count", len(targets))

	session, err := scraper.Launch(cfg.Browser, cfg.Scraper, cfg.Runner)
	if err != nil {
		return err
	}
	defer session.Close()

	records := runner.New(session, cfg.Scraper, cfg.Runner).Run(context.Background(), targets)

	if err := output.WriteBatchFile(outputFile, records); err != nil {
		return err
	}

	fmt.Printf("\nDone. Scraped %d websites. Results saved to: %s\n", len(records), outputFile)
	return nil
}
