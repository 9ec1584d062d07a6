// Command scrapo-url scrapes a single website for contact information and
// writes a one-row CSV.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/output"
	"github.com/use-agent/scrapo/runner"
	"github.com/use-agent/scrapo/scraper"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: scrapo-url <url> <output.csv>")
		os.Exit(1)
	}
	url, outputFile := os.Args[1], os.Args[2]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	cfg := config.Load()
	config.InitLogger(cfg.Log, os.Stderr)

	if err := run(url, outputFile, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %+v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done. Results saved to:", outputFile)
}

func run(url, outputFile string, cfg *config.Config) error {
	session, err := scraper.Launch(cfg.Browser, cfg.Scraper, cfg.Runner)
	if err != nil {
		return err
	}
	defer session.Close()

	slog.Info("scraping", "url", url)
	rec := runner.New(session, cfg.Scraper, cfg.Runner).ProcessOne(context.Background(), url)

	return output.WriteSingleFile(outputFile, rec)
}
