package handler

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/scrapo/cache"
	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/models"
	"github.com/use-agent/scrapo/output"
	"github.com/use-agent/scrapo/runner"
	"github.com/use-agent/scrapo/source"
	"github.com/use-agent/scrapo/webhook"
)

// Scrape returns the handler for POST /api/v1/scrape. The request carries
// either a `url` form field (single-URL layout in the response) or a `file`
// upload (batch layout). Either way the response is a CSV attachment.
func Scrape(r *runner.Runner, cc *cache.Cache, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if url := c.PostForm("url"); url != "" {
			scrapeURL(c, r, cc, url)
			return
		}
		if fileHeader, err := c.FormFile("file"); err == nil {
			scrapeFile(c, r, cc, cfg, fileHeader)
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error": models.ErrorDetail{
				Code:    models.ErrCodeInvalidInput,
				Message: "no URL or file provided",
			},
		})
	}
}

// scrapeURL handles the single-URL path.
func scrapeURL(c *gin.Context, r *runner.Runner, cc *cache.Cache, url string) {
	rec := lookupOrScrape(c, r, cc, url)

	var buf bytes.Buffer
	if err := output.WriteSingle(&buf, rec); err != nil {
		internalError(c, err)
		return
	}
	sendCSV(c, "contact.csv", buf.Bytes())
}

// scrapeFile handles the uploaded-spreadsheet path.
func scrapeFile(c *gin.Context, r *runner.Runner, cc *cache.Cache, cfg *config.Config, fileHeader *multipart.FileHeader) {
	f, err := fileHeader.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer f.Close()
	filename := fileHeader.Filename

	table, err := source.Read(f)
	if err != nil {
		inputError(c, err)
		return
	}
	targets, err := source.Resolve(table)
	if err != nil {
		inputError(c, err)
		return
	}

	slog.Info("batch upload resolved", "file", filename, "targets", len(targets))

	records := make([]models.ContactRecord, len(targets))
	for i, target := range targets {
		records[i] = lookupOrScrape(c, r, cc, target)
	}

	var buf bytes.Buffer
	if err := output.WriteBatch(&buf, records); err != nil {
		internalError(c, err)
		return
	}

	if cfg.Webhook.URL != "" {
		webhook.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &webhook.Event{
			Type:      "batch.completed",
			RunID:     "run-" + randomID(),
			Timestamp: time.Now().Unix(),
			Data:      summarize(records),
		})
	}

	sendCSV(c, filename+"_output.csv", buf.Bytes())
}

// lookupOrScrape consults the per-target cache before driving the browser.
func lookupOrScrape(c *gin.Context, r *runner.Runner, cc *cache.Cache, target string) models.ContactRecord {
	if rec, hit := cc.Get(target); hit {
		slog.Debug("cache hit", "target", target)
		return rec
	}
	rec := r.ProcessOne(c.Request.Context(), target)
	cc.Set(target, rec)
	return rec
}

func summarize(records []models.ContactRecord) webhook.RunSummary {
	s := webhook.RunSummary{Targets: len(records)}
	for _, rec := range records {
		if len(rec.Emails) > 0 {
			s.WithEmail++
		}
		if len(rec.Phones) > 0 {
			s.WithPhone++
		}
	}
	return s
}

func sendCSV(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func inputError(c *gin.Context, err error) {
	var se *models.ScrapeError
	if errors.As(err, &se) && models.IsFatalInput(se) {
		c.JSON(http.StatusBadRequest, gin.H{"error": se.ToDetail()})
		return
	}
	internalError(c, err)
}

func internalError(c *gin.Context, err error) {
	slog.Error("scrape request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": models.ErrorDetail{
			Code:    models.ErrCodeInternal,
			Message: "unexpected error",
		},
	})
}

// randomID generates a short random hex string for run IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
