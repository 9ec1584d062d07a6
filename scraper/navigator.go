package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/engine"
)

// contactLinkPattern matches anchor text that suggests a contact/about page.
const contactLinkPattern = `contact|about|support`

// Capture is what a single target's navigation produced: the rendered HTML
// of the final page and the href of every anchor on it.
type Capture struct {
	HTML  string
	Links []string
}

// Navigate loads a target in a fresh tab, opportunistically follows a
// contact/about link, and captures the rendered HTML plus outbound links.
//
// A malformed target returns an empty Capture with a nil error: not worth a
// page. Any error after a page is open degrades to an empty Capture; the
// returned error exists for logging only and never aborts a batch. The tab
// is always closed on exit.
func Navigate(ctx context.Context, session engine.Session, target string, cfg config.ScraperConfig) (Capture, error) {
	targetURL := normalizeTarget(target)
	if targetURL == "" {
		slog.Warn("skipping malformed URL", "target", target)
		return Capture{}, nil
	}

	page, err := session.NewPage()
	if err != nil {
		return Capture{}, err
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("failed to close page", "target", target, "error", closeErr)
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, cfg.NavTimeout)
	defer cancel()

	if err := page.Goto(navCtx, targetURL); err != nil {
		saveDebugArtifacts(page, cfg, target)
		return Capture{}, err
	}

	// Best-effort contact-page hop: every failure here is swallowed and
	// extraction proceeds on whatever page is currently loaded.
	if href, probeErr := page.FirstHrefByText(contactLinkPattern, cfg.ProbeTimeout); probeErr == nil {
		if contactURL := resolveHref(targetURL, href); contactURL != "" {
			slog.Info("following contact page", "target", target, "url", contactURL)
			hopCtx, hopCancel := context.WithTimeout(ctx, cfg.NavTimeout)
			if hopErr := page.Goto(hopCtx, contactURL); hopErr != nil {
				slog.Debug("contact page navigation failed, scraping current page",
					"target", target, "error", hopErr)
			}
			hopCancel()
		}
	} else {
		slog.Debug("no contact page found, scraping current page", "target", target)
	}

	html, err := page.HTML()
	if err != nil {
		saveDebugArtifacts(page, cfg, target)
		return Capture{}, err
	}

	links, err := page.LinkHrefs()
	if err != nil {
		slog.Debug("failed to collect links, continuing with HTML only",
			"target", target, "error", err)
		links = nil
	}

	return Capture{HTML: html, Links: links}, nil
}

// normalizeTarget prefixes https:// when no scheme is present and validates
// that the result parses to a scheme plus non-empty host. Returns "" when
// the target is not navigable.
func normalizeTarget(target string) string {
	t := strings.TrimSpace(target)
	if t == "" {
		return ""
	}
	if !strings.HasPrefix(t, "http://") && !strings.HasPrefix(t, "https://") {
		t = "https://" + t
	}
	u, err := url.Parse(t)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return t
}

// resolveHref resolves a possibly-relative href against the page URL.
func resolveHref(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	resolved, err := baseURL.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// saveDebugArtifacts captures a screenshot and HTML dump for postmortem.
// Both captures are best-effort: their own failures are logged and swallowed.
func saveDebugArtifacts(page engine.Page, cfg config.ScraperConfig, target string) {
	if cfg.DebugScreenshotPath != "" {
		if err := page.Screenshot(cfg.DebugScreenshotPath); err != nil {
			slog.Warn("failed to save debug screenshot", "target", target, "error", err)
		} else {
			slog.Info("saved debug screenshot", "target", target, "path", cfg.DebugScreenshotPath)
		}
	}
	if cfg.DebugHTMLPath != "" {
		html, err := page.HTML()
		if err == nil {
			err = os.WriteFile(cfg.DebugHTMLPath, []byte(html), 0o644)
		}
		if err != nil {
			slog.Warn("failed to save debug HTML", "target", target, "error", err)
		} else {
			slog.Info("saved debug HTML", "target", target, "path", cfg.DebugHTMLPath)
		}
	}
}
