// Package scraper implements the engine interfaces on top of a headless
// Chrome instance driven by rod.
package scraper

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/engine"
	"github.com/use-agent/scrapo/models"
)

// Session manages the global browser lifecycle. It is safe for concurrent
// use; each page it hands out belongs to exactly one caller.
type Session struct {
	browser     *rod.Browser
	browserCfg  config.BrowserConfig
	scraperCfg  config.ScraperConfig
	maxPages    int
	activePages atomic.Int32
}

var _ engine.Session = (*Session)(nil)

// Launch starts a headless browser and connects to it. The runner config
// sets the page capacity reported by Stats.
func Launch(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig, runnerCfg config.RunnerConfig) (*Session, error) {
	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}
	if browserCfg.Proxy != "" {
		l = l.Proxy(browserCfg.Proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-component-update"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	maxPages := runnerCfg.Concurrency
	if maxPages < 1 {
		maxPages = 1
	}

	return &Session{
		browser:    browser,
		browserCfg: browserCfg,
		scraperCfg: scraperCfg,
		maxPages:   maxPages,
	}, nil
}

// Stats returns a snapshot of the session's current page usage.
func (s *Session) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    s.maxPages,
		ActivePages: int(s.activePages.Load()),
	}
}

// NewPage opens an isolated tab. Stealth JS and resource blocking are
// installed here because they only take effect for navigations that happen
// after they are in place.
func (s *Session) NewPage() (engine.Page, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}

	if s.browserCfg.Stealth {
		if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
			slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
		}
	}

	router := setupBlocking(page, s.scraperCfg.BlockedResourceTypes)

	s.activePages.Add(1)
	return &rodPage{
		page:    page,
		cfg:     s.scraperCfg,
		router:  router,
		session: s,
	}, nil
}

// Close kills the browser process. Call exactly once at the end of a run.
func (s *Session) Close() error {
	slog.Info("scraper shutting down: closing browser")
	return s.browser.Close()
}

// rodPage adapts a *rod.Page to engine.Page.
type rodPage struct {
	page    *rod.Page
	cfg     config.ScraperConfig
	router  *rod.HijackRouter
	session *Session
}

var _ engine.Page = (*rodPage)(nil)

// Goto navigates to url, then waits for network quiescence. The idle waiter
// is registered before Navigate so in-flight requests are not missed. When a
// hijack router is mounted the Fetch domain is in use and WaitRequestIdle
// cannot be, so the wait degrades to DOM stability.
func (p *rodPage) Goto(ctx context.Context, targetURL string) error {
	pg := p.page.Context(ctx)

	p.setRefererHeader(pg, targetURL)

	var waitIdle func()
	if p.router == nil {
		waitIdle = pg.WaitRequestIdle(p.cfg.SettleWindow, nil, nil, nil)
	}

	if err := pg.Navigate(targetURL); err != nil {
		return categorizeError(err, "navigation to target URL failed")
	}

	if waitIdle != nil {
		waitIdle()
	} else if err := pg.WaitDOMStable(p.cfg.SettleWindow, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", err)
	}

	if err := ctx.Err(); err != nil {
		return categorizeError(err, "navigation timed out while settling")
	}
	return nil
}

// HTML returns the serialized rendered DOM.
func (p *rodPage) HTML() (string, error) {
	html, err := p.page.HTML()
	if err != nil {
		return "", categorizeError(err, "failed to extract page HTML")
	}
	return html, nil
}

// LinkHrefs collects the resolved href of every anchor element.
func (p *rodPage) LinkHrefs() ([]string, error) {
	res, err := p.page.Eval(`() => Array.from(document.querySelectorAll("a[href]")).map(e => e.href)`)
	if err != nil {
		return nil, categorizeError(err, "failed to collect anchor hrefs")
	}
	arr := res.Value.Arr()
	hrefs := make([]string, 0, len(arr))
	for _, v := range arr {
		if s := v.Str(); s != "" {
			hrefs = append(hrefs, s)
		}
	}
	return hrefs, nil
}

// FirstHrefByText returns the raw href attribute of the first anchor whose
// visible text matches the case-insensitive pattern.
func (p *rodPage) FirstHrefByText(pattern string, timeout time.Duration) (string, error) {
	pg := p.page.Timeout(timeout)
	el, err := pg.ElementR("a", "/"+pattern+"/i")
	if err != nil {
		return "", err
	}
	href, err := el.Attribute("href")
	if err != nil {
		return "", err
	}
	if href == nil || *href == "" {
		return "", models.NewScrapeError(models.ErrCodeNavigation, "matched anchor has no href", nil)
	}
	return *href, nil
}

// Screenshot writes a full-page screenshot to path.
func (p *rodPage) Screenshot(path string) error {
	data, err := p.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Close releases the tab and stops the hijack router if one is mounted.
func (p *rodPage) Close() error {
	if p.router != nil {
		_ = p.router.Stop()
	}
	p.session.activePages.Add(-1)
	return p.page.Close()
}

// setRefererHeader makes the visit look like a Google search click-through.
func (p *rodPage) setRefererHeader(pg *rod.Page, targetURL string) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return
	}
	headers := proto.NetworkHeaders{
		"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
	}
	_ = proto.NetworkSetExtraHTTPHeaders{Headers: headers}.Call(pg)
}
