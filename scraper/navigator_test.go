package scraper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/use-agent/scrapo/config"
	"github.com/use-agent/scrapo/engine"
)

// fakePage scripts engine.Page behavior for navigator tests.
type fakePage struct {
	html        string
	links       []string
	contactHref string

	gotoErrs map[string]error // URL → error
	visited  []string
	closed   bool

	screenshotPaths []string
	screenshotErr   error
}

func (p *fakePage) Goto(_ context.Context, url string) error {
	p.visited = append(p.visited, url)
	if err, ok := p.gotoErrs[url]; ok {
		return err
	}
	return nil
}

func (p *fakePage) HTML() (string, error)        { return p.html, nil }
func (p *fakePage) LinkHrefs() ([]string, error) { return p.links, nil }

func (p *fakePage) FirstHrefByText(string, time.Duration) (string, error) {
	if p.contactHref == "" {
		return "", errors.New("no match")
	}
	return p.contactHref, nil
}

func (p *fakePage) Screenshot(path string) error {
	p.screenshotPaths = append(p.screenshotPaths, path)
	return p.screenshotErr
}

func (p *fakePage) Close() error { p.closed = true; return nil }

type fakeSession struct {
	page    *fakePage
	pageErr error
}

func (s *fakeSession) NewPage() (engine.Page, error) {
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	return s.page, nil
}

func (s *fakeSession) Close() error { return nil }

func testCfg() config.ScraperConfig {
	return config.ScraperConfig{
		NavTimeout:   5 * time.Second,
		SettleWindow: 10 * time.Millisecond,
		ProbeTimeout: 100 * time.Millisecond,
	}
}

func TestNavigate_MalformedTargetSkipsPage(t *testing.T) {
	s := &fakeSession{pageErr: errors.New("must not be called")}

	capture, err := Navigate(context.Background(), s, "https://", testCfg())
	if err != nil {
		t.Fatalf("malformed target must not error: %v", err)
	}
	if capture.HTML != "" || len(capture.Links) != 0 {
		t.Errorf("expected empty capture, got %+v", capture)
	}
}

func TestNavigate_SchemePrefixed(t *testing.T) {
	page := &fakePage{html: "<html></html>"}
	s := &fakeSession{page: page}

	if _, err := Navigate(context.Background(), s, "example.com", testCfg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.visited) == 0 || page.visited[0] != "https://example.com" {
		t.Errorf("visited = %v, want https://example.com first", page.visited)
	}
}

func TestNavigate_ContactHopFollowed(t *testing.T) {
	page := &fakePage{
		html:        "<html>contact page</html>",
		contactHref: "/contact",
	}
	s := &fakeSession{page: page}

	capture, err := Navigate(context.Background(), s, "example.com", testCfg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.visited) != 2 || page.visited[1] != "https://example.com/contact" {
		t.Errorf("visited = %v, want contact hop second", page.visited)
	}
	if capture.HTML != "<html>contact page</html>" {
		t.Errorf("capture HTML = %q", capture.HTML)
	}
}

func TestNavigate_ContactHopFailureSwallowed(t *testing.T) {
	page := &fakePage{
		html:        "<html>original</html>",
		contactHref: "/contact",
		gotoErrs: map[string]error{
			"https://example.com/contact": errors.New("boom"),
		},
	}
	s := &fakeSession{page: page}

	capture, err := Navigate(context.Background(), s, "example.com", testCfg())
	if err != nil {
		t.Fatalf("hop failure must be swallowed: %v", err)
	}
	if capture.HTML != "<html>original</html>" {
		t.Errorf("expected original page content, got %q", capture.HTML)
	}
}

func TestNavigate_PrimaryNavigationFailure(t *testing.T) {
	page := &fakePage{
		gotoErrs: map[string]error{
			"https://unreachable.test": errors.New("net::ERR_NAME_NOT_RESOLVED"),
		},
	}
	s := &fakeSession{page: page}

	cfg := testCfg()
	cfg.DebugScreenshotPath = ""
	cfg.DebugHTMLPath = ""

	capture, err := Navigate(context.Background(), s, "unreachable.test", cfg)
	if err == nil {
		t.Error("expected a loggable error for the failed navigation")
	}
	if capture.HTML != "" || len(capture.Links) != 0 {
		t.Errorf("expected empty capture on failure, got %+v", capture)
	}
	if !page.closed {
		t.Error("page must be closed even on navigation failure")
	}
}

func TestNavigate_DebugArtifactsWrittenOnFailure(t *testing.T) {
	page := &fakePage{
		html: "<html>error page</html>",
		gotoErrs: map[string]error{
			"https://unreachable.test": errors.New("net::ERR_NAME_NOT_RESOLVED"),
		},
	}
	s := &fakeSession{page: page}

	dir := t.TempDir()
	cfg := testCfg()
	cfg.DebugScreenshotPath = filepath.Join(dir, "error_screenshot.png")
	cfg.DebugHTMLPath = filepath.Join(dir, "error_page.html")

	if _, err := Navigate(context.Background(), s, "unreachable.test", cfg); err == nil {
		t.Fatal("expected a loggable error for the failed navigation")
	}
	if len(page.screenshotPaths) != 1 || page.screenshotPaths[0] != cfg.DebugScreenshotPath {
		t.Errorf("screenshot paths = %v, want [%s]", page.screenshotPaths, cfg.DebugScreenshotPath)
	}
	dump, err := os.ReadFile(cfg.DebugHTMLPath)
	if err != nil {
		t.Fatalf("debug HTML dump not written: %v", err)
	}
	if string(dump) != "<html>error page</html>" {
		t.Errorf("debug HTML dump = %q", dump)
	}
}

func TestNavigate_DebugArtifactFailuresSwallowed(t *testing.T) {
	page := &fakePage{
		html:          "<html>error page</html>",
		screenshotErr: errors.New("screenshot failed"),
		gotoErrs: map[string]error{
			"https://unreachable.test": errors.New("net::ERR_NAME_NOT_RESOLVED"),
		},
	}
	s := &fakeSession{page: page}

	cfg := testCfg()
	cfg.DebugScreenshotPath = "error_screenshot.png"
	// A path inside a directory that does not exist makes the dump write fail.
	cfg.DebugHTMLPath = filepath.Join(t.TempDir(), "missing", "error_page.html")

	capture, err := Navigate(context.Background(), s, "unreachable.test", cfg)
	if err == nil {
		t.Error("the navigation error must still be reported")
	}
	if capture.HTML != "" || len(capture.Links) != 0 {
		t.Errorf("expected empty capture, got %+v", capture)
	}
	if !page.closed {
		t.Error("page must be closed despite artifact failures")
	}
}

func TestNavigate_PageAlwaysClosed(t *testing.T) {
	page := &fakePage{html: "<html></html>", links: []string{"https://a.test"}}
	s := &fakeSession{page: page}

	if _, err := Navigate(context.Background(), s, "example.com", testCfg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.closed {
		t.Error("page must be closed after a successful capture")
	}
}
