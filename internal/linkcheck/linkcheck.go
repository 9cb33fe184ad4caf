// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package linkcheck verifies that declared source URLs are reachable and,
// optionally, that their page titles match what the document claims. It is
// a collaborator of the core: its findings surface as ordinary issues, and
// all retry behavior lives in httputil.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/internal/httputil"
	"github.com/pdiddy/docgarden/pkg/types"
)

// Status classifies one link check outcome.
type Status string

const (
	StatusOK          Status = "ok"
	StatusUnreachable Status = "unreachable"
	StatusMalformed   Status = "malformed"
	StatusError       Status = "error"
)

// Result is the outcome of checking a single URL.
type Result struct {
	URL        string    `json:"url"`
	Status     Status    `json:"status"`
	StatusCode int       `json:"status_code,omitempty"`
	Title      string    `json:"title,omitempty"`
	Error      string    `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// titleRE extracts the first <title> element of an HTML page.
var titleRE = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// maxBodyBytes bounds how much of a page is read looking for its title.
const maxBodyBytes = 64 * 1024

// Checker performs sequential reachability checks with per-host pacing.
// It holds no locks; callers run checks from one goroutine.
type Checker struct {
	client      *http.Client
	cfg         types.LinkCheckConfig
	tokens      map[string]string
	lastRequest map[string]time.Time
}

// New builds a Checker. tokens maps hostnames to bearer tokens sent with
// requests to that host (loaded from .secrets/); it may be nil.
func New(cfg types.LinkCheckConfig, tokens map[string]string) *Checker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "docgarden/0.1"
	}
	return &Checker{
		client:      &http.Client{Timeout: cfg.Timeout},
		cfg:         cfg,
		tokens:      tokens,
		lastRequest: make(map[string]time.Time),
	}
}

// Check fetches one URL and reports its reachability and title.
func (c *Checker) Check(ctx context.Context, rawURL string) Result {
	result := Result{URL: rawURL, CheckedAt: time.Now()}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.Status = StatusMalformed
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Error = "missing scheme or host"
		}
		return result
	}

	c.pace(u.Hostname())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if token := c.tokens[u.Hostname()]; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode >= 400 {
		result.Status = StatusUnreachable
		return result
	}

	result.Status = StatusOK
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if m := titleRE.FindSubmatch(body); m != nil {
		result.Title = strings.TrimSpace(string(m[1]))
	}
	return result
}

// pace sleeps long enough that consecutive requests to one host are at
// least RequestDelay apart.
func (c *Checker) pace(host string) {
	if last, ok := c.lastRequest[host]; ok {
		if wait := c.cfg.RequestDelay - time.Since(last); wait > 0 {
			time.Sleep(wait)
		}
	}
	c.lastRequest[host] = time.Now()
}

// CheckSources verifies every source URL of a document. Unreachable or
// malformed URLs become warn issues; when title verification is on, a
// fetched title that does not contain the declared title (case-insensitive)
// becomes an info issue. All issues are flagged for external review.
func (c *Checker) CheckSources(ctx context.Context, doc document.Document) []types.Issue {
	var issues []types.Issue
	add := func(sev types.Severity, msg string) {
		issues = append(issues, types.Issue{
			File:        doc.Path(),
			Message:     msg,
			Severity:    sev,
			Validator:   "source-links",
			NeedsReview: true,
		})
	}

	for _, src := range doc.Header().Sources {
		result := c.Check(ctx, src.URL)
		switch result.Status {
		case StatusMalformed:
			add(types.SeverityWarn, fmt.Sprintf("source URL %q is malformed: %s", src.URL, result.Error))
		case StatusUnreachable:
			add(types.SeverityWarn, fmt.Sprintf("source URL %q returned HTTP %d", src.URL, result.StatusCode))
		case StatusError:
			add(types.SeverityWarn, fmt.Sprintf("source URL %q could not be fetched: %s", src.URL, result.Error))
		case StatusOK:
			if !c.cfg.VerifyTitles || result.Title == "" {
				continue
			}
			if !strings.Contains(strings.ToLower(result.Title), strings.ToLower(src.Title)) {
				add(types.SeverityInfo, fmt.Sprintf(
					"source %q declares title %q but the page reports %q", src.URL, src.Title, result.Title))
			}
		}
	}
	return issues
}
