package linkcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docgarden/internal/document"
	"github.com/pdiddy/docgarden/pkg/types"
)

func testChecker(tokens map[string]string) *Checker {
	return New(types.LinkCheckConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 5 * time.Second},
		RequestDelay: time.Millisecond,
		VerifyTitles: true,
	}, tokens)
}

func TestCheckReachableWithTitle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><head><title>Pooling Guide — Example</title></head><body></body></html>")
	}))
	defer ts.Close()

	result := testChecker(nil).Check(context.Background(), ts.URL)
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "Pooling Guide — Example", result.Title)
}

func TestCheckUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	result := testChecker(nil).Check(context.Background(), ts.URL)
	assert.Equal(t, StatusUnreachable, result.Status)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestCheckMalformed(t *testing.T) {
	result := testChecker(nil).Check(context.Background(), "not-a-url")
	assert.Equal(t, StatusMalformed, result.Status)
}

func TestCheckSendsDomainToken(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer ts.Close()

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)

	checker := testChecker(map[string]string{u.Hostname(): "sekrit"})
	checker.Check(context.Background(), ts.URL)
	assert.Equal(t, "Bearer sekrit", got)
}

func sourceDoc(t *testing.T, srcURL, srcTitle string) document.Document {
	t.Helper()
	text := fmt.Sprintf(`---
type: topic
description: Connection pooling under load
last-updated: 2026-08-01
last-validated: 2026-08-01
sources:
- %s | %s
---

# Connection Pooling

## Guidance
x
`, srcURL, srcTitle)
	doc, err := document.Parse("areas/databases/connection-pooling.md", text)
	require.NoError(t, err)
	return doc
}

func TestCheckSourcesTitleMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><head><title>A Completely Different Page</title></head></html>")
	}))
	defer ts.Close()

	doc := sourceDoc(t, ts.URL, "Pooling Guide")
	issues := testChecker(nil).CheckSources(context.Background(), doc)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityInfo, issues[0].Severity)
	assert.True(t, issues[0].NeedsReview)
}

func TestCheckSourcesTitleMatchIsCaseInsensitive(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><head><title>THE POOLING GUIDE, ANNOTATED</title></head></html>")
	}))
	defer ts.Close()

	doc := sourceDoc(t, ts.URL, "Pooling Guide")
	issues := testChecker(nil).CheckSources(context.Background(), doc)
	assert.Empty(t, issues)
}

func TestCheckSourcesUnreachableIsWarn(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	doc := sourceDoc(t, ts.URL, "Pooling Guide")
	issues := testChecker(nil).CheckSources(context.Background(), doc)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarn, issues[0].Severity)
}
