package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"worldvoice.in/web/internal/config"
	"worldvoice.in/web/internal/handlers"
	"worldvoice.in/web/internal/testutil"
)

const testPost = `---
title: Heavy rain in Latur
summary: Farmers welcome early monsoon showers.
published_at: 2025-09-08T10:30:00+05:30
author:
  name: Hanumant Nalwade
---
Showers arrived **early** this year.
`

const testSiteYAML = `title: World Voice
description: Local news
url: https://worldvoice.in/
header_menu:
  - label: Home
    url: /
footer_menu:
  - label: Privacy
    url: /privacy-policy
`

func writeTestFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// newTestSite lays out content and public directories and returns their root.
func newTestSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, root, "content/site.yaml", testSiteYAML)
	writeTestFile(t, root, "content/posts/latur-rain.md", testPost)
	writeTestFile(t, root, "content/pages/about.md", "---\ntitle: About\n---\nWe report local news.")
	writeTestFile(t, root, "public/assets/site.css", "body{margin:0}")
	return root
}

// newTestRouter builds the same router as the serve command against a temp site.
func newTestRouter(t *testing.T, env map[string]string) http.Handler {
	t.Helper()
	root := newTestSite(t)
	values := map[string]string{
		"WV_CONTENT_DIR":    filepath.Join(root, "content"),
		"WV_PUBLIC_DIR":     filepath.Join(root, "public"),
		"WV_PUBLISHER_NAME": "World Voice",
	}
	for k, v := range env {
		values[k] = v
	}
	cfg, err := config.Load(config.WithEnvMap(values), config.WithoutSystemEnv(), config.WithEnvFile(""))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return newRouter(newApp(cfg, nil))
}

func TestHealthzOK(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestAssetsServedWithCacheHeaders(t *testing.T) {
	srv := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/assets/site.css", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("ETag") == "" {
		t.Fatalf("expected ETag header")
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "max-age=") {
		t.Fatalf("unexpected Cache-Control: %q", rec.Header().Get("Cache-Control"))
	}
}

func TestPostPageCarriesMetadata(t *testing.T) {
	srv := newTestRouter(t, map[string]string{"WV_SEO_NEWS_ARTICLE": "true"})
	req := httptest.NewRequest(http.MethodGet, "/posts/latur-rain", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	if got := doc.Find("head title").Text(); got != "Heavy rain in Latur - World Voice" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := testutil.MetaContents(doc, "property", "og:url"); len(got) != 1 || got[0] != "https://worldvoice.in/posts/latur-rain" {
		t.Fatalf("unexpected og:url %v", got)
	}
	scripts := testutil.JSONLD(doc)
	if len(scripts) != 3 {
		t.Fatalf("expected 3 structured data documents, got %d", len(scripts))
	}
	if got := doc.Find("article .entry-body strong").Text(); got != "early" {
		t.Fatalf("expected rendered markdown body, got %q", got)
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, path := range []string{"/nope", "/posts/nope", "/deep/er/path"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Page not found") {
			t.Fatalf("%s: expected not found page", path)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestRouter(t, nil)
	for _, path := range []string{"/", "/about"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, `worldvoice_pages_rendered_total{kind="pages",outcome="ok"} 2`) {
		t.Fatalf("expected page counter in metrics output:\n%s", body)
	}
	if !strings.Contains(body, `worldvoice_structured_data_documents_total{type="Organization"} 2`) {
		t.Fatalf("expected document counter in metrics output:\n%s", body)
	}
}

func TestMetaCommand(t *testing.T) {
	root := newTestSite(t)
	contentDir := filepath.Join(root, "content")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"meta", "latur-rain", "--env-file", "", "--content-dir", contentDir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("meta command failed: %v", err)
	}
	doc := testutil.ParseHTML(t, out.Bytes())
	if got := doc.Find("title").Text(); got != "Heavy rain in Latur - World Voice" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := len(testutil.JSONLD(doc)); got != 2 {
		t.Fatalf("expected 2 documents, got %d", got)
	}

	out.Reset()
	t.Setenv("WV_WIDGET_PRODUCT_ID", "worldvoice.in:openaccess")
	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"meta", "about", "--kind", "pages", "-o", "json", "--env-file", "", "--content-dir", contentDir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("meta command failed: %v", err)
	}
	var resp handlers.MetaResponse
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if resp.Path != "/about" || len(resp.Documents) != 2 {
		t.Fatalf("unexpected json output: %s", out.String())
	}
	if resp.Description != "We report local news." {
		t.Fatalf("expected plain description in json output, got %q", resp.Description)
	}
	if resp.Widget == nil || !strings.Contains(resp.Widget.InitScript, "worldvoice.in:openaccess") {
		t.Fatalf("expected widget in json output: %s", out.String())
	}

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"meta", "missing", "--env-file", "", "--content-dir", contentDir})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing slug")
	}
}
