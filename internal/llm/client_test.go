package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdfpeek/pdfpeek/internal/config"
	"github.com/pdfpeek/pdfpeek/internal/domain"
)

func testClient(baseURL string) *Client {
	c := NewClient(config.OpenRouterConfig{
		APIKey:      "sk-or-test",
		Model:       "main/model",
		BackupModel: "backup/model",
		Timeout:     5 * time.Second,
		MaxTokens:   100,
	}, zerolog.Nop())
	c.baseURL = baseURL
	c.retry = RetryConfig{MaxRetries: 2, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
	return c
}

func streamBody(chunks ...string) string {
	var b strings.Builder
	for _, chunk := range chunks {
		fmt.Fprintf(&b, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", chunk)
	}
	b.WriteString("data: [DONE]\n")
	return b.String()
}

func TestAnalyzeStreamsContent(t *testing.T) {
	var gotAuth, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		gotModel = req.Model
		if !req.Stream {
			t.Error("request should ask for a streamed response")
		}
		fmt.Fprint(w, streamBody("Hello", " there"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out := make(chan string, 8)
	err := c.Analyze(context.Background(), "main/model", "content", "", out)
	close(out)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var got strings.Builder
	for chunk := range out {
		got.WriteString(chunk)
	}
	if got.String() != "Hello there" {
		t.Errorf("streamed content = %q", got.String())
	}
	if gotAuth != "Bearer sk-or-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotModel != "main/model" {
		t.Errorf("model = %q", gotModel)
	}
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, streamBody("recovered"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out := make(chan string, 8)
	err := c.Analyze(context.Background(), "main/model", "content", "", out)
	close(out)
	if err != nil {
		t.Fatalf("Analyze failed after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d calls, want 3", calls.Load())
	}
}

func TestAnalyzeDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out := make(chan string, 8)
	err := c.Analyze(context.Background(), "main/model", "content", "", out)
	close(out)

	if !domain.IsKind(err, domain.KindAPI) {
		t.Errorf("want an api error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1 (no retry on 400)", calls.Load())
	}
}

func TestAnalyzeGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out := make(chan string, 8)
	err := c.Analyze(context.Background(), "main/model", "content", "", out)
	close(out)

	if !domain.IsKind(err, domain.KindAPI) {
		t.Errorf("want an api error, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d calls, want 3 (initial + 2 retries)", calls.Load())
	}
}

func TestAnalyzeRequiresAPIKey(t *testing.T) {
	c := testClient("http://unused")
	c.cfg.APIKey = ""

	out := make(chan string, 1)
	err := c.Analyze(context.Background(), "main/model", "content", "", out)
	if !domain.IsKind(err, domain.KindConfig) {
		t.Errorf("want a config error, got %v", err)
	}
}

func TestAnalyzeCustomPromptIsSent(t *testing.T) {
	var gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Messages) > 0 {
			gotContent = req.Messages[0].Content
		}
		fmt.Fprint(w, streamBody("ok"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	out := make(chan string, 8)
	err := c.Analyze(context.Background(), "main/model", "the report", "Summarize this document", out)
	close(out)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(gotContent, "Summarize this document\n\n") {
		t.Errorf("custom prompt missing, got %q", gotContent)
	}
	if !strings.Contains(gotContent, "the report") {
		t.Errorf("content missing from message, got %q", gotContent)
	}
}

func TestAnalyzeWithFallbackUsesBackupModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model == "main/model" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, streamBody("backup wins"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got := c.AnalyzeWithFallback(context.Background(), "original report", "", false)

	if !strings.HasPrefix(got, "# AI Analysis (backup/model)\n\n") {
		t.Errorf("missing analysis header: %q", got)
	}
	if !strings.Contains(got, "backup wins") {
		t.Errorf("missing model output: %q", got)
	}
	if !strings.HasSuffix(got, "\n\n---\n\n"+"original report") {
		t.Errorf("original content not appended: %q", got)
	}
}

func TestAnalyzeWithFallbackReturnsContentWhenAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got := c.AnalyzeWithFallback(context.Background(), "original report", "", false)

	if got != "original report" {
		t.Errorf("content should pass through unchanged, got %q", got)
	}
}

func TestAnalyzeWithFallbackBackupOnly(t *testing.T) {
	var models []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		models = append(models, req.Model)
		fmt.Fprint(w, streamBody("ok"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got := c.AnalyzeWithFallback(context.Background(), "report", "", true)

	if len(models) != 1 || models[0] != "backup/model" {
		t.Errorf("models called = %v, want only the backup", models)
	}
	if !strings.HasPrefix(got, "# AI Analysis (backup/model)") {
		t.Errorf("unexpected framing: %q", got)
	}
}
