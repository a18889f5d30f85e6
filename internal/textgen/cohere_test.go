package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestCohereComplete(t *testing.T) {
	var got generateRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generations":[{"text":"  [{\"insight_text\":\"a\"}]  "}]}`))
	}))
	defer srv.Close()

	c := NewCohere("secret", srv.URL+"/", "command")
	out, err := c.Complete(context.Background(), "analyze", 1000, 0.3)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != `[{"insight_text":"a"}]` {
		t.Errorf("Complete() = %q", out)
	}
	if auth != "Bearer secret" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.Prompt != "analyze" || got.MaxTokens != 1000 || got.Temperature != 0.3 || got.Model != "command" {
		t.Errorf("request = %+v", got)
	}
}

func TestCohereCompleteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"upstream"}`))
	}))
	defer srv.Close()

	c := NewCohere("secret", srv.URL, "")
	_, err := c.Complete(context.Background(), "p", 10, 0)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusBadGateway || !se.Temporary() {
		t.Errorf("StatusError = %+v", se)
	}
}

func TestCohereCompleteEmptyGenerations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"generations":[]}`))
	}))
	defer srv.Close()

	c := NewCohere("secret", srv.URL, "")
	if _, err := c.Complete(context.Background(), "p", 10, 0); !errors.Is(err, ErrEmptyCompletion) {
		t.Errorf("err = %v, want ErrEmptyCompletion", err)
	}
}

func TestCohereCompleteWithoutKey(t *testing.T) {
	c := NewCohere("", "http://127.0.0.1:1", "")
	if _, err := c.Complete(context.Background(), "p", 10, 0); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestRetryingCohereMalformedBodyNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var delays []time.Duration
	r := NewRetrying(NewCohere("secret", srv.URL, ""), time.Second, 3, time.Millisecond, time.Second)
	r.sleep = noSleep(&delays)

	if _, err := r.Complete(context.Background(), "p", 10, 0); !errors.Is(err, ErrBadResponse) {
		t.Fatalf("err = %v, want ErrBadResponse", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("calls = %d, want 1", n)
	}
	if len(delays) != 0 {
		t.Errorf("delays = %v, want none", delays)
	}
}
