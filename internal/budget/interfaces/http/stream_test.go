package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	budget "fleetdesk/internal/budget/domain"
)

func TestSSEBrokerFanOut(t *testing.T) {
	broker := NewSSEBroker()
	first := broker.Subscribe()
	second := broker.Subscribe()
	defer broker.Unsubscribe(first)
	defer broker.Unsubscribe(second)

	alert := budget.Alert{ID: "budget_warning-1", Type: budget.AlertBudgetWarning, Severity: budget.SeverityMedium}
	broker.Notify(context.Background(), []budget.Alert{alert})

	for name, ch := range map[string]chan []byte{"first": first, "second": second} {
		select {
		case payload := <-ch:
			if !strings.Contains(string(payload), alert.ID) {
				t.Errorf("%s payload = %s", name, payload)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s client received nothing", name)
		}
	}
}

func TestSSEBrokerNilAlertsBroadcastEmptyList(t *testing.T) {
	broker := NewSSEBroker()
	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	broker.Notify(context.Background(), nil)

	select {
	case payload := <-ch:
		if string(payload) != "[]" {
			t.Errorf("payload = %s, want []", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("client received nothing")
	}
}

func TestSSEBrokerUnsubscribedClientSkipped(t *testing.T) {
	broker := NewSSEBroker()
	ch := broker.Subscribe()
	broker.Unsubscribe(ch)

	broker.Notify(context.Background(), []budget.Alert{{ID: "a"}})

	select {
	case payload := <-ch:
		t.Fatalf("unsubscribed client received %s", payload)
	default:
	}
}

type syncRecorder struct {
	mu     sync.Mutex
	header http.Header
	body   strings.Builder
	code   int
}

func newSyncRecorder() *syncRecorder {
	return &syncRecorder{header: make(http.Header), code: 200}
}

func (r *syncRecorder) Header() http.Header { return r.header }

func (r *syncRecorder) WriteHeader(code int) { r.code = code }

func (r *syncRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.Write(p)
}

func (r *syncRecorder) Flush() {}

func (r *syncRecorder) bodyString() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body.String()
}

func TestStreamHandlerEmitsEvents(t *testing.T) {
	broker := NewSSEBroker()
	handler := NewStreamHandler(broker)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/v1/dashboard/alerts/stream", nil).WithContext(ctx)
	rec := newSyncRecorder()

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the subscription before notifying.
	deadline := time.Now().Add(time.Second)
	for {
		broker.mu.Lock()
		subscribed := len(broker.clients) == 1
		broker.mu.Unlock()
		if subscribed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(time.Millisecond)
	}

	broker.Notify(context.Background(), []budget.Alert{{ID: "budget_exceeded-1", Type: budget.AlertBudgetExceeded, Severity: budget.SeverityCritical}})

	deadline = time.Now().Add(time.Second)
	for !strings.Contains(rec.bodyString(), "budget_exceeded-1") {
		if time.Now().After(deadline) {
			t.Fatalf("event never written, body: %q", rec.bodyString())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not stop on context cancel")
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("content type = %q", got)
	}
	if !strings.Contains(rec.bodyString(), "event: ready") {
		t.Error("missing ready preamble")
	}
}

func TestStreamHandlerRejectsPost(t *testing.T) {
	handler := NewStreamHandler(NewSSEBroker())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/dashboard/alerts/stream", nil))
	if rec.Code != 405 {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
