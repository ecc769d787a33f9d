//go:build !integration

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Abdelmagid1892/translation-office-app/internal/domain/model"
)

func TestWebsocketPush(t *testing.T) {
	job := testJob("j-1", "client-1", model.JobStateAssigned)
	f := newWebFixture(t, job)
	client := f.token(t, testUser("client-1", "alice", model.RoleClient))

	ts := httptest.NewServer(f.router)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/v1/ws/jobs/j-1"
	header := http.Header{"Authorization": {"Bearer " + client}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v (resp=%v)", err, resp)
	}
	defer conn.Close()

	msg := &model.ChatMessage{
		ID:         "msg-1",
		JobID:      "j-1",
		SenderID:   "client-1",
		SenderName: "alice",
		SenderRole: model.RoleClient,
		Body:       "any update?",
		Seq:        1,
		CreatedAt:  time.Now(),
	}
	f.srv.hub.Broadcast("j-1", msg)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var view messageView
	if err := conn.ReadJSON(&view); err != nil {
		t.Fatalf("read pushed message: %v", err)
	}
	if view.Seq != 1 || view.Body != "any update?" {
		t.Errorf("pushed message = %+v", view)
	}
}

func TestWebsocketAccessDenied(t *testing.T) {
	job := testJob("j-1", "client-1", model.JobStateAssigned)
	f := newWebFixture(t, job)
	stranger := f.token(t, testUser("client-2", "mallory", model.RoleClient))

	ts := httptest.NewServer(f.router)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/v1/ws/jobs/j-1"
	header := http.Header{"Authorization": {"Bearer " + stranger}}

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("expected the handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 handshake response, got %+v", resp)
	}
}

func TestWebsocketConcurrentBroadcasts(t *testing.T) {
	job := testJob("j-1", "client-1", model.JobStateAssigned)
	f := newWebFixture(t, job)
	client := f.token(t, testUser("client-1", "alice", model.RoleClient))

	ts := httptest.NewServer(f.router)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/v1/ws/jobs/j-1"
	header := http.Header{"Authorization": {"Bearer " + client}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Appends on the same job can fan out from separate goroutines once
	// their rows are durable, so pushes to one subscriber must serialize.
	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(seq int64) {
			defer wg.Done()
			f.srv.hub.Broadcast("j-1", &model.ChatMessage{
				ID:    "m",
				JobID: "j-1",
				Body:  "update",
				Seq:   seq,
			})
		}(int64(i + 1))
	}
	wg.Wait()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	seen := make(map[int64]bool)
	for i := 0; i < writers; i++ {
		var view messageView
		if err := conn.ReadJSON(&view); err != nil {
			t.Fatalf("read pushed message %d: %v", i, err)
		}
		seen[view.Seq] = true
	}
	if len(seen) != writers {
		t.Errorf("got %d distinct messages, want %d", len(seen), writers)
	}
}

func TestHubDropsDeadSubscribers(t *testing.T) {
	logger := newTestLogger()
	hub := NewHub(logger)

	job := testJob("j-1", "client-1", model.JobStateAssigned)
	f := newWebFixture(t, job)
	f.srv.hub = hub
	client := f.token(t, testUser("client-1", "alice", model.RoleClient))

	ts := httptest.NewServer(f.router)
	defer ts.Close()

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/api/v1/ws/jobs/j-1"
	header := http.Header{"Authorization": {"Bearer " + client}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	// The write to a closed socket must evict the subscriber, not wedge.
	hub.Broadcast("j-1", &model.ChatMessage{ID: "m", JobID: "j-1", Seq: 1})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		n := len(hub.conns["j-1"])
		hub.mu.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("dead subscriber was not evicted")
}