package preview

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() = %v", err)
		}
	})
	return srv, ts
}

func do(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func TestToastAPI(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := do(t, "POST", ts.URL+"/toasts", `{"id": "a", "title": "Saved", "duration": "infinite"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", resp.StatusCode, body)
	}
	var created map[string]string
	if err := json.Unmarshal([]byte(body), &created); err != nil || created["id"] != "a" {
		t.Fatalf("POST body = %s", body)
	}

	_, body = do(t, "GET", ts.URL+"/toasts", "")
	var list []ToastState
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "a" || list[0].Category != "default" {
		t.Fatalf("list = %+v", list)
	}

	resp, _ = do(t, "PATCH", ts.URL+"/toasts/a", `{"title": "Updated", "category": "success"}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("PATCH status = %d", resp.StatusCode)
	}
	_, html := do(t, "GET", ts.URL+"/toaster", "")
	if !strings.Contains(html, "Updated") || !strings.Contains(html, `data-type="success"`) {
		t.Errorf("fragment = %s", html)
	}

	resp, _ = do(t, "PATCH", ts.URL+"/toasts/missing", `{"title": "x"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("PATCH missing status = %d", resp.StatusCode)
	}

	resp, _ = do(t, "DELETE", ts.URL+"/toasts/a", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	resp, _ = do(t, "DELETE", ts.URL+"/toasts/missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("DELETE missing status = %d", resp.StatusCode)
	}

	resp, _ = do(t, "DELETE", ts.URL+"/toasts", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE all status = %d", resp.StatusCode)
	}
}

func TestCreateValidation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"title": `},
		{"bad position", `{"title": "a", "position": "middle"}`},
		{"bad duration", `{"title": "a", "duration": "soon"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, "POST", ts.URL+"/toasts", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if !strings.Contains(body, `"error"`) {
				t.Errorf("body = %s", body)
			}
		})
	}
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "POST", ts.URL+"/toasts", `{"title": "Hello"}`)

	resp, body := do(t, "GET", ts.URL+"/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{"<!DOCTYPE html>", `id="toaster-root"`, "data-sonner-toaster", "Hello", "new WebSocket"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	resp, body = do(t, "GET", ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	do(t, "POST", ts.URL+"/toasts", `{"title": "Counted"}`)

	_, body := do(t, "GET", ts.URL+"/metrics", "")
	for _, want := range []string{
		"toaster_store_events_total",
		`toaster_http_requests_total{method="POST",route="/toasts`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s:\n%s", want, body)
		}
	}
}

func TestWebSocket(t *testing.T) {
	srv, ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for srv.Hub().ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	read := func(want string) Message {
		t.Helper()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				t.Fatalf("waiting for %q: %v", want, err)
			}
			if msg.Type == want {
				return msg
			}
		}
	}

	do(t, "POST", ts.URL+"/toasts", `{"id": "w", "title": "Streamed", "duration": "infinite"}`)
	msg := read("added")
	if msg.ID != "w" || !strings.Contains(msg.HTML, "Streamed") {
		t.Errorf("added = %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "hover", Value: true}); err != nil {
		t.Fatal(err)
	}
	if msg := read("hover"); !strings.Contains(msg.HTML, `data-expanded="true"`) {
		t.Errorf("hover html = %s", msg.HTML)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "close", ID: "w"}); err != nil {
		t.Fatal(err)
	}
	if msg := read("closed"); msg.ID != "w" || msg.Reason != "close" {
		t.Errorf("closed = %+v", msg)
	}
}
