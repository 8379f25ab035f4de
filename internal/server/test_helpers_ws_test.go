package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// testLogger creates a logger that discards output for tests
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// testConfig returns a config with a fixed seed so equity responses are
// reproducible across runs.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Equity.Seed = 7
	cfg.Equity.Workers = 1
	return cfg
}

func newTestServer(t *testing.T, cfg *Config) (*Server, string) {
	t.Helper()

	service, err := NewService(cfg, testLogger())
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	srv := NewServer(cfg, service, testLogger())
	go srv.run()
	t.Cleanup(func() { _ = srv.Stop() })

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	t.Cleanup(ts.Close)

	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dialTestServer(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, msgType MessageType, data interface{}, requestID string) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal %s data: %v", msgType, err)
	}

	msg := &Message{
		Type:      msgType,
		Data:      payload,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("failed to send %s: %v", msgType, err)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	return &msg
}

func decodeData(t *testing.T, msg *Message, out interface{}) {
	t.Helper()

	if err := json.Unmarshal(msg.Data, out); err != nil {
		t.Fatalf("failed to decode %s data: %v", msg.Type, err)
	}
}
