package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/prismaticcrm/teacher-assistant/adapters/session"
	"github.com/prismaticcrm/teacher-assistant/domain"
	"github.com/prismaticcrm/teacher-assistant/usecase"
)

type stubFetcher struct{ doc json.RawMessage }

func (f *stubFetcher) Fetch(ctx context.Context, url string) (json.RawMessage, error) {
	return f.doc, nil
}

type stubLlm struct{ reply string }

func (l *stubLlm) Complete(ctx context.Context, history []domain.ChatMessage) (domain.ChatMessage, error) {
	return domain.ChatMessage{Role: domain.AssistantRole, Content: l.reply}, nil
}

func dialTestServer(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	svc := usecase.NewChatService(
		&stubLlm{reply: "Biology, per the profile."},
		&stubFetcher{doc: json.RawMessage(`{"subject":"Biology"}`)},
		session.NewMemoryStore(),
		"https://ace.prismaticcrm.com",
	)

	e := echo.New()
	e.GET("/ws/chat", NewServer(svc).Handler)

	server := httptest.NewServer(e)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial: %v", err)
	}

	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func TestChatOverWebsocket(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	if err := conn.WriteJSON(usecase.ChatRequest{Message: "what do I teach?", InstructorID: 7}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame replyFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}

	if frame.Error != "" {
		t.Fatalf("unexpected error frame: %+v", frame)
	}
	if frame.Response != "Biology, per the profile." {
		t.Errorf("unexpected response: %q", frame.Response)
	}
}

func TestWebsocketErrorFrameForInvalidRequest(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	// Missing both profile_url and instructor_id.
	if err := conn.WriteJSON(usecase.ChatRequest{Message: "hello"}); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame replyFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}

	if frame.Code != http.StatusBadRequest {
		t.Errorf("expected code 400, got %d", frame.Code)
	}
	if frame.Error == "" {
		t.Error("expected an error message in the frame")
	}
}

func TestWebsocketMalformedFrame(t *testing.T) {
	conn, cleanup := dialTestServer(t)
	defer cleanup()

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var frame replyFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Code != http.StatusBadRequest {
		t.Errorf("expected code 400, got %d", frame.Code)
	}
}
