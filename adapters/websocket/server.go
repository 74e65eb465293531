package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/prismaticcrm/teacher-assistant/usecase"
)

// Server upgrades chat connections and hands them to a Client that
// runs ordinary chat turns over the socket.
type Server struct {
	upgrader websocket.Upgrader
	svc      *usecase.ChatService
}

func NewServer(svc *usecase.ChatService) *Server {
	return &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		svc:      svc,
	}
}

// Handler serves the "/ws/chat" endpoint.
func (s *Server) Handler(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(conn, s.svc)
	client.Run()

	// Wait for the connection to close.
	<-client.Context().Done()

	return nil
}
