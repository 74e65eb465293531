package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"

	"github.com/prismaticcrm/teacher-assistant/adapters/http"
	"github.com/prismaticcrm/teacher-assistant/adapters/llm"
	"github.com/prismaticcrm/teacher-assistant/adapters/profile"
	"github.com/prismaticcrm/teacher-assistant/adapters/session"
	"github.com/prismaticcrm/teacher-assistant/adapters/websocket"
	"github.com/prismaticcrm/teacher-assistant/config"
	"github.com/prismaticcrm/teacher-assistant/usecase"
)

func main() {
	gotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	groq := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.CompletionTimeout)
	profiles := profile.NewHTTPFetcher(cfg.ProfileTimeout)
	sessions := session.NewMemoryStore()
	svc := usecase.NewChatService(groq, profiles, sessions, cfg.ProfileBaseURL)

	chatHandler := http.NewChatHandler(svc, profiles)
	wsServer := websocket.NewServer(svc)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
	}))
	e.Use(middleware.BodyLimit("1MB"))

	e.GET("/", chatHandler.Root)
	e.GET("/health", chatHandler.Health)
	e.POST("/chat", chatHandler.Chat)
	e.GET("/instructor/:id", chatHandler.InstructorProfile)
	e.GET("/ws/chat", wsServer.Handler)

	log.Printf("Starting server on :%s", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
