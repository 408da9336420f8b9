package main

import (
	"context"

	"meety/cmd/internal/app"
	"meety/cmd/internal/config"
	"meety/cmd/internal/routes"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to initialize services", err)
	}

	// Getting routes
	r := &routes.Routes{
		Meetings:  routes.NewMeetingDefault(application.Meetings, cfg.OperatorSecret),
		Booking:   routes.NewLexDefault(application.Dialogue),
		Assistant: routes.NewLexDefault(application.Assistant),
	}
	if application.Chat != nil {
		r.Chat = routes.NewChatDefault(application.Chat)
	}

	e := echo.New()
	routes.Register(e, r)

	err = e.Start(":" + cfg.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}
