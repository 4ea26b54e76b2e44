package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"appointment-service/internal/app"
	"appointment-service/internal/server"
)

func main() {
	ctx := context.Background()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("service", "appointment-service")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Error("DATABASE_URL required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Error("failed to connect to db", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	appInstance := &app.App{DB: pool, Logger: logger}
	if err := appInstance.InitSchema(ctx); err != nil {
		logger.Error("failed to init schema", "err", err)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(app.RequestIDMiddleware())
	router.Use(app.AccessLogMiddleware(logger))

	// OAuth2 callback (must be before auth middleware)
	router.GET("/oauth2callback", appInstance.GoogleOAuth2CallbackHandler)

	router.Use(app.AuthMiddlewareFromEnv())

	api := router.Group("/api")
	{
		api.GET("/slots", appInstance.GetTimeSlotsHandler)

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appInstance.ListAppointmentsHandler)
			appointments.POST("", appInstance.CreateAppointmentHandler)
			appointments.PUT("/:id", appInstance.UpdateAppointmentHandler)
			appointments.DELETE("/:id", appInstance.DeleteAppointmentHandler)
			appointments.DELETE("", appInstance.ClearAllAppointmentsHandler)
		}

		days := api.Group("/days")
		{
			days.GET("", appInstance.GetDayMapHandler)
			days.DELETE("/:day", appInstance.ClearDayHandler)
			days.POST("/:day/apply", appInstance.ApplyDayHandler)
		}

		api.DELETE("/archive/done", appInstance.ClearDoneAppointmentsHandler)

		calendar := api.Group("/calendar")
		{
			calendar.GET("/auth", appInstance.GoogleAuthHandler)
			calendar.GET("/events", appInstance.GetGoogleCalendarEvents)
			calendar.POST("/export", appInstance.ExportAppointmentsHandler)
		}
	}

	server.Run(router)
}
