package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaint-portal/config"
	"complaint-portal/middleware"
	"complaint-portal/routes"
	"complaint-portal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	config.InitLogger()
	services.InitAPIClient()

	if config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())

	trustedProxies := []string{"127.0.0.1", "::1"}
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies: ", err)
	}

	if len(config.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", services.RequestIDHeader},
			ExposeHeaders:    []string{services.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	sessionKey := []byte(config.SessionSecret)
	if len(sessionKey) == 0 {
		log.Fatal("SESSION_SECRET is not configured")
	}
	store := cookie.NewStore(sessionKey)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.SessionMaxAge,
		HttpOnly: true,
		Secure:   config.Environment == "production",
		SameSite: http.SameSiteStrictMode,
	})
	r.Use(sessions.Sessions("complaint_session", store))

	routes.SetupRoutes(r)

	srv := &http.Server{
		Addr:    ":" + config.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		config.Log.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			config.Log.WithError(err).Error("server shutdown error")
		}
	}()

	config.Log.WithField("addr", srv.Addr).Info("server starting")
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed to start: ", err)
	}
}
