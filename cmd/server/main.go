package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ecom-labs/product-api/internal/auth"
	"github.com/ecom-labs/product-api/internal/config"
	"github.com/ecom-labs/product-api/internal/events"
	"github.com/ecom-labs/product-api/internal/httpserver"
	"github.com/ecom-labs/product-api/internal/logging"
	"github.com/ecom-labs/product-api/internal/middleware"
	"github.com/ecom-labs/product-api/internal/repo"
	"github.com/ecom-labs/product-api/internal/seed"
	"github.com/ecom-labs/product-api/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	if err := seed.Ensure(db, cfg.SeedCount); err != nil {
		log.Fatalf("seed error: %v", err)
	}

	var verifier auth.TokenVerifier
	switch cfg.AuthMode {
	case config.AuthModeOIDC:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		verifier, err = auth.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			log.Fatalf("OIDC verifier init error: %v", err)
		}
	default:
		verifier = &auth.LocalVerifier{Secret: cfg.JWTSecret}
	}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	}

	catalogSvc := &service.CatalogService{Repo: &repo.GormRepo{DB: db}}

	deps := &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer},
		AuthHandler: &httpserver.AuthHTTP{
			Issuer: &auth.Issuer{
				Secret:            cfg.JWTSecret,
				AdminUsername:     cfg.AdminUsername,
				AdminPassword:     cfg.AdminPassword,
				AdminPasswordHash: cfg.AdminPasswordHash,
			},
			IDP: &auth.IDPClient{
				Domain:       cfg.IDPDomain,
				ClientID:     cfg.IDPClientID,
				ClientSecret: cfg.IDPClientSecret,
				Scope:        cfg.IDPScope,
				RedirectURI:  cfg.IDPRedirectURI,
			},
		},
		Verifier:   verifier,
		LocalLogin: cfg.AuthMode == config.AuthModeLocal,
	}

	e := echo.New()
	e.HideBanner = true
	for _, m := range middleware.Common() {
		e.Use(m)
	}
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
