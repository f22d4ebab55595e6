// Command localapi serves both movie handlers over HTTP for local development.
//
// Against DynamoDB Local:
//
//	TABLE_NAME=movies MOVIECAST_TABLE_NAME=movie-cast \
//	DYNAMODB_ENDPOINT=http://localhost:8000 go run ./cmd/localapi
//
// With -memory the tables live in process and are seeded with sample rows.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jacentio/movies/handler"
	"github.com/jacentio/movies/internal/config"
	"github.com/jacentio/movies/internal/localgw"
	"github.com/jacentio/movies/internal/memddb"
	"github.com/jacentio/movies/store"
)

func main() {
	memory := flag.Bool("memory", false, "use seeded in-memory tables instead of DynamoDB")
	flag.Parse()

	if *memory {
		setDefaultEnv("TABLE_NAME", "movies")
		setDefaultEnv("MOVIECAST_TABLE_NAME", "movie-cast")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)
	ctx := context.Background()

	var client store.DynamoDBAPI
	if *memory {
		client, err = seededMemory(ctx, cfg.StoreConfig())
	} else {
		client, err = store.NewClient(ctx, cfg.ClientOptions())
	}
	if err != nil {
		logger.Error("failed to create dynamodb client", "error", err)
		os.Exit(1)
	}

	h := handler.NewHandler(
		store.New(client, cfg.StoreConfig()),
		handler.Options{ExposeErrorDetails: cfg.ExposeErrorDetails},
		logger,
	)
	srv := &http.Server{
		Addr:              cfg.LocalAddr,
		Handler:           localgw.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting local api", "address", cfg.LocalAddr, "memory", *memory)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func setDefaultEnv(key, value string) {
	if os.Getenv(key) == "" {
		os.Setenv(key, value)
	}
}

// seededMemory returns in-memory tables holding a couple of movies and cast rows.
func seededMemory(ctx context.Context, cfg store.Config) (*memddb.Client, error) {
	client := memddb.New()
	client.CreateTable(cfg.MovieTable, "id", "")
	client.CreateTable(cfg.CastTable, "movieId", "actorName")

	s := store.New(client, cfg)
	movies := []store.Record{
		{"id": 1234, "title": "The Shawshank Redemption", "release_date": "1994-09-23", "vote_average": 8.7},
		{"id": 2345, "title": "Spirited Away", "release_date": "2001-07-20", "vote_average": 8.5},
	}
	cast := []store.Record{
		{"movieId": 1234, "actorName": "Tim Robbins", "roleName": "Andy Dufresne"},
		{"movieId": 1234, "actorName": "Morgan Freeman", "roleName": "Ellis Boyd 'Red' Redding"},
	}
	for _, m := range movies {
		if err := s.Put(ctx, cfg.MovieTable, m); err != nil {
			return nil, err
		}
	}
	for _, c := range cast {
		if err := s.Put(ctx, cfg.CastTable, c); err != nil {
			return nil, err
		}
	}
	return client, nil
}
