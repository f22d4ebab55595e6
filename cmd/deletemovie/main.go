// Command deletemovie is the Lambda function serving DELETE /movies/{movieId}.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jacentio/movies/handler"
	"github.com/jacentio/movies/internal/config"
	"github.com/jacentio/movies/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stdout)

	client, err := store.NewClient(context.Background(), cfg.ClientOptions())
	if err != nil {
		logger.Error("failed to create dynamodb client", "error", err)
		os.Exit(1)
	}

	h := handler.NewHandler(store.New(client, cfg.StoreConfig()), handler.Options{}, logger)
	lambda.Start(h.DeleteMovie)
}
