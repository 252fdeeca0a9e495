package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/BF667/bfrvc/internal/archive"
	"github.com/BF667/bfrvc/internal/cli"
	"github.com/BF667/bfrvc/internal/config"
	"github.com/BF667/bfrvc/internal/env"
	"github.com/BF667/bfrvc/internal/envvar"
	"github.com/BF667/bfrvc/internal/fetch"
	"github.com/BF667/bfrvc/internal/logger"
	"github.com/BF667/bfrvc/internal/model"
	"github.com/BF667/bfrvc/internal/xfs"

	httplocal "github.com/BF667/bfrvc/internal/http"
)

// Exit codes by failure class.
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidSource  = 2
	ExitDownloadFailed = 3
	ExitNoArchive      = 4
	ExitExtractFailed  = 5
)

func main() {
	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile(filepath.Join(basePath(), "logs", "bfrvc.log")),
		),
	)

	// trap Ctrl+C and call cancel on the context
	ctx, cancel := context.WithCancel(context.Background())
	breakChannel := make(chan os.Signal, 1)
	signal.Notify(breakChannel, os.Interrupt)

	defer func() {
		signal.Stop(breakChannel)
		cancel()
	}()

	go func() {
		select {
		case <-breakChannel:
			cancel()
		case <-ctx.Done():
			return
		}
	}()

	if err := cli.NewCommand().ExecuteContext(ctx); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// basePath resolves the base directory before flags are parsed, honoring
// the same environment override the config layer applies, so the log
// file lands next to the staged archives.
func basePath() string {
	if p := os.Getenv(envvar.BfrvcBasePath); p != "" {
		return xfs.ExpandTilde(p)
	}
	return config.DefaultBasePath()
}

func exitCodeFromError(err error) int {
	var downloadErr *httplocal.DownloadError

	switch {
	case errors.Is(err, fetch.ErrInvalidSource):
		return ExitInvalidSource
	case errors.As(err, &downloadErr):
		return ExitDownloadFailed
	case errors.Is(err, fetch.ErrNoArchive), errors.Is(err, model.ErrNoZipFound):
		return ExitNoArchive
	case errors.Is(err, archive.ErrExtract):
		return ExitExtractFailed
	default:
		return ExitGeneralError
	}
}
