// Command worker runs batch normalize_and_match jobs read from a newline
// delimited file of titles, off the request path cmd/server serves. It
// stands in for the two out-of-scope relational-store batch routines the
// original system ran offline; here it exercises the same engine build
// the HTTP server uses, just driven from a file instead of a request.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/roletitle/matcher/app/config"
	"github.com/roletitle/matcher/app/logging"
	"github.com/roletitle/matcher/app/services"
	"github.com/roletitle/matcher/helpers/utils"
	"github.com/roletitle/matcher/internal/engine"
)

func main() {
	inputPath := flag.String("input", "", "newline-delimited file of raw titles to normalize and match")
	outputPath := flag.String("output", "", "destination file for NDJSON results (defaults to stdout)")
	flag.Parse()

	cfg, err := config.Load("config/rolematch.yaml")
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	jobID := utils.GenerateShortID()
	logger.Info("starting role match worker", zap.String("job_id", jobID))

	eng, err := engine.Build(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build matching engine", zap.Error(err), zap.String("job_id", jobID))
	}

	if *inputPath == "" {
		runIdle(logger, jobID)
		return
	}

	matchService := services.NewRoleMatchService(eng.Facade, logger)
	if err := runBatch(matchService, *inputPath, *outputPath, jobID, logger); err != nil {
		logger.Fatal("batch job failed", zap.Error(err), zap.String("job_id", jobID))
	}

	stats := matchService.Stats()
	logger.Info("batch job complete",
		zap.String("job_id", jobID),
		zap.Uint64("requests", stats.Requests),
		zap.Uint64("exact", stats.Exact),
		zap.Uint64("substring", stats.Substring),
		zap.Uint64("embedding", stats.Embedding),
		zap.Uint64("no_match", stats.NoMatch))
}

// runBatch reads one raw title per line from inputPath, matches each, and
// writes NDJSON results to outputPath (or stdout when empty).
func runBatch(matchService *services.RoleMatchService, inputPath, outputPath, jobID string, logger *zap.Logger) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		title := strings.TrimSpace(scanner.Text())
		if title == "" {
			continue
		}

		response := matchService.NormalizeAndMatch([]string{title}, nil, true)
		record := map[string]interface{}{
			"job_id": jobID,
			"input":  title,
			"result": response[title],
		}
		if err := encoder.Encode(record); err != nil {
			logger.Warn("failed to encode result", zap.Error(err), zap.String("job_id", jobID))
		}
	}
	return scanner.Err()
}

// runIdle keeps the process alive without a batch to run, for deployments
// that start the worker as a long-lived pod waiting on a future queue.
func runIdle(logger *zap.Logger, jobID string) {
	logger.Info("no -input given, idling", zap.String("job_id", jobID))
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("worker exited", zap.String("job_id", jobID))
}
