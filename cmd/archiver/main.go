// Command archiver snapshots the open-event catalog to S3, one gzip NDJSON
// object per hour. Run with -once for a single snapshot or without flags for
// the hourly loop.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"github.com/OldEphraim/polymarket-market-finder/archiver"
	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/config"
)

func main() {
	once := flag.Bool("once", false, "archive the current hour and exit")
	prefix := flag.String("prefix", "snapshots", "key prefix inside the bucket")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	bucket := os.Getenv("ARCHIVE_S3_BUCKET")
	if bucket == "" {
		logger.Error("ARCHIVE_S3_BUCKET is required")
		os.Exit(1)
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	loader := config.NewLoader()
	cfg, err := loader.Load("finder.json")
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	loader.LoadFromEnv(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error("aws config failed", "err", err)
		os.Exit(1)
	}
	s3c := s3.NewFromConfig(awsCfg)

	runner := &archiver.Runner{
		Gamma:      clients.NewGammaAPIWithBase(cfg.BaseURL),
		Sink:       archiver.NewS3Sink(s3c, manager.NewUploader(s3c), bucket),
		Prefix:     *prefix,
		BatchLimit: cfg.BulkFetchLimit,
		Log:        logger,
	}

	if *once {
		if _, err := runner.RunOnce(ctx, time.Now()); err != nil {
			logger.Error("snapshot failed", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("archiver starting", "bucket", bucket, "prefix", *prefix)
	for {
		if _, err := runner.RunOnce(ctx, time.Now()); err != nil {
			logger.Error("snapshot failed", "err", err)
		}
		if !sleepOrDone(ctx, time.Until(nextHour(time.Now()))) {
			return
		}
	}
}

// nextHour returns the start of the hour after t, plus a small delay so the
// listing reflects the new hour.
func nextHour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour).Add(time.Hour + 10*time.Second)
}

func sleepOrDone(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		d = time.Second
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
