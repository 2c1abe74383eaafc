package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SirSluginston/SirSluginston-Backend/internal/db"
	"github.com/SirSluginston/SirSluginston-Backend/internal/logging"
	"github.com/SirSluginston/SirSluginston-Backend/internal/sitesync"
)

type options struct {
	endpoint string
	jsPath   string
	jsonPath string
	bucket   string
	prefix   string
	topicArn string
	verbose  bool
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "update-local-config",
		Short: "Fetch the site config from the API and write projects-config.js/.json",
		Long: `Fetches the full project/page listing from the config API, merges each
project's project-config record into the project, and writes the result as an
ES module and as plain JSON for the static site.

With no flags it uses the built-in endpoint and paths; CONFIG_API_ENDPOINT,
OUTPUT_JS_PATH, OUTPUT_JSON_PATH, CONFIG_S3_BUCKET, CONFIG_S3_PREFIX and
CONFIG_SYNC_TOPIC_ARN (environment or .env) override the defaults.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", envOr("CONFIG_API_ENDPOINT", sitesync.DefaultEndpoint), "config API URL")
	f.StringVar(&opts.jsPath, "js-out", envOr("OUTPUT_JS_PATH", sitesync.DefaultJSPath), "ES module output path")
	f.StringVar(&opts.jsonPath, "json-out", envOr("OUTPUT_JSON_PATH", sitesync.DefaultJSONPath), "JSON output path")
	f.StringVar(&opts.bucket, "s3-bucket", envOr("CONFIG_S3_BUCKET", ""), "also upload artifacts to this bucket")
	f.StringVar(&opts.prefix, "s3-prefix", envOr("CONFIG_S3_PREFIX", ""), "key prefix for uploaded artifacts")
	f.StringVar(&opts.topicArn, "notify-topic-arn", envOr("CONFIG_SYNC_TOPIC_ARN", ""), "SNS topic to notify after a successful run")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging, including the raw API response")
	return cmd
}

func run(ctx context.Context, opts options) error {
	logger, err := logging.New("update-local-config", opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var (
		extra    []sitesync.Sink
		notifier *sitesync.Notifier
	)
	if opts.bucket != "" || opts.topicArn != "" {
		cfg, err := db.LoadAWSConfig(ctx)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		if opts.bucket != "" {
			extra = append(extra, sitesync.S3Sink{Client: s3.NewFromConfig(cfg), Bucket: opts.bucket, Prefix: opts.prefix})
		}
		if opts.topicArn != "" {
			notifier = &sitesync.Notifier{Client: sns.NewFromConfig(cfg), TopicArn: opts.topicArn}
		}
	}

	s := sitesync.NewSyncer(sitesync.Config{
		Endpoint: opts.endpoint,
		JSPath:   opts.jsPath,
		JSONPath: opts.jsonPath,
	}, sitesync.NewHTTPClient(), extra, notifier, logger)

	if _, err := s.Run(ctx); err != nil {
		logger.Error("sync failed", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error updating local config:", err)
		os.Exit(1)
	}
}
