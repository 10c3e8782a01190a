package commands

import (
	"context"
	"fmt"
	"time"

	coreerrors "github.com/K0NGR3SS/profilebench/internal/errors"
	"github.com/K0NGR3SS/profilebench/internal/fsx"
	"github.com/K0NGR3SS/profilebench/internal/notifications"
	"github.com/K0NGR3SS/profilebench/internal/report"
	"github.com/K0NGR3SS/profilebench/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	results string
	out     string
	title   string
	stdout  bool
	publish bool
	notify  bool
	timeout time.Duration
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the profile comparison report",
		Long: `Loads the combined results artifact (a local path, s3://bucket/key or gs://bucket/object),
compares the finding sets of every profile per target and writes the markdown report.
A malformed or missing artifact aborts without writing anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.results, "results", "i", "", "Results artifact (default from config)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Report path (default from config)")
	cmd.Flags().StringVar(&opts.title, "title", report.DefaultTitle, "Report title")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Write markdown to stdout instead of the report file")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "Upload the report to storage.publish_to")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Post a summary to the configured Slack webhook")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Timeout for remote reads, uploads and notifications")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	cfg := root.cfg
	logger := root.logger
	results := firstNonEmpty(opts.results, cfg.Results)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	clients := &storageClients{cfg: cfg.Storage, logger: logger}
	defer clients.Close()

	loader, err := clients.loaderFor(ctx, results)
	if err != nil {
		return err
	}
	art, err := loader.Load(ctx, results)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	logger.Info("results loaded", logger.Args("location", art.Location.String(), "records", len(art.Records), "sha256", art.Digest))

	rep := report.Build(art.Records, cfg.ProfileOrder())
	md := report.Markdown(rep, report.Options{
		Title:  opts.title,
		Source: art.Location.String(),
		Digest: art.Digest,
	})

	if opts.stdout {
		if _, err := cmd.OutOrStdout().Write(md); err != nil {
			return coreerrors.Wrap(fmt.Errorf("write stdout: %w", err), coreerrors.CategoryIOFailure, "stdout_write", "")
		}
	} else {
		out := firstNonEmpty(opts.out, cfg.Report)
		if err := fsx.WriteFileAtomic(out, md, 0o644); err != nil {
			return coreerrors.Wrap(fmt.Errorf("write report %s: %w", out, err), coreerrors.CategoryIOFailure, "report_write", "")
		}
		logger.Info("report written", logger.Args("path", out, "targets", len(rep.Groups)))
		ui.PrintComparison(rep)
	}

	if opts.publish {
		if err := publishReport(ctx, clients, cfg.Storage.PublishTo, md); err != nil {
			return err
		}
		logger.Info("report published", logger.Args("location", cfg.Storage.PublishTo))
	}

	if opts.notify {
		if cfg.Slack.WebhookURL == "" {
			return coreerrors.Wrap(fmt.Errorf("--notify needs slack.webhook_url"), coreerrors.CategoryInvalidInput, "no_webhook", "set slack.webhook_url in the config")
		}
		notifier := notifications.NewSlackNotifier(cfg.Slack.WebhookURL, cfg.Slack.Channel)
		if err := notifier.SendReport(ctx, rep, opts.title); err != nil {
			return err
		}
		logger.Info("slack summary sent", logger.Args("channel", cfg.Slack.Channel))
	}

	return nil
}

func publishReport(ctx context.Context, clients *storageClients, location string, md []byte) error {
	if location == "" {
		return coreerrors.Wrap(fmt.Errorf("--publish needs storage.publish_to"), coreerrors.CategoryInvalidInput, "no_publish_location", "set storage.publish_to to an s3:// or gs:// location")
	}
	spinner := ui.StartSpinner(pterm.Sprintf("Publishing report to %s...", location))
	publisher, err := clients.publisherFor(ctx, location)
	if err == nil {
		err = publisher.Publish(ctx, location, md)
	}
	if err != nil {
		ui.StopSpinner(spinner, false, "Publish failed")
		return err
	}
	ui.StopSpinner(spinner, true, "Report published")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
