package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	twempest "github.com/alnah/go-twempest"
	"github.com/alnah/go-twempest/internal/assets"
	"github.com/alnah/go-twempest/internal/config"
	"github.com/alnah/go-twempest/internal/hints"
	"github.com/alnah/go-twempest/internal/logging"
	"github.com/alnah/go-twempest/internal/timeline"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrSinceIDRequired = errors.New("--since-id is required")
	ErrSkipPattern     = errors.New("syntax problem with --skip regular expression")
	ErrWriteLastID     = errors.New("unable to write last post ID file")
	ErrReadReplay      = errors.New("unable to read replay file")
)

// runMain parses args, runs the command and returns the process exit code.
func runMain(args []string, deps *Dependencies) int {
	if len(args) > 0 {
		args = args[1:]
	}

	flags, positional, err := parseFlags(args, deps.Stderr)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n\n", err)
		printUsage(deps.Stderr)
		return ExitUsage
	}

	if flags.common.help {
		printUsage(deps.Stdout)
		return ExitSuccess
	}
	if flags.common.version {
		printVersion(deps.Stdout)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, flags, positional, deps); err != nil {
		fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run loads the configuration, resolves options and the template, then
// retrieves and renders posts.
func run(ctx context.Context, flags *cliFlags, positional []string, deps *Dependencies) error {
	if len(positional) != 1 {
		return fmt.Errorf("%w: expected exactly one template name or file, got %d", ErrUsage, len(positional))
	}

	useColor := !flags.common.noColor && twempest.IsTerminal(deps.Stderr)
	report := twempest.NewReporter(deps.Stdout, deps.Stderr, useColor)
	if flags.common.quiet {
		report = quietReporter(report)
	}
	logger := logging.New(deps.Stderr, logging.LevelFromFlags(flags.common.quiet, flags.common.verbose), !useColor)

	// Configuration
	dir, searched, err := config.ChooseDir(flags.common.configPath)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.FileName, searched))
	}
	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			return fmt.Errorf("%w%s", err, hints.ForMissingCredential())
		}
		return err
	}
	logger.Debug("loaded config", "path", cfg.Path)

	opts := mergeOptions(flags, cfg.Twempest, cfg.Path)
	skip, err := compileSkip(opts.Skip)
	if err != nil {
		return err
	}
	renderOpts := opts.renderOptions(skip)
	if err := renderOpts.Validate(); err != nil {
		if errors.Is(err, twempest.ErrInvalidCount) {
			return err
		}
		return fmt.Errorf("%w%s", err, hints.ForImageOptions())
	}

	if opts.Replay == "" {
		if opts.SinceID, err = resolveSinceID(opts.SinceID, dir, cfg.Twitter.ConsumerKey); err != nil {
			return err
		}
	}

	// Template: a file path, a custom template in the config directory, or a built-in.
	resolver, err := assets.NewResolver(dir)
	if err != nil {
		return err
	}
	templateText, err := resolver.Resolve(positional[0])
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(resolver.Names()))
		}
		return err
	}

	if opts.DryRun {
		printDryRun(deps.Stdout, opts, templateText)
		return nil
	}

	renderer, err := twempest.NewRenderer(renderOpts, templateText,
		twempest.WithReporter(report),
		twempest.WithStdout(deps.Stdout),
		twempest.WithLocation(deps.Location),
		twempest.WithLogger(logger),
		twempest.WithDownloader(deps.Download),
	)
	if err != nil {
		return err
	}

	posts, err := retrievePosts(ctx, opts, cfg, deps, logger)
	if err != nil {
		return err
	}

	result, err := renderer.Render(ctx, timeline.Posts(posts))
	if err != nil {
		return err
	}
	logger.Debug("render finished", "rendered", result.Rendered, "last_id", result.LastID)

	// A replayed batch says nothing about what the account has published since.
	if result.HasLastID() && opts.Replay == "" {
		if err := config.WriteLastID(dir, cfg.Twitter.ConsumerKey, result.LastID); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteLastID, err)
		}
	}
	return nil
}

// resolveSinceID returns the flag or config value, falling back to the ID
// recorded by the previous run.
func resolveSinceID(sinceID int64, dir, consumerKey string) (int64, error) {
	if sinceID > 0 {
		return sinceID, nil
	}
	id, err := config.ReadLastID(dir, consumerKey)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: no post ID recorded in '%s' by a previous run%s", ErrSinceIDRequired, dir, hints.ForSinceID())
	}
	return id, nil
}

// retrievePosts reads the replay file or queries the timeline.
func retrievePosts(ctx context.Context, opts runOptions, cfg *config.Config, deps *Dependencies, logger *slog.Logger) ([]*twempest.Post, error) {
	if opts.Replay != "" {
		posts, err := twempest.ReadBatch(opts.Replay)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadReplay, err)
		}
		logger.Debug("replaying batch", "path", opts.Replay, "posts", len(posts))
		return posts, nil
	}

	client := deps.NewTimeline(timeline.Credentials{
		ConsumerKey:       cfg.Twitter.ConsumerKey,
		ConsumerSecret:    cfg.Twitter.ConsumerSecret,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
	}, logger)

	posts, err := client.UserTimeline(ctx, opts.SinceID, opts.Retweets)
	if err != nil {
		var apiErr *timeline.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w%s", err, hints.ForRetrieval(apiErr.Status))
		}
		return nil, err
	}
	logger.Debug("retrieved posts", "posts", len(posts), "since_id", opts.SinceID)
	return posts, nil
}

// quietReporter drops info messages and keeps warnings.
func quietReporter(report twempest.ReportFunc) twempest.ReportFunc {
	return func(message string, warning bool) {
		if warning {
			report(message, warning)
		}
	}
}
