package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/rssfetcher/pkg/config"
	"github.com/umputun/rssfetcher/pkg/domain"
	"github.com/umputun/rssfetcher/pkg/feed"
	"github.com/umputun/rssfetcher/pkg/fetcher"
	"github.com/umputun/rssfetcher/pkg/importer"
	"github.com/umputun/rssfetcher/pkg/queue"
	"github.com/umputun/rssfetcher/pkg/repository"
	"github.com/umputun/rssfetcher/pkg/schedule"
	"github.com/umputun/rssfetcher/pkg/scheduler"
	"github.com/umputun/rssfetcher/pkg/telemetry"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`

	Import    string `long:"import" value-name:"FILE" description:"replace all feeds with rows of a CSV file (.csv or .csv.gz)"`
	FetchSoon int64  `long:"fetch-soon" value-name:"SOURCE_ID" description:"reschedule feeds of the source to be fetched soon"`
	FetchFeed int64  `long:"fetch-feed" value-name:"FEED_ID" description:"fetch a single feed now and exit"`
	Once      bool   `long:"once" description:"fetch all due feeds once and exit"`
	Report    bool   `long:"report" description:"print feed and story counts and exit"`
	Stories   int64  `long:"stories" value-name:"FEED_ID" description:"print latest stories of a feed and exit"`
	Enable    int64  `long:"enable" value-name:"FEED_ID" description:"enable a feed and exit"`
	Disable   int64  `long:"disable" value-name:"FEED_ID" description:"disable a feed and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting rssfetcher version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and executes the mode selected by options.
// Without a mode option it runs the dispatch driver until ctx is canceled.
func run(ctx context.Context, opts Opts, out io.Writer) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	policy := schedule.NewPolicy(schedule.Config{
		DefaultInterval: cfg.Schedule.DefaultInterval(),
		SoonHorizon:     cfg.Schedule.SoonHorizon(),
		BucketWidth:     cfg.Schedule.SoonBucket(),
	})

	if opts.Import != "" {
		count, err := importer.New(repos.Feed, policy).ImportFile(ctx, opts.Import)
		if err != nil {
			return fmt.Errorf("failed to import feeds: %w", err)
		}
		log.Printf("[INFO] imported %d feeds from %s", count, opts.Import)
		return nil
	}

	switch {
	case opts.Report:
		return printReport(ctx, repos, out)
	case opts.Stories != 0:
		return printStories(ctx, repos.Story, opts.Stories, out)
	case opts.Enable != 0:
		return setActive(ctx, repos.Feed, opts.Enable, true, out)
	case opts.Disable != 0:
		return setActive(ctx, repos.Feed, opts.Disable, false, out)
	}

	reporter := telemetry.NewReporter(lgr.Std)
	worker := fetcher.NewWorker(fetcher.Params{
		Feeds:    repos.Feed,
		Stories:  repos.Story,
		Getter:   feed.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent).WithMaxBodySize(cfg.Fetch.MaxBodySize),
		Parser:   feed.NewParser(),
		Reporter: reporter,
	})
	params := scheduler.Params{
		FeedManager:      repos.Feed,
		Fetcher:          worker,
		Reporter:         reporter,
		Policy:           policy,
		DispatchInterval: cfg.Schedule.DispatchInterval,
		DispatchBatch:    cfg.Schedule.DispatchBatch,
		StatsInterval:    cfg.Schedule.StatsInterval,
		MaxWorkers:       cfg.Fetch.MaxWorkers,
	}

	switch {
	case opts.FetchSoon != 0:
		count, err := scheduler.NewScheduler(params).FetchSoon(ctx, opts.FetchSoon)
		if err != nil {
			return fmt.Errorf("failed to reschedule source %d: %w", opts.FetchSoon, err)
		}
		_, _ = fmt.Fprintf(out, "%d feeds of source %d rescheduled\n", count, opts.FetchSoon)
		return nil

	case opts.FetchFeed != 0:
		res, err := scheduler.NewScheduler(params).FetchFeedNow(ctx, opts.FetchFeed)
		if err != nil {
			return fmt.Errorf("failed to fetch feed %d: %w", opts.FetchFeed, err)
		}
		printResult(out, res)
		return nil

	case opts.Once:
		results, err := scheduler.NewScheduler(params).RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch due feeds: %w", err)
		}
		for _, res := range results {
			printResult(out, res)
		}
		log.Printf("[INFO] fetched %d feeds, %s", len(results), reporter.Stats())
		return nil
	}

	q, err := makeQueue(ctx, cfg.Queue)
	if err != nil {
		return fmt.Errorf("failed to create queue: %w", err)
	}
	defer func() {
		if err := q.Close(); err != nil {
			log.Printf("[WARN] failed to close queue: %v", err)
		}
	}()
	params.Queue = q

	sched := scheduler.NewScheduler(params)
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	<-ctx.Done()
	sched.Stop()
	log.Printf("[INFO] final fetch stats: %s", reporter.Stats())
	return nil
}

type closableQueue interface {
	scheduler.Queue
	Close() error
}

func makeQueue(ctx context.Context, cfg config.QueueConfig) (closableQueue, error) {
	switch cfg.Type {
	case "redis":
		log.Printf("[INFO] using redis queue %s at %s", cfg.Redis.Key, cfg.Redis.Addr)
		q, err := queue.NewRedis(ctx, queue.RedisConfig{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			Key:         cfg.Redis.Key,
			PollTimeout: cfg.Redis.PollTimeout,
		})
		if err != nil {
			return nil, err
		}
		return q, nil
	case "", "memory":
		log.Printf("[DEBUG] using memory queue, size %d", cfg.Size)
		return queue.NewMemory(cfg.Size), nil
	default:
		return nil, fmt.Errorf("unknown queue type %q", cfg.Type)
	}
}

func printResult(out io.Writer, res fetcher.Result) {
	if res.Err != nil {
		_, _ = fmt.Fprintf(out, "feed %d: %s, %v\n", res.FeedID, res.Outcome, res.Err)
		return
	}
	_, _ = fmt.Fprintf(out, "feed %d: %s, entries %d, inserted %d, duplicates %d, skipped %d\n",
		res.FeedID, res.Outcome, res.Entries, res.Inserted, res.Duplicates, res.Skipped)
}

func printReport(ctx context.Context, repos *repository.Repositories, out io.Writer) error {
	counts := []struct {
		name   string
		filter domain.FeedFilter
	}{
		{"total", domain.FeedFilter{}},
		{"active", domain.FeedFilter{ActiveOnly: true}},
		{"due", domain.FeedFilter{ActiveOnly: true, ExcludeQueued: true, DueBefore: time.Now()}},
	}
	for _, c := range counts {
		n, err := repos.Feed.CountFeeds(ctx, c.filter)
		if err != nil {
			return fmt.Errorf("failed to count %s feeds: %w", c.name, err)
		}
		_, _ = fmt.Fprintf(out, "feeds %s: %d\n", c.name, n)
	}

	total, err := repos.Story.CountStories(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to count stories: %w", err)
	}
	_, _ = fmt.Fprintf(out, "stories total: %d\n", total)

	for _, field := range []repository.DayField{repository.DayFetched, repository.DayPublished} {
		days, err := repos.Story.CountStoriesByDay(ctx, 0, field)
		if err != nil {
			return fmt.Errorf("failed to count stories by %s: %w", field, err)
		}
		_, _ = fmt.Fprintf(out, "stories by %s:\n", field)
		for _, d := range days {
			_, _ = fmt.Fprintf(out, "  %s %d\n", d.Date, d.Count)
		}
	}
	return nil
}

func printStories(ctx context.Context, stories *repository.StoryRepository, feedID int64, out io.Writer) error {
	total, err := stories.CountStories(ctx, feedID)
	if err != nil {
		return fmt.Errorf("failed to count stories of feed %d: %w", feedID, err)
	}
	latest, err := stories.GetStoriesByFeed(ctx, feedID, 20)
	if err != nil {
		return fmt.Errorf("failed to get stories of feed %d: %w", feedID, err)
	}
	_, _ = fmt.Fprintf(out, "feed %d: %d stories, latest %d\n", feedID, total, len(latest))
	for _, st := range latest {
		_, _ = fmt.Fprintf(out, "  %s %s %s\n", st.FetchedAt.UTC().Format(time.RFC3339), st.URL, st.Title)
	}
	return nil
}

func setActive(ctx context.Context, feeds *repository.FeedRepository, feedID int64, active bool, out io.Writer) error {
	if err := feeds.SetActive(ctx, feedID, active); err != nil {
		return fmt.Errorf("failed to update feed %d: %w", feedID, err)
	}
	state := "disabled"
	if active {
		state = "enabled"
	}
	_, _ = fmt.Fprintf(out, "feed %d %s\n", feedID, state)
	return nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
