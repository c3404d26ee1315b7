package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/plaidfeed/pkg/config"
	"github.com/umputun/plaidfeed/pkg/domain"
	"github.com/umputun/plaidfeed/pkg/merger"
	"github.com/umputun/plaidfeed/pkg/publish"
	"github.com/umputun/plaidfeed/pkg/repository"
	"github.com/umputun/plaidfeed/pkg/scheduler"
	"github.com/umputun/plaidfeed/pkg/source"
	"github.com/umputun/plaidfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file, loaded if present"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath  string `long:"db" env:"DB_PATH" description:"database DSN, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// dotenv goes first so env-backed options can see its values
	loadEnvFile(envFileFromArgs(os.Args[1:]))

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting plaidfeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = opts.DBPath
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if err := repos.Source.SyncSources(ctx, configuredSources(cfg.GetSources())); err != nil {
		return fmt.Errorf("failed to sync sources: %w", err)
	}

	parser := source.NewParser(cfg.Schedule.FetchTimeout, cfg.Schedule.UserAgent)
	if cfg.Schedule.ExtractSummary {
		parser.WithExtractor(source.NewHTTPExtractor(cfg.Schedule.FetchTimeout, cfg.Schedule.UserAgent))
		log.Printf("[INFO] empty summaries are extracted from linked pages")
	}

	mrg := merger.New()
	params := scheduler.Params{
		SourceManager:  repos.Source,
		ItemManager:    repos.Item,
		Parser:         parser,
		Merger:         mrg,
		UpdateInterval: cfg.Schedule.UpdateInterval,
		MaxWorkers:     cfg.Schedule.MaxWorkers,
	}

	if rp := publish.NewRedis(cfg.Redis); rp != nil {
		if err := rp.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis %s: %w", cfg.Redis.Addr, err)
		}
		defer rp.Close()
		params.Publisher = rp
		log.Printf("[INFO] publishing snapshots to redis %s, key %s", cfg.Redis.Addr, cfg.Redis.Key)
	}

	sched := scheduler.NewScheduler(params)
	if err := sched.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore feed: %w", err)
	}
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, server.NewRepositoryAdapter(repos), mrg, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// configuredSources converts config sources to domain sources, disabled flag becomes the initial filter state
func configuredSources(srcs []config.Source) []domain.Source {
	res := make([]domain.Source, 0, len(srcs))
	for _, s := range srcs {
		res = append(res, domain.Source{
			Name:     s.Name,
			URL:      s.URL,
			Strategy: s.Strategy,
			PageSize: s.PageSize,
			MaxPages: s.MaxPages,
			Enabled:  !s.Disabled,
		})
	}
	return res
}

// envFileFromArgs finds --env-file in raw args, falls back to ENV_FILE and then to .env
func envFileFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			return v
		}
	}
	if v := os.Getenv("ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

// loadEnvFile loads variables from the dotenv file without overriding the real environment
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("[WARN] failed to load %s: %v", path, err)
	}
}

// SetupLog configures lgr and redirects std log to it
func SetupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
