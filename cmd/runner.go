package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campusconnect/internal/inbox"
	"github.com/desertthunder/campusconnect/internal/matching"
	"github.com/desertthunder/campusconnect/internal/repositories"
	"github.com/desertthunder/campusconnect/internal/shared"
	"github.com/desertthunder/campusconnect/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store is opened lazily from the database config on the first command that needs it, unless
// one was injected through [RunnerOpts].
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	store      *repositories.Store
	engine     *tasks.Engine
	inbox      *inbox.Aggregator
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      *repositories.Store
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	if opts.Store != nil {
		r.attach(opts.Store)
	}
	return r
}

func (r *Runner) attach(store *repositories.Store) {
	r.store = store
	r.engine = tasks.NewEngine(store, r.logger)
	r.inbox = inbox.NewAggregator(store.Messages, store.Users, r.logger)
}

// open returns the store, opening it from the database config when none is attached yet.
func (r *Runner) open() (*repositories.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	store, err := repositories.OpenStore(r.config.Database, repositories.StoreOpts{
		Logger: shared.WithLogger(r.logger, "component", "store"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	r.logger.Debug("store opened", "path", r.config.Database.Path)
	r.attach(store)
	return store, nil
}

// Close releases the store if one was opened.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// loadConfig reads the file named by --config when it exists and applies its log level.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	r.configPath = path

	if _, err := os.Stat(path); err == nil {
		config, err := shared.LoadConfig(path)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	level, err := shared.ParseLogLevel(r.config.Log.Level)
	if err != nil {
		return ctx, err
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

// recommendLimit is the configured ranker limit, or [matching.DefaultRecommendationLimit] when unset.
func (r *Runner) recommendLimit() int {
	if r.config.Matching.RecommendLimit > 0 {
		return r.config.Matching.RecommendLimit
	}
	return matching.DefaultRecommendationLimit
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, seedCommand, userCommand, jobCommand, applyCommand, applicationCommand,
		messageCommand, inboxCommand, matchCommand, dashboardCommand, exportCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "campus",
		Usage:   "Match students with campus projects, startups and part-time work",
		Version: "0.3.0",
		Writer:  r.output,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before:   r.loadConfig,
		Commands: r.register(),
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// jsonRequested reports whether the command asked for JSON output, and whether it should be indented.
func jsonRequested(cmd *cli.Command) (asJSON, pretty bool) {
	return cmd.Bool("json"), cmd.Bool("pretty")
}
