package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/repositories"
	"github.com/desertthunder/likeshift/internal/services"
	"github.com/desertthunder/likeshift/internal/shared"
	"github.com/desertthunder/likeshift/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	bridge     services.PageService
	downloader services.Downloader
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Bridge     services.PageService
	Downloader services.Downloader
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		bridge:     opts.Bridge,
		downloader: opts.Downloader,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

// SetLogger swaps the runner's logger (used by the TUI to log to a file).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, collectCommand, backupCommand, restoreCommand, runsCommand, bridgeCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// buildEngine reads the page session state and assembles a migration engine
// bound to it. The page config and origin are read fresh per run; the auth
// headers derived from them are recomputed per request inside the engine.
func (r *Runner) buildEngine(ctx context.Context) (*tasks.MigrationEngine, error) {
	cfg, err := r.bridge.Config(ctx)
	if err != nil {
		return nil, err
	}

	origin, err := r.bridge.Origin(ctx)
	if err != nil {
		return nil, err
	}

	auth := services.NewSessionAuthProvider(r.bridge, cfg.SessionIndex)
	api := services.NewInnerTubeService(r.config.API.Root, cfg, origin, auth, r.httpClient)

	return tasks.NewMigrationEngine(r.bridge, api, r.downloader, r.logger), nil
}

// confirm presents a blocking yes/no prompt and returns the answer.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)

	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// recordRun appends a ledger entry for a completed run. Ledger failures are
// logged but never fail the run they describe.
func (r *Runner) recordRun(record *models.RunRecord) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("run ledger unavailable", "error", err)
		return
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.InitSchema(db); err != nil {
		r.logger.Warn("run ledger schema init failed", "error", err)
		return
	}

	if err := repositories.NewRunRepository(db).Create(record); err != nil {
		r.logger.Warn("failed to record run", "error", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
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
