package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/qiskit-community/qiskit-pasqal-provider/backend"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/ctxlog"
	"github.com/qiskit-community/qiskit-pasqal-provider/internal/hclconf"
	"github.com/qiskit-community/qiskit-pasqal-provider/provider"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: config}
}

// Run loads the configured documents, executes the program on the chosen
// backend, and prints the resulting counts histogram.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	program, err := hclconf.LoadProgram(ctx, a.config.ProgramPath)
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	pub := provider.NewPub(program)
	if a.config.ValuesPath != "" {
		bindings, err := hclconf.LoadValues(ctx, a.config.ValuesPath)
		if err != nil {
			return fmt.Errorf("failed to load values: %w", err)
		}
		pub.Values = make(map[string]any, len(bindings))
		for name, vals := range bindings {
			pub.Values[name] = vals
		}
	}

	opts := []provider.Option{
		provider.WithPollConfig(backend.PollConfig{
			Interval: a.config.PollInterval,
			MaxPolls: a.config.MaxPolls,
		}),
	}
	if a.config.RemotePath != "" {
		remote, err := hclconf.LoadRemoteConfig(ctx, a.config.RemotePath)
		if err != nil {
			return fmt.Errorf("failed to load remote config: %w", err)
		}
		opts = append(opts, provider.WithRemoteConfig(remote))
	}

	prov := provider.NewProvider(opts...)
	be, err := prov.GetBackend(ctx, a.config.BackendTag, nil)
	if err != nil {
		return err
	}
	a.logger.Debug("Backend constructed.", "backend", be.Name())

	var runOpts []provider.RunOption
	if !a.config.Wait {
		runOpts = append(runOpts, provider.WithoutWait())
	}

	sampler := provider.NewSampler(be)
	job, err := sampler.Run(ctx, []provider.Pub{pub}, a.config.Shots, runOpts...)
	if err != nil {
		return err
	}

	if !job.InFinalState() {
		a.logger.Info("Job submitted.", "job_id", job.ID(), "status", job.Status().String())
		fmt.Fprintf(a.outW, "job: %s\nstatus: %s\n", job.ID(), job.Status())
		return nil
	}
	a.logger.Info("Job finished.", "job_id", job.ID(), "status", job.Status().String())

	result := job.Result()
	if result == nil {
		return fmt.Errorf("job %s finished in state %s with no result", job.ID(), job.Status())
	}
	a.printCounts(result)
	return nil
}

// printCounts writes the histogram sorted by frequency, ties broken by
// bitstring.
func (a *App) printCounts(result *backend.Result) {
	type row struct {
		bits  string
		count int
	}
	rows := make([]row, 0, len(result.Counts))
	for bits, count := range result.Counts {
		rows = append(rows, row{bits, count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].bits < rows[j].bits
	})

	fmt.Fprintf(a.outW, "backend: %s\njob: %s\nshots: %d\n", result.BackendName, result.JobID, result.Shots())
	for _, r := range rows {
		fmt.Fprintf(a.outW, "%s  %d\n", r.bits, r.count)
	}
}
