package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/talent-search/internal/analysis"
	"github.com/jonathan/talent-search/internal/config"
	"github.com/jonathan/talent-search/internal/extraction"
	"github.com/jonathan/talent-search/internal/fetch"
	"github.com/jonathan/talent-search/internal/ingestion"
	"github.com/jonathan/talent-search/internal/llm"
	"github.com/jonathan/talent-search/internal/logging"
	"github.com/jonathan/talent-search/internal/observability"
	"github.com/jonathan/talent-search/internal/store"
	"github.com/jonathan/talent-search/internal/types"
	"github.com/jonathan/talent-search/internal/workspace"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// intelligence is a workspace.Intelligence holding a model client.
type intelligence interface {
	workspace.Intelligence
	Close() error
}

// newIntelligence builds the model-backed intelligence. Tests replace it.
var newIntelligence = func(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (intelligence, error) {
	if cfg.APIKey == "" && !cfg.LLMConfig().UsesVertex() {
		return nil, errors.New("GEMINI_API_KEY is required (or set project and location for Vertex AI)")
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return analysis.New(client, log), nil
}

// offline stands in for the model in commands that never call it.
type offline struct{}

func (offline) Extract(context.Context, string) (*types.CandidateDraft, error) {
	return nil, &extraction.ExtractionError{Reason: extraction.ReasonAPICall, Message: "no model configured"}
}

func (offline) Rank(context.Context, string, []types.CandidateProfile) []types.SearchResult {
	return []types.SearchResult{}
}

func (offline) Close() error { return nil }

// app wires configuration, storage, the model and the workspace controller
// for one command invocation.
type app struct {
	cfg        config.Config
	log        *logrus.Logger
	backend    store.Backend
	candidates *store.CandidateStore
	ai         intelligence
	ctrl       *workspace.Controller
	fetcher    *fetch.CachedFetcher
	printer    *observability.Printer
	seeded     bool
}

// loadConfig layers flags over the config file over the environment.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	var file *config.Config
	if opts.configPath != "" {
		if file, err = config.LoadConfig(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	cfg := config.Resolve(file, env)

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = opts.dataDir
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp builds the app. Commands that call the model pass withModel.
// The store is seeded with the example candidates when it is empty.
func openApp(cmd *cobra.Command, opts *rootOptions, withModel bool) (*app, error) {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	log := logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevelName(), logging.Format(cfg.LogFormat))

	backend, err := store.OpenBackend(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	a := &app{
		cfg:        cfg,
		log:        log,
		backend:    backend,
		candidates: store.NewCandidateStore(backend, store.WithKey(cfg.StorageKey), store.WithLogger(log)),
		ai:         offline{},
		fetcher:    fetch.NewCachedFetcher(backend, nil, fetch.DefaultCacheTTL, log),
		printer:    observability.NewPrinter(cmd.OutOrStdout()),
	}

	if a.seeded, err = a.candidates.SeedIfEmpty(ctx); err != nil {
		log.WithError(err).Warn("failed to seed example candidates")
	}

	if withModel {
		if a.ai, err = newIntelligence(ctx, cfg, log); err != nil {
			_ = backend.Close()
			return nil, err
		}
	}

	a.ctrl = workspace.New(a.candidates, a.ai, workspace.WithLogger(log))
	a.log.WithFields(logrus.Fields{"backend": cfg.Backend, "model": withModel}).Debug("app ready")
	return a, nil
}

// urlOptions configures fetching of resumes and job postings.
func (a *app) urlOptions(target ingestion.Target, useBrowser bool) ingestion.URLOptions {
	return ingestion.URLOptions{
		Target:     target,
		UseBrowser: useBrowser || a.cfg.UseBrowser,
		Fetcher:    a.fetcher,
		Log:        a.log,
	}
}

// Close releases the model client and the storage backend.
func (a *app) Close() {
	if err := a.ai.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close model client")
	}
	if err := a.backend.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close storage backend")
	}
}
