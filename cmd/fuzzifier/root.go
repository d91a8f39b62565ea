package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/katalvlaran/fuzzifier/config"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/metrics"
	"github.com/spf13/cobra"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath  string
	logLevel    string
	metricsFile string
}

// runContext carries the initialized dependencies through the command tree.
type runContext struct {
	cfg     *config.Config
	log     logging.Logger
	metrics *metrics.Metrics
	runID   string
}

type runContextKey struct{}

var errNoRunContext = errors.New("fuzzifier: command not initialized")

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "fuzzifier",
		Short:         "Fuzzy concept estimation and fuzzification of value matrices",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPreRun(cmd, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return persistentPostRun(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file (YAML or JSON); defaults and FUZZIFIER_* env when empty")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics in text format to this file")

	cmd.AddCommand(newConceptsCommand(), newFuzzifyCommand(), newConfigCommand())

	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}
	rc := &runContext{
		cfg:     cfg,
		metrics: metrics.New(),
		runID:   uuid.NewString(),
	}
	rc.log = log.With(logging.String(logging.KeyRunID, rc.runID))
	rc.log.Debug("configuration loaded",
		logging.String("path", opts.configPath),
		logging.String("command", cmd.Name()))

	cmd.SetContext(context.WithValue(cmd.Context(), runContextKey{}, rc))

	return nil
}

func persistentPostRun(cmd *cobra.Command, opts *rootOptions) error {
	rc, err := getRunContext(cmd)
	if err != nil {
		return err
	}
	if opts.metricsFile != "" {
		if err = rc.metrics.WriteFile(opts.metricsFile); err != nil {
			return err
		}
	}
	_ = rc.log.Sync()

	return nil
}

func getRunContext(cmd *cobra.Command) (*runContext, error) {
	rc, ok := cmd.Context().Value(runContextKey{}).(*runContext)
	if !ok {
		return nil, errNoRunContext
	}

	return rc, nil
}
