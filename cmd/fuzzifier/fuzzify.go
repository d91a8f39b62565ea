package main

import (
	"path/filepath"

	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/pipeline"
	"github.com/katalvlaran/fuzzifier/tableio"
	"github.com/spf13/cobra"
)

type fuzzifyOptions struct {
	inputOptions
	concept string
}

func newFuzzifyCommand() *cobra.Command {
	opts := &fuzzifyOptions{}
	cmd := &cobra.Command{
		Use:   "fuzzify",
		Short: "Fuzzify a value matrix with a concept file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getRunContext(cmd)
			if err != nil {
				return err
			}
			return runFuzzify(cmd, rc, opts)
		},
	}
	opts.register(cmd, "output directory for fuzzyValues_<name>.tsv files")
	cmd.Flags().StringVar(&opts.concept, "concept", "", "concept file (JSON)")
	_ = cmd.MarkFlagRequired("concept")

	return cmd
}

func runFuzzify(cmd *cobra.Command, rc *runContext, opts *fuzzifyOptions) error {
	tbl, err := tableio.ReadMatrixFile(opts.mtx)
	if err != nil {
		return err
	}
	doc, err := tableio.ReadConceptsFile(opts.concept)
	if err != nil {
		return err
	}
	clusters, err := opts.clusters(rc)
	if err != nil {
		return err
	}
	p, err := pipeline.New(rc.cfg, pipeline.WithLogger(rc.log), pipeline.WithMetrics(rc.metrics))
	if err != nil {
		return err
	}
	res, err := p.Fuzzify(cmd.Context(), tbl, doc, clusters)
	if err != nil {
		return err
	}
	outputs, err := res.Outputs(rc.cfg.SaveFuzzyValuesPer)
	if err != nil {
		return err
	}
	for _, o := range outputs {
		if err = tableio.WriteMatrixFile(filepath.Join(opts.output, tableio.FileName(o.Name)), o.Table); err != nil {
			return err
		}
	}
	rc.log.Info("memberships written",
		logging.String("dir", opts.output),
		logging.String("per", rc.cfg.SaveFuzzyValuesPer),
		logging.Int("files", len(outputs)))

	return nil
}
