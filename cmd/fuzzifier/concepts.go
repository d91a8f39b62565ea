package main

import (
	"errors"

	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/pipeline"
	"github.com/katalvlaran/fuzzifier/tableio"
	"github.com/spf13/cobra"
)

var errNoMetadata = errors.New("fuzzifier: --per-cluster requires --metadata")

// inputOptions are the flags shared by concepts and fuzzify.
type inputOptions struct {
	mtx        string
	metadata   string
	perCluster bool
	output     string
}

func (o *inputOptions) register(cmd *cobra.Command, outputUsage string) {
	f := cmd.Flags()
	f.StringVar(&o.mtx, "mtx", "", "value matrix (TSV, features × samples)")
	f.StringVar(&o.metadata, "metadata", "", "sample metadata with the cluster column (TSV)")
	f.BoolVar(&o.perCluster, "per-cluster", false, "work per cluster of the metadata")
	f.StringVarP(&o.output, "output", "o", "", outputUsage)
	_ = cmd.MarkFlagRequired("mtx")
	_ = cmd.MarkFlagRequired("output")
}

// clusters reads the sample clustering when --per-cluster is set.
func (o *inputOptions) clusters(rc *runContext) (map[string]string, error) {
	if !o.perCluster {
		return nil, nil
	}
	if o.metadata == "" {
		return nil, errNoMetadata
	}

	return tableio.ReadClustersFile(o.metadata, rc.cfg.MetadataIndexColumn, rc.cfg.MetadataClusterColumn)
}

func newConceptsCommand() *cobra.Command {
	opts := &inputOptions{}
	cmd := &cobra.Command{
		Use:   "concepts",
		Short: "Estimate fuzzy concepts and write them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rc, err := getRunContext(cmd)
			if err != nil {
				return err
			}
			return runConcepts(cmd, rc, opts)
		},
	}
	opts.register(cmd, "concept file to write (JSON)")

	return cmd
}

func runConcepts(cmd *cobra.Command, rc *runContext, opts *inputOptions) error {
	tbl, err := tableio.ReadMatrixFile(opts.mtx)
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
	prepared, err := p.PrepareConcepts(tbl)
	if err != nil {
		return err
	}
	doc, err := p.DefineConcepts(cmd.Context(), prepared, clusters)
	if err != nil {
		return err
	}
	if err = tableio.WriteConceptsFile(opts.output, doc); err != nil {
		return err
	}
	rc.log.Info("concepts written",
		logging.String("path", opts.output),
		logging.Int("clusters", len(doc)))

	return nil
}
