package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/fuzzifier/config"
	"github.com/spf13/cobra"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return config.WriteDefault(cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("fuzzifier: %w", err)
			}
			if err = config.WriteDefault(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "", "file to write (stdout when empty)")
	cmd.AddCommand(initCmd)

	return cmd
}
