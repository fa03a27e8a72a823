package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const app = "placementctl"

// Actual version can be specified in build command.
var version = "unknown"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           app,
		Short:         "placementctl scores students against drives without a running server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringP("file", "f", "", "JSON request file (default: stdin)")
	root.PersistentFlags().Bool("pretty", false, "indent the JSON output")

	root.AddCommand(
		newSuitabilityCmd(),
		newDistanceCmd(),
		newReadinessCmd(),
		newForecastCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
			},
		},
	)
	return root
}

// readRequest decodes the --file argument, or stdin when it is unset, into v.
func readRequest(cmd *cobra.Command, v interface{}) error {
	path, _ := cmd.Flags().GetString("file")

	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open request file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

func writeResult(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
