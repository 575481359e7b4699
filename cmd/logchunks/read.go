// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/logchunks/logchunks/internal/chunk"
)

func (a *app) readCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "read <folder>",
		Short: "Read chunk documents back into records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := a.cfg.PrefixResolver()
			if err != nil {
				return err
			}
			records := chunk.NewReader(chunk.WithLogger(a.logger), chunk.WithPrefix(resolver)).ReadChunks(args[0])
			return encode(cmd.OutOrStdout(), format, records)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml")
	return cmd
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q (expected json, yaml)", format)
	}
}
