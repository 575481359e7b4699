// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/logchunks/logchunks/internal/docsection"
)

// sections is the output of the extract command.
type sections struct {
	Steps        docsection.Steps `json:"steps"`
	Requirements []string         `json:"requirements"`
}

func (a *app) extractCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract steps and requirements from documentation text",
		Long:  "Reads documentation from file, or from stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read documentation: %w", err)
			}
			doc := string(data)
			return encode(cmd.OutOrStdout(), format, sections{
				Steps:        docsection.ExtractSteps(doc),
				Requirements: docsection.ExtractRequirements(doc),
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml")
	return cmd
}
