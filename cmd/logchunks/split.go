// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logchunks/logchunks/internal/splitter"
)

func (a *app) splitCmd() *cobra.Command {
	var noRender bool

	cmd := &cobra.Command{
		Use:   "split <output.xml> [output_dir]",
		Short: "Split an output.xml into one document and HTML log per test case",
		Long: `Writes <index>_[<PREFIX>_]<test_name>_<test_id>.xml for every test case and
asks rebot to render <...>_log.html next to it. A rendering failure is logged
and does not stop the remaining test cases.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := a.cfg.OutputDir
			if len(args) == 2 {
				dest = args[1]
			}

			resolver, err := a.cfg.PrefixResolver()
			if err != nil {
				return err
			}
			opts := []splitter.Option{splitter.WithLogger(a.logger), splitter.WithPrefix(resolver)}
			if noRender {
				opts = append(opts, splitter.WithRenderer(nil))
			} else {
				opts = append(opts, splitter.WithRenderer(a.cfg.NewRenderer()))
			}

			res, err := splitter.New(opts...).SplitFile(cmd.Context(), args[0], dest)
			if err != nil {
				return err
			}
			if failed := res.Failed(); failed > 0 {
				a.logger.Warn("Some test cases were not fully processed", zap.Int("failed", failed))
			}
			a.printf(cmd, "Split %d test cases into %s: %d written, %d rendered, %d failed\n",
				len(res.Chunks), dest, res.Written(), res.Rendered(), res.Failed())
			return nil
		},
	}
	cmd.Flags().BoolVar(&noRender, "no-render", false, "write XML documents only, without running rebot")
	return cmd
}
