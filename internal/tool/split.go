// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logchunks/logchunks/internal/prefix"
	"github.com/logchunks/logchunks/internal/splitter"
)

// MetadataSplitReport describes the split_report tool.
var MetadataSplitReport = &mcp.Tool{
	Name: "split_report",
	Description: "Split a Robot Framework output.xml into one standalone XML document per test case " +
		"and render an HTML log for each with rebot. Files are named " +
		"<index>_[<PREFIX>_]<test_name>_<test_id>.xml and ..._log.html. " +
		"A rendering failure for one test case does not stop the others.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"report_path"},
		"properties": map[string]interface{}{
			"report_path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the aggregated output.xml",
			},
			"output_dir": map[string]interface{}{
				"type":        "string",
				"description": "Destination directory. Defaults to the configured output_dir.",
			},
			"prefix_pattern": map[string]interface{}{
				"type":        "string",
				"description": "Optional regular expression with one capture group used to tag filenames. Overrides the configured pattern.",
			},
			"skip_render": map[string]interface{}{
				"type":        "boolean",
				"description": "Write the XML documents only, without invoking rebot.",
			},
		},
	},
}

// InputSplitReport is the input for the SplitReport tool.
type InputSplitReport struct {
	ReportPath    string `json:"report_path"`
	OutputDir     string `json:"output_dir"`
	PrefixPattern string `json:"prefix_pattern"`
	SkipRender    bool   `json:"skip_render"`
}

// ChunkSummary is one test case outcome.
type ChunkSummary struct {
	Index    int    `json:"index"`
	TestName string `json:"test_name"`
	TestID   string `json:"test_id"`
	Prefix   string `json:"prefix,omitempty"`
	XMLFile  string `json:"xml_file,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	Rendered bool   `json:"rendered"`
	Error    string `json:"error,omitempty"`
}

// OutputSplitReport is the output for the SplitReport tool.
type OutputSplitReport struct {
	Total    int            `json:"total"`
	Written  int            `json:"written"`
	Rendered int            `json:"rendered"`
	Failed   int            `json:"failed"`
	Chunks   []ChunkSummary `json:"chunks"`
}

// SplitReport splits the report named in input.
func (t *Tools) SplitReport(ctx context.Context, _ *mcp.CallToolRequest, input InputSplitReport) (*mcp.CallToolResult, OutputSplitReport, error) {
	if input.ReportPath == "" {
		return nil, OutputSplitReport{}, fmt.Errorf("report_path is required")
	}

	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = t.cfg.OutputDir
	}

	resolver, err := t.resolver(input.PrefixPattern)
	if err != nil {
		return nil, OutputSplitReport{}, err
	}

	opts := []splitter.Option{splitter.WithLogger(t.logger), splitter.WithPrefix(resolver)}
	if input.SkipRender {
		opts = append(opts, splitter.WithRenderer(nil))
	} else {
		opts = append(opts, splitter.WithRenderer(t.cfg.NewRenderer()))
	}

	res, err := splitter.New(opts...).SplitFile(ctx, input.ReportPath, outputDir)
	if err != nil {
		return nil, OutputSplitReport{}, err
	}

	out := OutputSplitReport{
		Total:    len(res.Chunks),
		Written:  res.Written(),
		Rendered: res.Rendered(),
		Failed:   res.Failed(),
		Chunks:   make([]ChunkSummary, 0, len(res.Chunks)),
	}
	for _, c := range res.Chunks {
		s := ChunkSummary{
			Index:    c.Index,
			TestName: c.TestName,
			TestID:   c.TestID,
			Prefix:   c.Prefix,
			XMLFile:  c.XMLFile,
			LogFile:  c.LogFile,
			Rendered: c.Rendered,
		}
		if c.Err != nil {
			s.Error = c.Err.Error()
		}
		out.Chunks = append(out.Chunks, s)
	}
	return nil, out, nil
}

// resolver prefers a per-call pattern over the configured one.
func (t *Tools) resolver(pattern string) (*prefix.Resolver, error) {
	if pattern != "" {
		return prefix.New(pattern)
	}
	return t.cfg.PrefixResolver()
}
