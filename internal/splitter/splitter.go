// SPDX-License-Identifier: Apache-2.0

// Package splitter decomposes an aggregated Robot Framework output document
// into one standalone document per test case and renders each of them.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/logchunks/logchunks/internal/chunk"
	"github.com/logchunks/logchunks/internal/prefix"
	"github.com/logchunks/logchunks/internal/render"
	"github.com/logchunks/logchunks/internal/robotxml"
)

// Splitter writes per-test chunk documents and hands them to a renderer.
type Splitter struct {
	logger   *zap.Logger
	prefix   *prefix.Resolver
	renderer render.Renderer
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Splitter) { s.logger = l }
}

// WithPrefix enables classification prefixes in chunk filenames.
func WithPrefix(p *prefix.Resolver) Option {
	return func(s *Splitter) { s.prefix = p }
}

// WithRenderer replaces the default rebot renderer. A nil renderer disables
// rendering; chunk documents are still written.
func WithRenderer(r render.Renderer) Option {
	return func(s *Splitter) { s.renderer = r }
}

// New creates a Splitter that renders with rebot from PATH unless
// configured otherwise.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		logger:   zap.NewNop(),
		renderer: render.NewRebot(render.DefaultBinary, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChunkResult is the outcome for one test case.
type ChunkResult struct {
	Index    int    `json:"index"`
	TestName string `json:"test_name"`
	TestID   string `json:"test_id"`
	Prefix   string `json:"prefix,omitempty"`
	XMLFile  string `json:"xml_file,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	Rendered bool   `json:"rendered"`
	Err      error  `json:"-"`
}

// Result collects the per-test outcomes of a split, in traversal order.
type Result struct {
	Chunks []ChunkResult
}

// Written counts chunks whose document reached storage.
func (r *Result) Written() int {
	n := 0
	for _, c := range r.Chunks {
		if c.XMLFile != "" {
			n++
		}
	}
	return n
}

// Rendered counts chunks with a rendered log.
func (r *Result) Rendered() int {
	n := 0
	for _, c := range r.Chunks {
		if c.Rendered {
			n++
		}
	}
	return n
}

// Failed counts chunks that hit an error while writing or rendering.
func (r *Result) Failed() int {
	n := 0
	for _, c := range r.Chunks {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// SplitFile parses the aggregated report at reportPath and splits it into
// destDir. Only errors that concern the input as a whole are returned.
func (s *Splitter) SplitFile(ctx context.Context, reportPath, destDir string) (*Result, error) {
	root, err := robotxml.ParseFile(reportPath)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", reportPath, err)
	}
	return s.Split(ctx, root, destDir)
}

// Split writes one chunk per (suite, test) pair of root into destDir, with
// 1-based indices in traversal order, and renders each chunk. A failure for
// one test case is recorded in its ChunkResult and does not stop the others.
// root is never modified.
func (s *Splitter) Split(ctx context.Context, root *robotxml.Element, destDir string) (*Result, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	pairs := robotxml.TestPairs(root)
	s.logger.Debug("Found test cases", zap.Int("count", len(pairs)), zap.String("dest", destDir))

	result := &Result{Chunks: make([]ChunkResult, 0, len(pairs))}
	for i, p := range pairs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Chunks = append(result.Chunks, s.splitOne(ctx, root, p, i+1, len(pairs), destDir))
	}
	return result, nil
}

func (s *Splitter) splitOne(ctx context.Context, root *robotxml.Element, p robotxml.Pair, idx, total int, destDir string) (cr ChunkResult) {
	cr = ChunkResult{
		Index:    idx,
		TestName: p.Test.Attr("name"),
		TestID:   p.Test.Attr("id"),
	}
	log := s.logger.With(zap.Int("index", idx), zap.String("test", cr.TestName))

	defer func() {
		if r := recover(); r != nil {
			cr.Err = fmt.Errorf("split test case %d: %v", idx, r)
			log.Error("Failed to split test case", zap.Error(cr.Err))
		}
	}()

	cr.Prefix = s.prefix.Resolve(p.Test, p.Suite, root)
	stem := chunk.Stem(idx, cr.Prefix, cr.TestName, cr.TestID)
	xmlPath := filepath.Join(destDir, stem+chunk.XMLExt)

	if cr.Prefix != "" {
		log.Debug("Processing", zap.Int("total", total), zap.String("prefix", cr.Prefix))
	} else {
		log.Debug("Processing", zap.Int("total", total))
	}

	doc := BuildDocument(root, p.Suite, p.Test)
	if err := robotxml.WriteFile(xmlPath, doc); err != nil {
		cr.Err = err
		log.Error("Failed to write chunk", zap.Error(err))
		return cr
	}
	cr.XMLFile = xmlPath
	log.Debug("Created XML", zap.String("file", xmlPath))

	if s.renderer == nil {
		return cr
	}
	logPath := filepath.Join(destDir, stem+chunk.LogSuffix)
	err := s.renderer.Render(ctx, render.Job{Input: xmlPath, Log: logPath, Name: cr.TestName})
	var exitErr *render.ExitError
	switch {
	case err == nil:
		cr.Rendered = true
		cr.LogFile = logPath
		log.Debug("Generated log", zap.String("file", logPath))
	case errors.Is(err, render.ErrRendererNotFound):
		cr.Err = err
		log.Error("Renderer not found, install robotframework to get HTML logs", zap.Error(err))
	case errors.As(err, &exitErr):
		cr.Err = err
		log.Warn("Failed to generate report", zap.Int("exit_code", exitErr.Code), zap.String("stderr", exitErr.Stderr))
	default:
		cr.Err = err
		log.Warn("Error generating report", zap.Error(err))
	}
	return cr
}
