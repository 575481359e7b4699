// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/logchunks/logchunks/internal/docsection"
	"github.com/logchunks/logchunks/internal/identity"
	"github.com/logchunks/logchunks/internal/prefix"
	"github.com/logchunks/logchunks/internal/robotxml"
)

// Reader turns chunk documents into Records.
type Reader struct {
	logger *zap.Logger
	prefix *prefix.Resolver
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithPrefix enables resolution of the Interface field.
func WithPrefix(p *prefix.Resolver) Option {
	return func(r *Reader) { r.prefix = p }
}

// NewReader creates a Reader.
func NewReader(opts ...Option) *Reader {
	r := &Reader{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadChunk parses one chunk document. It never fails: every problem is
// reported through a Record with Success false.
func (r *Reader) ReadChunk(path string) (rec Record) {
	defer func() {
		if p := recover(); p != nil {
			rec = failed(path, fmt.Sprintf("Error reading chunk: %v", p))
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return failed(path, fmt.Sprintf("Error reading chunk: %v", err))
	}
	root, err := robotxml.Parse(bytes.NewReader(data))
	if err != nil {
		return failed(path, fmt.Sprintf("XML parsing error: %v", err))
	}

	suite := root.FindFunc(func(e *robotxml.Element) bool { return e.Name == "suite" })
	if suite == nil {
		return failed(path, "No suite element found in XML")
	}
	test := suite.Child("test")
	if test == nil {
		return failed(path, "No test element found in XML")
	}

	name := test.Attr("name")
	doc := robotxml.Doc(test)
	source := robotxml.Source(suite)

	rec = Record{
		Index:            identity.IndexFromFilename(path),
		TestName:         name,
		TestID:           test.Attr("id"),
		Status:           robotxml.Status(test),
		Documentation:    doc,
		Steps:            docsection.ExtractSteps(doc),
		Requirements:     docsection.ExtractRequirements(doc),
		Source:           source,
		SourceNormalized: identity.NormalizeSource(source),
		XMLFile:          path,
		Checksum:         identity.Checksum(name, doc, source),
		Success:          true,
		Interface:        r.prefix.Resolve(test, suite, root),
	}

	logPath := LogPathFor(path)
	if _, err := os.Stat(logPath); err == nil {
		rec.LogFile = logPath
	}
	return rec
}

// ReadChunks reads every *.xml document in folder, sorted by filename. A
// missing folder, a non-directory or an empty folder yields an empty slice.
func (r *Reader) ReadChunks(folder string) []Record {
	results := []Record{}
	log := r.logger.With(zap.String("folder", folder))

	info, err := os.Stat(folder)
	if err != nil {
		log.Warn("Chunk folder does not exist", zap.Error(err))
		return results
	}
	if !info.IsDir() {
		log.Warn("Chunk path is not a directory")
		return results
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		log.Warn("Failed to list chunk folder", zap.Error(err))
		return results
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != XMLExt {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	if len(files) == 0 {
		log.Warn("No XML files found")
		return results
	}

	log.Debug("Found chunk documents", zap.Int("count", len(files)))
	for _, f := range files {
		rec := r.ReadChunk(f)
		results = append(results, rec)
		if rec.Success {
			log.Debug("Read chunk", zap.String("file", filepath.Base(f)),
				zap.String("test", rec.TestName), zap.String("status", rec.Status))
		} else {
			log.Warn("Failed to read chunk", zap.String("file", filepath.Base(f)), zap.String("error", rec.Error))
		}
	}
	return results
}
