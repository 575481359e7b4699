// SPDX-License-Identifier: Apache-2.0

// Package chunk reads standalone per-test documents ("chunks") back into
// normalised records and owns the chunk file naming convention.
package chunk

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/logchunks/logchunks/internal/docsection"
)

const (
	// XMLExt is the extension of standalone documents.
	XMLExt = ".xml"
	// LogSuffix is appended to a document stem to name its rendered log.
	LogSuffix = "_log.html"
)

// Record is the normalised view of one chunk. Records with Success false
// carry only XMLFile and Error, and serialise with only those fields.
type Record struct {
	Index            int              `json:"index"`
	TestName         string           `json:"test_name"`
	TestID           string           `json:"test_id"`
	Status           string           `json:"status"`
	Documentation    string           `json:"documentation"`
	Steps            docsection.Steps `json:"steps"`
	Requirements     []string         `json:"requirements"`
	Source           string           `json:"source"`
	SourceNormalized string           `json:"source_normalized"`
	XMLFile          string           `json:"xml_file"`
	Checksum         string           `json:"checksum"`
	Success          bool             `json:"success"`
	Interface        string           `json:"interface,omitempty"`
	LogFile          string           `json:"log_file,omitempty"`
	Error            string           `json:"error,omitempty"`
}

type failure struct {
	XMLFile string `json:"xml_file"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// record has Record's fields without its marshalers.
type record Record

// wire is the serialised form of r. Successful records always carry steps and
// requirements, empty or not.
func (r Record) wire() interface{} {
	if !r.Success {
		return failure{XMLFile: r.XMLFile, Error: r.Error}
	}
	if r.Steps == nil {
		r.Steps = docsection.Steps{}
	}
	if r.Requirements == nil {
		r.Requirements = []string{}
	}
	return record(r)
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.wire())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (r Record) MarshalYAML() (interface{}, error) {
	return r.wire(), nil
}

func failed(path, msg string) Record {
	return Record{XMLFile: path, Success: false, Error: msg}
}

// SafeName makes a test name usable in a filename by replacing spaces and
// both path separators with underscores.
func SafeName(testName string) string {
	return strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(testName)
}

// Stem builds "<index>_[<PREFIX>_]<safe-name>_<test-id>".
func Stem(index int, prefix, testName, testID string) string {
	if prefix != "" {
		return fmt.Sprintf("%d_%s_%s_%s", index, prefix, SafeName(testName), testID)
	}
	return fmt.Sprintf("%d_%s_%s", index, SafeName(testName), testID)
}

// LogPathFor returns the rendered log path that belongs to a document path.
func LogPathFor(xmlPath string) string {
	stem := strings.TrimSuffix(filepath.Base(xmlPath), filepath.Ext(xmlPath))
	return filepath.Join(filepath.Dir(xmlPath), stem+LogSuffix)
}
