// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/logchunks/logchunks/internal/chunk"
	"github.com/logchunks/logchunks/internal/docsection"
)

// stepsSchema is the serialised form of docsection.Steps.
var stepsSchema = map[string]interface{}{
	"type":                 "object",
	"description":          "Step name -> expected behaviour, in documentation order",
	"additionalProperties": map[string]interface{}{"type": "string"},
}

// recordSchema describes chunk.Record. Failed records carry only xml_file,
// success and error.
var recordSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"xml_file", "success"},
	"properties": map[string]interface{}{
		"index":             map[string]interface{}{"type": "integer"},
		"test_name":         map[string]interface{}{"type": "string"},
		"test_id":           map[string]interface{}{"type": "string"},
		"status":            map[string]interface{}{"type": "string"},
		"documentation":     map[string]interface{}{"type": "string"},
		"steps":             stepsSchema,
		"requirements":      map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"source":            map[string]interface{}{"type": "string"},
		"source_normalized": map[string]interface{}{"type": "string"},
		"xml_file":          map[string]interface{}{"type": "string"},
		"checksum":          map[string]interface{}{"type": "string"},
		"success":           map[string]interface{}{"type": "boolean"},
		"interface":         map[string]interface{}{"type": "string"},
		"log_file":          map[string]interface{}{"type": "string"},
		"error":             map[string]interface{}{"type": "string"},
	},
}

// MetadataReadChunks describes the read_chunks tool.
var MetadataReadChunks = &mcp.Tool{
	Name: "read_chunks",
	Description: "Read every per-test chunk XML in a folder and return one record per file: " +
		"test name, id, status, documentation, steps (ordered name -> expected behaviour object), requirements, " +
		"checksum and the rendered log path when present. Unreadable chunks are reported with " +
		"success=false and an error message.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"folder"},
		"properties": map[string]interface{}{
			"folder": map[string]interface{}{
				"type":        "string",
				"description": "Folder holding chunk XML files produced by split_report",
			},
			"prefix_pattern": map[string]interface{}{
				"type":        "string",
				"description": "Optional regular expression with one capture group used to fill the interface field.",
			},
		},
	},
	OutputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"records", "succeeded", "failed"},
		"properties": map[string]interface{}{
			"records":   map[string]interface{}{"type": "array", "items": recordSchema},
			"succeeded": map[string]interface{}{"type": "integer"},
			"failed":    map[string]interface{}{"type": "integer"},
		},
	},
}

// InputReadChunks is the input for the ReadChunks tool.
type InputReadChunks struct {
	Folder        string `json:"folder"`
	PrefixPattern string `json:"prefix_pattern"`
}

// OutputReadChunks is the output for the ReadChunks tool.
type OutputReadChunks struct {
	Records   []chunk.Record `json:"records"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// ReadChunks reads the chunk folder named in input.
func (t *Tools) ReadChunks(_ context.Context, _ *mcp.CallToolRequest, input InputReadChunks) (*mcp.CallToolResult, OutputReadChunks, error) {
	if input.Folder == "" {
		return nil, OutputReadChunks{}, fmt.Errorf("folder is required")
	}
	resolver, err := t.resolver(input.PrefixPattern)
	if err != nil {
		return nil, OutputReadChunks{}, err
	}

	records := chunk.NewReader(chunk.WithLogger(t.logger), chunk.WithPrefix(resolver)).ReadChunks(input.Folder)
	out := OutputReadChunks{Records: records}
	for _, r := range records {
		if r.Success {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	return nil, out, nil
}

// MetadataExtractSections describes the extract_sections tool.
var MetadataExtractSections = &mcp.Tool{
	Name: "extract_sections",
	Description: "Extract the Steps and Requirements lists from free-text test documentation. " +
		"Steps are numbered or bulleted items, optionally 'step / expected behaviour'. " +
		"Documentation without these sections yields empty lists.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"documentation"},
		"properties": map[string]interface{}{
			"documentation": map[string]interface{}{
				"type":        "string",
				"description": "Raw test documentation text",
			},
		},
	},
	OutputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"steps", "requirements"},
		"properties": map[string]interface{}{
			"steps":        stepsSchema,
			"requirements": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		},
	},
}

// InputExtractSections is the input for the ExtractSections tool.
type InputExtractSections struct {
	Documentation string `json:"documentation"`
}

// OutputExtractSections is the output for the ExtractSections tool.
type OutputExtractSections struct {
	Steps        docsection.Steps `json:"steps"`
	Requirements []string         `json:"requirements"`
}

// ExtractSections mines steps and requirements from documentation text.
func ExtractSections(_ context.Context, _ *mcp.CallToolRequest, input InputExtractSections) (*mcp.CallToolResult, OutputExtractSections, error) {
	return nil, OutputExtractSections{
		Steps:        docsection.ExtractSteps(input.Documentation),
		Requirements: docsection.ExtractRequirements(input.Documentation),
	}, nil
}
