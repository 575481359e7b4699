// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/logchunks/logchunks/internal/identity"
	"github.com/logchunks/logchunks/internal/prefix"
)

const validChunk = `<?xml version="1.0" encoding="UTF-8"?>
<robot generator="Robot 7.0">
  <suite id="s1-s2" name="Login" source="/srv/checkout/tests/login.robot">
    <kw name="Open Session" type="SETUP">
      <msg level="INFO">open_session('ldap', 'host')</msg>
    </kw>
    <test id="s1-s2-t3" name="Valid Login">
      <doc>Logs in.
*Steps:*
1. Enter credentials / accepted
2. Submit
*Requirements*
- AUTH-1
- AUTH-2</doc>
      <status status="PASS"/>
    </test>
  </suite>
  <statistics/>
  <errors/>
</robot>
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadChunk(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "3_LDAP_Valid_Login_s1-s2-t3.xml", validChunk)

	p, err := prefix.New(`open_session\('(\w+)'`)
	require.NoError(t, err)
	rec := NewReader(WithPrefix(p)).ReadChunk(path)

	require.True(t, rec.Success, rec.Error)
	assert.Equal(t, 3, rec.Index)
	assert.Equal(t, "Valid Login", rec.TestName)
	assert.Equal(t, "s1-s2-t3", rec.TestID)
	assert.Equal(t, "PASS", rec.Status)
	assert.Equal(t, []string{"Enter credentials", "Submit"}, rec.Steps.Names())
	expected, _ := rec.Steps.Get("Enter credentials")
	assert.Equal(t, "accepted", expected)
	assert.Equal(t, []string{"AUTH-1", "AUTH-2"}, rec.Requirements)
	assert.Equal(t, "/srv/checkout/tests/login.robot", rec.Source)
	assert.Equal(t, "tests/login.robot", rec.SourceNormalized)
	assert.Equal(t, identity.Checksum("Valid Login", rec.Documentation, rec.Source), rec.Checksum)
	assert.Equal(t, "LDAP", rec.Interface)
	assert.Equal(t, path, rec.XMLFile)
	assert.Empty(t, rec.LogFile, "no rendered log on storage")
	assert.Empty(t, rec.Error)
}

func TestReadChunk_LogFileWhenPresent(t *testing.T) {
	dir := t.TempDir()
	path := write(t, dir, "1_Valid_Login_s1-s2-t3.xml", validChunk)
	logPath := write(t, dir, "1_Valid_Login_s1-s2-t3_log.html", "<html/>")

	rec := NewReader().ReadChunk(path)
	require.True(t, rec.Success)
	assert.Equal(t, logPath, rec.LogFile)
	assert.Empty(t, rec.Interface, "no pattern configured")
}

func TestReadChunk_Failures(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name:        "malformed document",
			content:     "<robot><suite>",
			errContains: "XML parsing error",
		},
		{
			name:        "no suite element",
			content:     `<robot><statistics/></robot>`,
			errContains: "No suite element found in XML",
		},
		{
			name:        "no test element",
			content:     `<robot><suite id="s1" name="Empty"><suite id="s1-s1"><test name="nested"/></suite></suite></robot>`,
			errContains: "No test element found in XML",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, t.TempDir(), "1_x.xml", tt.content)
			rec := NewReader().ReadChunk(path)

			assert.False(t, rec.Success)
			assert.Contains(t, rec.Error, tt.errContains)
			assert.Equal(t, Record{XMLFile: path, Error: rec.Error}, rec, "failed records carry only the path and error")
		})
	}

	t.Run("unreadable file", func(t *testing.T) {
		rec := NewReader().ReadChunk(filepath.Join(t.TempDir(), "missing.xml"))
		assert.False(t, rec.Success)
		assert.Contains(t, rec.Error, "Error reading chunk")
	})
}

func TestReadChunk_StatusDefaultsToUnknown(t *testing.T) {
	path := write(t, t.TempDir(), "x.xml", `<robot><suite name="S"><test name="T" id="s1-t1"/></suite></robot>`)
	rec := NewReader().ReadChunk(path)
	require.True(t, rec.Success)
	assert.Equal(t, "UNKNOWN", rec.Status)
	assert.Equal(t, 0, rec.Index)
	assert.Empty(t, rec.Steps)
	assert.Empty(t, rec.Requirements)
}

func TestReadChunks(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "2_B_s1-t2.xml", validChunk)
	write(t, dir, "1_A_s1-t1.xml", validChunk)
	write(t, dir, "3_bad.xml", "not xml")
	write(t, dir, "1_A_s1-t1_log.html", "<html/>")
	write(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	records := NewReader().ReadChunks(dir)
	require.Len(t, records, 3)
	assert.Equal(t, "1_A_s1-t1.xml", filepath.Base(records[0].XMLFile))
	assert.Equal(t, "2_B_s1-t2.xml", filepath.Base(records[1].XMLFile))
	assert.Equal(t, 1, records[0].Index)
	assert.NotEmpty(t, records[0].LogFile)
	assert.Empty(t, records[1].LogFile)
	assert.False(t, records[2].Success)
}

func TestReadChunks_EmptyResults(t *testing.T) {
	file := write(t, t.TempDir(), "plain.xml", validChunk)

	tests := []struct {
		name    string
		folder  string
		wantLog string
	}{
		{name: "missing folder", folder: filepath.Join(t.TempDir(), "absent"), wantLog: "Chunk folder does not exist"},
		{name: "not a directory", folder: file, wantLog: "Chunk path is not a directory"},
		{name: "no xml files", folder: t.TempDir(), wantLog: "No XML files found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			records := NewReader(WithLogger(zap.New(core))).ReadChunks(tt.folder)

			assert.NotNil(t, records)
			assert.Empty(t, records)
			assert.Equal(t, 1, logs.FilterMessage(tt.wantLog).Len())
		})
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "Insert___Update_a_b", SafeName(`Insert / Update a\b`))
	assert.Equal(t, "4_Login_s1-t4", Stem(4, "", "Login", "s1-t4"))
	assert.Equal(t, "4_DB_Open_Close_s1-t4", Stem(4, "DB", "Open Close", "s1-t4"))
	assert.Equal(t, filepath.Join("out", "4_DB_x_s1-t4_log.html"), LogPathFor(filepath.Join("out", "4_DB_x_s1-t4.xml")))
}

func TestRecord_JSON(t *testing.T) {
	dir := t.TempDir()
	bare := `<robot><suite id="s1" name="S"><test id="s1-t1" name="Bare"><status status="PASS"/></test></suite></robot>`
	rec := NewReader().ReadChunk(write(t, dir, "chunk.xml", bare))
	require.True(t, rec.Success)
	require.Zero(t, rec.Index)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.JSONEq(t, `0`, string(fields["index"]))
	assert.JSONEq(t, `{}`, string(fields["steps"]))
	assert.JSONEq(t, `[]`, string(fields["requirements"]))
	assert.JSONEq(t, `true`, string(fields["success"]))
	assert.NotContains(t, fields, "error")
	assert.NotContains(t, fields, "log_file")

	t.Run("steps keep documentation order", func(t *testing.T) {
		rec := NewReader().ReadChunk(write(t, dir, "1_Login_s1-t1.xml", validChunk))
		data, err := json.Marshal(rec)
		require.NoError(t, err)

		var back Record
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, rec.Steps, back.Steps)
		assert.Contains(t, string(data), `"steps":{"Enter credentials":"accepted","Submit":"pass"}`)
	})

	t.Run("failed record carries only file and error", func(t *testing.T) {
		data, err := json.Marshal(failed("x.xml", "No suite element found in XML"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"xml_file":"x.xml","success":false,"error":"No suite element found in XML"}`, string(data))
	})
}

func TestRecord_YAML(t *testing.T) {
	dir := t.TempDir()
	rec := NewReader().ReadChunk(write(t, dir, "1_Login_s1-t1.xml", validChunk))
	require.True(t, rec.Success)

	data, err := yaml.Marshal([]Record{rec, failed("bad.xml", "XML parsing error: eof")})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Enter credentials: accepted")
	assert.NotContains(t, string(data), "expected:")

	var back []Record
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, rec.Steps, back[0].Steps)
	assert.Equal(t, rec.Requirements, back[0].Requirements)
	assert.Equal(t, Record{XMLFile: "bad.xml", Error: "XML parsing error: eof"}, back[1])
}
