package output

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(f func()) string {
	old := os.Stdout
	oldColor := color.Output
	r, w, _ := os.Pipe()
	os.Stdout = w
	color.Output = w

	f()

	w.Close()
	os.Stdout = old
	color.Output = oldColor

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestSuccess(t *testing.T) {
	out := captureStdout(func() {
		Success("Test successful")
	})

	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "Test successful")
}

func TestSuccess_WithFormatting(t *testing.T) {
	out := captureStdout(func() {
		Success("Created %d items in %s", 5, "store")
	})

	assert.Contains(t, out, "Created 5 items in store")
}

func TestError(t *testing.T) {
	out := captureStderr(func() {
		Error("Failed to connect to %s on port %d", "server", 8080)
	})

	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "Failed to connect to server on port 8080")
}

func TestInfo(t *testing.T) {
	out := captureStdout(func() {
		Info("Processing %d of %d scripts", 5, 10)
	})

	assert.Contains(t, out, "Processing 5 of 10 scripts")
	assert.NotContains(t, out, "✓")
	assert.NotContains(t, out, "✗")
}

func TestWarn(t *testing.T) {
	out := captureStdout(func() {
		Warn("Token expires in %d minutes", 5)
	})

	assert.Contains(t, out, "⚠")
	assert.Contains(t, out, "Token expires in 5 minutes")
}

func TestJSON_Simple(t *testing.T) {
	data := map[string]interface{}{
		"name":  "test",
		"count": 42,
	}

	out := captureStdout(func() {
		err := JSON(data)
		assert.NoError(t, err)
	})

	var parsed map[string]interface{}
	err := json.Unmarshal([]byte(out), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "test", parsed["name"])
	assert.Equal(t, float64(42), parsed["count"])
}

func TestJSON_Indented(t *testing.T) {
	data := map[string]interface{}{
		"user": map[string]interface{}{
			"name": "alice",
			"id":   123,
		},
	}

	out := captureStdout(func() {
		err := JSON(data)
		assert.NoError(t, err)
	})

	assert.Contains(t, out, "  \"user\":")
	assert.Contains(t, out, "    \"name\":")
}

func TestJSON_Struct(t *testing.T) {
	type project struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
		Count   int    `json:"count"`
	}

	out := captureStdout(func() {
		err := JSON(project{Name: "etl-nightly", Enabled: true, Count: 100})
		assert.NoError(t, err)
	})

	var parsed project
	err := json.Unmarshal([]byte(out), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "etl-nightly", parsed.Name)
	assert.True(t, parsed.Enabled)
	assert.Equal(t, 100, parsed.Count)
}

func TestNewTable(t *testing.T) {
	headers := []string{"Name", "Status", "Owner"}
	table := NewTable(headers)

	require.NotNil(t, table)
	assert.Equal(t, headers, table.headers)
	assert.Empty(t, table.rows)
}

func TestTable_AddRow(t *testing.T) {
	table := NewTable([]string{"Col1", "Col2"})

	table.AddRow([]string{"val1", "val2"})
	table.AddRow([]string{"val3", "val4"})

	assert.Len(t, table.rows, 2)
	assert.Equal(t, []string{"val1", "val2"}, table.rows[0])
	assert.Equal(t, []string{"val3", "val4"}, table.rows[1])
}

func TestTable_Render_Empty(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable([]string{"Name", "Status"})
	table.out = &buf

	table.Render()

	assert.Contains(t, buf.String(), "Name")
	assert.Contains(t, buf.String(), "Status")
	assert.Contains(t, buf.String(), "----")
}

func TestTable_Render_WithRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable([]string{"ID", "Name", "Status"})
	table.out = &buf
	table.AddRow([]string{"1", "warehouse-sync", "Active"})
	table.AddRow([]string{"2", "audit-export", "Inactive"})

	table.Render()

	out := buf.String()
	for _, want := range []string{"ID", "Name", "Status", "----", "warehouse-sync", "Active", "audit-export", "Inactive"} {
		assert.Contains(t, out, want)
	}
}

func TestTable_Render_ColumnAlignment(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable([]string{"Short", "VeryLongHeader"})
	table.out = &buf
	table.AddRow([]string{"A", "B"})
	table.AddRow([]string{"LongValue", "C"})

	table.Render()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	// widths come from the widest cell, so the separator under the first
	// column spans len("LongValue")
	assert.Contains(t, lines[1], strings.Repeat("-", len("LongValue")))
	assert.Contains(t, lines[2], "A")
	assert.Contains(t, lines[3], "LongValue")
}

func TestTable_Render_RowWiderThanHeaders(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable([]string{"Name"})
	table.out = &buf
	table.AddRow([]string{"only", "extra"})

	table.Render()

	// cells beyond the header count are dropped
	assert.Contains(t, buf.String(), "only")
	assert.NotContains(t, buf.String(), "extra")
}
