package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBackCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWriter_WriteSimpleCSV(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV("out.csv",
		[]string{"a", "b"},
		[][]string{{"1", "2"}, {"3", "4"}})
	require.NoError(t, err)

	rows := readBackCSV(t, filepath.Join(dir, "out.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestCSVWriter_BOMPrefix(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV("bom.csv", []string{"x"}, nil))

	data, err := os.ReadFile(filepath.Join(dir, "bom.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\xef\xbb\xbf"))
}

func TestCSVWriter_Append(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV("rows.csv", []string{"n"}, [][]string{{"1"}}))
	require.NoError(t, writer.WriteCSV("rows.csv", WriteOptions{
		Records: [][]string{{"2"}},
		Append:  true,
	}))

	rows := readBackCSV(t, filepath.Join(dir, "rows.csv"))
	assert.Len(t, rows, 3)
}

func TestCSVWriter_CreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	require.NoError(t, writer.WriteSimpleCSV(filepath.Join("nested", "deep", "out.csv"), []string{"x"}, nil))

	_, err := os.Stat(filepath.Join(dir, "nested", "deep", "out.csv"))
	assert.NoError(t, err)
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	sw, err := writer.CreateStreamWriter("stream.csv", []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, sw.WriteRow([]string{"1", "2"}))
	require.NoError(t, sw.WriteRow([]string{"3", "4"}))
	require.NoError(t, sw.Close())

	rows := readBackCSV(t, filepath.Join(dir, "stream.csv"))
	assert.Len(t, rows, 3)
}
