package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewstucki/lnkparse/lnk"
)

// shortcut builds a unicode link carrying a name, its arguments and a
// console code page block.
func shortcut() []byte {
	var buf bytes.Buffer
	write := func(v interface{}) { _ = binary.Write(&buf, binary.LittleEndian, v) }
	counted := func(s string) {
		units := utf16.Encode([]rune(s))
		write(uint16(len(units)))
		write(units)
	}

	write(uint32(lnk.HeaderSize))
	buf.Write(lnk.LinkCLSID[:])
	write(uint32(lnk.HasName | lnk.HasArguments | lnk.IsUnicode))
	write(uint32(lnk.FileAttributeArchive))
	write([3]uint64{0, 0, 132223104000000000})
	write(uint32(4096))
	write(uint32(0))
	write(uint32(lnk.ShowMaximized))
	write(uint16(0))
	buf.Write(make([]byte, 10))

	counted("Build tools")
	counted("--all")

	write(uint32(12))
	write(uint32(lnk.ConsoleFESignature))
	write(uint32(65001))
	write(uint32(0))
	return buf.Bytes()
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LNKPARSE_ENCODING", "utf-8")
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.lnk")
	writeFile(t, path, shortcut())

	stdout, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, path)
	assert.Contains(t, stdout, "Build tools")
	assert.Contains(t, stdout, "--all")
	assert.Contains(t, stdout, "SW_SHOWMAXIMIZED")
	assert.Contains(t, stdout, "2020-01-01T00:00:00Z")
	assert.Contains(t, stdout, "ConsoleFEDataBlock codepage=65001")
}

func TestRootJSONWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.lnk"), shortcut())
	writeFile(t, filepath.Join(dir, "nested", "b.lnk"), shortcut())
	writeFile(t, filepath.Join(dir, "readme.txt"), []byte("not a shortcut"))
	writeFile(t, filepath.Join(dir, "empty.lnk"), nil)

	stdout, _, err := execute(t, "--format", "json", "--workers", "2", dir)
	require.NoError(t, err)

	var files []struct {
		Name string `json:"name"`
		MIME string `json:"mime"`
		LNK  struct {
			Name      string `json:"name"`
			ExtraData []struct {
				Type string `json:"type"`
			} `json:"extraData"`
		} `json:"lnk"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &files))
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.lnk"), files[0].Name)
	assert.Equal(t, filepath.Join(dir, "nested", "b.lnk"), files[1].Name)
	for _, f := range files {
		assert.Equal(t, "application/x-ms-shortcut", f.MIME)
		assert.Equal(t, "Build tools", f.LNK.Name)
		require.Len(t, f.LNK.ExtraData, 1)
		assert.Equal(t, "ConsoleFEDataBlock", f.LNK.ExtraData[0].Type)
	}
}

func TestRootFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lnk")
	text := filepath.Join(dir, "notes.txt")
	truncated := filepath.Join(dir, "truncated.lnk")
	writeFile(t, good, shortcut())
	writeFile(t, text, []byte("plain text"))
	writeFile(t, truncated, shortcut()[:lnk.HeaderSize+5])

	stdout, stderr, err := execute(t, good, text, truncated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files could not be decoded")
	assert.Contains(t, stdout, "Build tools")
	assert.Contains(t, stderr, "Unable to decode '"+text+"': not a shell link (detected text/plain)")
	assert.Contains(t, stderr, "Unable to decode '"+truncated+"'")
}

func TestRootMissingFile(t *testing.T) {
	_, _, err := execute(t, filepath.Join(t.TempDir(), "missing.lnk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRootInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tools.lnk")
	writeFile(t, path, shortcut())

	_, _, err := execute(t, "--format", "yaml", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestRootStrictFlag(t *testing.T) {
	data := shortcut()
	// grow the console FE block past its fixed size
	tail := len(data) - 16
	binary.LittleEndian.PutUint32(data[tail:], 16)
	data = append(data[:tail+12], 0, 0, 0, 0, 0, 0, 0, 0)
	path := filepath.Join(t.TempDir(), "grown.lnk")
	writeFile(t, path, data)

	_, stderr, err := execute(t, path)
	require.Error(t, err)
	assert.Contains(t, stderr, "block size mismatch")

	stdout, _, err := execute(t, "--strict=false", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "ConsoleFEDataBlock codepage=65001")
}
