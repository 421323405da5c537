package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

func samplePlaylist() *Playlist {
	pl := NewPlaylist("/media/music", []string{"a.mp3", "rock/b.mp3", "rock/live/c.mp3"}, true)
	return pl
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"m3u", FormatM3U, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"html", FormatHTML, false},
		{"pls", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("/tmp/list.M3U8")
	assert.True(t, ok)
	assert.Equal(t, FormatM3U, f)

	f, ok = FormatForPath("out.yml")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = FormatForPath("out.txt")
	assert.False(t, ok)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"html", "json", "m3u", "markdown", "yaml"}, Formats())
}

func TestWriteM3U(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlaylist(), FormatM3U))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "#EXTM3U", lines[0])
	assert.Equal(t, "#EXTINF:-1,b.mp3", lines[3])
	assert.Equal(t, filepath.Join("/media/music", "rock", "b.mp3"), lines[4])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlaylist(), FormatJSON))

	var got Playlist
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/media/music", got.Root)
	assert.Equal(t, 3, got.Count)
	assert.True(t, got.Shuffled)
	assert.Equal(t, []string{"a.mp3", "rock/b.mp3", "rock/live/c.mp3"}, got.Paths)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlaylist(), FormatYAML))

	var got map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/media/music", got["root"])
	assert.Equal(t, 3, got["count"])
	assert.Len(t, got["paths"], 3)
}

// TestMarkdownParsesAsOrderedList checks the markdown through goldmark's AST
func TestMarkdownParsesAsOrderedList(t *testing.T) {
	source := []byte(Markdown(samplePlaylist()))
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var items int
	var ordered bool
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.List:
			ordered = node.IsOrdered()
		case *ast.ListItem:
			items++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	assert.True(t, ordered)
	assert.Equal(t, 3, items)
	assert.Contains(t, string(source), "3 files, shuffled")
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, samplePlaylist(), FormatHTML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<ol>")
	assert.Equal(t, 3, strings.Count(out, "<li>"))
	assert.Contains(t, out, "<code>rock/live/c.mp3</code>")
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, samplePlaylist(), Format("pls"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "list.json")
	require.NoError(t, ToFile(context.Background(), target, samplePlaylist(), FormatJSON))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rock/b.mp3"`)
}

func TestEmptyPlaylist(t *testing.T) {
	pl := NewPlaylist("/empty", nil, false)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pl, FormatM3U))
	assert.Equal(t, "#EXTM3U\n", buf.String())
	assert.Contains(t, Markdown(pl), "0 files, scan order")
}
