// Package export renders a collection of collected paths as a playlist file.
//
// Supported formats are m3u, json, yaml, markdown and html. The html output is
// the markdown playlist rendered through goldmark. Exports are write-only and
// are never read back by rfopener.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harrison/rfopener/internal/filelock"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// Format names an export encoding.
type Format string

const (
	FormatM3U      Format = "m3u"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat is returned for a format name outside Formats().
var ErrUnknownFormat = errors.New("unknown export format")

var extensions = map[string]Format{
	".m3u":      FormatM3U,
	".m3u8":     FormatM3U,
	".json":     FormatJSON,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	names := []string{string(FormatM3U), string(FormatJSON), string(FormatYAML), string(FormatMarkdown), string(FormatHTML)}
	sort.Strings(names)
	return names
}

// ParseFormat validates a format name (case-insensitive).
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatM3U, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, name, strings.Join(Formats(), ", "))
}

// FormatForPath infers the format from a file extension.
func FormatForPath(p string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(p))]
	return f, ok
}

// Playlist is the exported document.
type Playlist struct {
	Root      string    `json:"root" yaml:"root"`
	Generated time.Time `json:"generated" yaml:"generated"`
	Shuffled  bool      `json:"shuffled" yaml:"shuffled"`
	Count     int       `json:"count" yaml:"count"`
	Paths     []string  `json:"paths" yaml:"paths"`
}

// NewPlaylist builds a Playlist stamped with the current time.
func NewPlaylist(root string, paths []string, shuffled bool) *Playlist {
	return &Playlist{
		Root:      root,
		Generated: time.Now().UTC().Truncate(time.Second),
		Shuffled:  shuffled,
		Count:     len(paths),
		Paths:     paths,
	}
}

// Write encodes pl to w in format f.
func Write(w io.Writer, pl *Playlist, f Format) error {
	switch f {
	case FormatM3U:
		return writeM3U(w, pl)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pl)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pl); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(pl))
		return err
	case FormatHTML:
		return writeHTML(w, pl)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, f)
}

// ToFile writes pl to target atomically under the target's file lock.
func ToFile(ctx context.Context, target string, pl *Playlist, f Format) error {
	return filelock.WriteWith(ctx, target, func(w io.Writer) error {
		return Write(w, pl, f)
	})
}

// writeM3U emits an extended M3U with absolute, platform-native entries.
func writeM3U(w io.Writer, pl *Playlist) error {
	var b strings.Builder
	b.WriteString("#EXTM3U\n")
	for _, p := range pl.Paths {
		fmt.Fprintf(&b, "#EXTINF:-1,%s\n", path.Base(p))
		b.WriteString(filepath.Join(pl.Root, filepath.FromSlash(p)))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown renders pl as a numbered markdown list under a heading.
func Markdown(pl *Playlist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Playlist for `%s`\n\n", pl.Root)
	order := "scan order"
	if pl.Shuffled {
		order = "shuffled"
	}
	fmt.Fprintf(&b, "%d files, %s, generated %s.\n\n", pl.Count, order, pl.Generated.Format(time.RFC3339))
	for i, p := range pl.Paths {
		fmt.Fprintf(&b, "%d. `%s`\n", i+1, strings.ReplaceAll(p, "`", "'"))
	}
	return b.String()
}

func writeHTML(w io.Writer, pl *Playlist) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(pl)), &body); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>rfopener playlist</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
