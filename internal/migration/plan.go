// Package migration plans moving template images from one storage bucket to
// another and repoints template thumbnails at the new location.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const imagePattern = "**/*.{png,jpg,jpeg,webp,svg,PNG,JPG,JPEG,WEBP,SVG}"

type Tool string

const (
	ToolGsutil Tool = "gsutil"
	ToolAWS    Tool = "aws"
)

var (
	ErrUnknownTool   = errors.New("unknown copy tool")
	ErrMissingPrefix = errors.New("source and destination prefixes are required")
)

func ParseTool(s string) (Tool, error) {
	switch Tool(s) {
	case ToolGsutil, ToolAWS:
		return Tool(s), nil
	}
	return "", fmt.Errorf("%w: %q (want gsutil or aws)", ErrUnknownTool, s)
}

// Item is one image to copy. Path is slash separated and relative to the
// scanned directory.
type Item struct {
	Path   string
	OldURL string
	NewURL string
}

type Plan struct {
	SrcDir string
	Tool   Tool
	Items  []Item
}

// ScanImages lists image files below fsys in lexical order.
func ScanImages(fsys fs.FS) ([]string, error) {
	files, err := doublestar.Glob(fsys, imagePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan images: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func joinURL(prefix, p string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(p, "/")
}

// BuildPlan maps every image path to its old and new storage URL.
func BuildPlan(srcDir string, paths []string, from, to string, tool Tool) (*Plan, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, ErrMissingPrefix
	}
	if _, err := ParseTool(string(tool)); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		p = path.Clean(filepath.ToSlash(p))
		items = append(items, Item{
			Path:   p,
			OldURL: joinURL(from, p),
			NewURL: joinURL(to, p),
		})
	}
	return &Plan{SrcDir: srcDir, Tool: tool, Items: items}, nil
}

// Commands renders one shell-quoted copy command per item, uploading the
// local file to its new URL.
func (p *Plan) Commands() []string {
	cmds := make([]string, len(p.Items))
	for i, item := range p.Items {
		local := shellQuote(filepath.Join(p.SrcDir, filepath.FromSlash(item.Path)))
		dest := shellQuote(item.NewURL)
		switch p.Tool {
		case ToolAWS:
			cmds[i] = "aws s3 cp " + local + " " + dest
		default:
			cmds[i] = "gsutil cp " + local + " " + dest
		}
	}
	return cmds
}

// shellQuote wraps s in single quotes unless it is made only of characters
// that are safe unquoted in a POSIX shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./:=@%+,", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
