package migration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const definitionPattern = "**/*.{yaml,yml}"

// Rewrite reports the thumbnails changed in one definition file.
type Rewrite struct {
	File    string
	Changed int
}

// RewriteThumbnails replaces the from prefix with to in every "thumbnail"
// value of the template definitions below dir. With dryRun set, files are
// left untouched and only the report is produced.
func RewriteThumbnails(dir, from, to string, dryRun bool) ([]Rewrite, error) {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil, ErrMissingPrefix
	}

	files, err := doublestar.Glob(os.DirFS(dir), definitionPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list template definitions: %w", err)
	}
	sort.Strings(files)

	var report []Rewrite
	for _, file := range files {
		full := filepath.Join(dir, filepath.FromSlash(file))
		raw, err := os.ReadFile(full)
		if err != nil {
			return nil, err
		}

		out, changed, err := rewriteDocument(raw, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if changed == 0 {
			continue
		}
		report = append(report, Rewrite{File: file, Changed: changed})
		if dryRun {
			continue
		}
		if err := os.WriteFile(full, out, 0o644); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
	}
	return report, nil
}

func rewriteDocument(raw []byte, from, to string) ([]byte, int, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	var docs []*yaml.Node
	changed := 0
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse yaml: %w", err)
		}
		changed += rewriteNode(&doc, from, to)
		docs = append(docs, &doc)
	}
	if changed == 0 {
		return raw, 0, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, 0, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), changed, nil
}

func rewriteNode(n *yaml.Node, from, to string) int {
	changed := 0
	if n.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Value == "thumbnail" && val.Kind == yaml.ScalarNode && strings.HasPrefix(val.Value, from) {
				val.Value = to + strings.TrimPrefix(val.Value, from)
				changed++
				continue
			}
			changed += rewriteNode(val, from, to)
		}
		return changed
	}
	for _, child := range n.Content {
		changed += rewriteNode(child, from, to)
	}
	return changed
}
