package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const definitionPattern = "**/*.{yaml,yml}"

type templateSpec struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Category struct {
		Main string `yaml:"main"`
		Sub  string `yaml:"sub"`
	} `yaml:"category"`
	Thumbnail    string    `yaml:"thumbnail"`
	Width        float64   `yaml:"width"`
	Height       float64   `yaml:"height"`
	Description  string    `yaml:"description"`
	Tags         []string  `yaml:"tags"`
	Document     yaml.Node `yaml:"document"`
	DocumentFile string    `yaml:"document_file"`
}

type definitionFile struct {
	Templates []templateSpec `yaml:"templates"`
}

// LoadDir loads every template definition below dir.
func LoadDir(dir string) (*Catalog, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads template definitions from every YAML file in fsys. Files are
// visited in lexical path order; a file holds either one template or a list
// under "templates", and may contain several YAML documents.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	templates, err := ReadDefinitions(fsys)
	if err != nil {
		return nil, err
	}
	return New(templates)
}

func ReadDefinitions(fsys fs.FS) ([]Template, error) {
	files, err := doublestar.Glob(fsys, definitionPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list template definitions: %w", err)
	}
	sort.Strings(files)

	var templates []Template
	for _, file := range files {
		parsed, err := readDefinitionFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		templates = append(templates, parsed...)
	}
	return templates, nil
}

func readDefinitionFile(fsys fs.FS, file string) ([]Template, error) {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	var specs []templateSpec
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}

		var list definitionFile
		if err := node.Decode(&list); err == nil && len(list.Templates) > 0 {
			specs = append(specs, list.Templates...)
			continue
		}

		var single templateSpec
		if err := node.Decode(&single); err != nil {
			return nil, fmt.Errorf("failed to decode template: %w", err)
		}
		if single.ID == "" && single.Name == "" {
			continue
		}
		specs = append(specs, single)
	}

	templates := make([]Template, 0, len(specs))
	for _, spec := range specs {
		doc, err := resolveDocument(fsys, path.Dir(file), spec)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", spec.ID, err)
		}
		templates = append(templates, Template{
			ID:          spec.ID,
			Name:        spec.Name,
			Category:    Category{Main: spec.Category.Main, Sub: spec.Category.Sub},
			Thumbnail:   spec.Thumbnail,
			Width:       spec.Width,
			Height:      spec.Height,
			Document:    doc,
			Description: spec.Description,
			Tags:        spec.Tags,
		})
	}
	return templates, nil
}

func resolveDocument(fsys fs.FS, dir string, spec templateSpec) (json.RawMessage, error) {
	if spec.DocumentFile != "" {
		raw, err := fs.ReadFile(fsys, path.Join(dir, spec.DocumentFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("document file %s is not valid json", spec.DocumentFile)
		}
		return json.RawMessage(raw), nil
	}

	if spec.Document.Kind == 0 {
		return json.RawMessage(`{}`), nil
	}

	var value any
	if err := spec.Document.Decode(&value); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("document is not representable as json: %w", err)
	}
	return raw, nil
}
