// internal/defs/loader.go
package defs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrMalformedTemplate is wrapped by every template file parse failure.
var ErrMalformedTemplate = errors.New("malformed template")

// ErrMalformedCatalog is wrapped by every catalog document failure.
var ErrMalformedCatalog = errors.New("malformed template catalog")

// MaxHeightMapSide bounds the declared width and height of a height map.
const MaxHeightMapSide = 1024

// LoadTemplateCatalog reads the catalog document at path and every template
// file it references. Template paths resolve against <catalog dir>/<folder>/.
func LoadTemplateCatalog(catalogPath string) (*Catalog, error) {
	dir, name := filepath.Split(catalogPath)
	if dir == "" {
		dir = "."
	}
	return LoadTemplateCatalogFS(os.DirFS(dir), name)
}

// LoadTemplateCatalogFS is LoadTemplateCatalog over an fs.FS.
//
// Document shape:
//
//	towers:
//	  pillar: pillar.txt
//	  arch: arch.txt
//	walls:
//	  long_wall: long.txt
//
// Order in the document is the match order.
func LoadTemplateCatalogFS(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog %s: %w", name, err)
	}

	entries, err := parseCatalogDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	base := path.Dir(name)
	templates := make([]Template, 0, len(entries))
	for _, e := range entries {
		file := path.Join(base, e.folder, e.path)
		if !fs.ValidPath(file) {
			return nil, fmt.Errorf("%s: template %s/%s: path %q escapes catalog root: %w",
				name, e.folder, e.alias, e.path, ErrMalformedCatalog)
		}
		heights, err := readTemplateFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("template %s/%s: %w", e.folder, e.alias, err)
		}
		templates = append(templates, Template{
			Folder:  e.folder,
			Alias:   e.alias,
			Path:    e.path,
			Heights: heights,
		})
	}

	return NewCatalog(templates...), nil
}

type catalogEntry struct {
	folder, alias, path string
}

// parseCatalogDocument walks the YAML node tree so mapping order survives.
func parseCatalogDocument(data []byte) ([]catalogEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document: %w", ErrMalformedCatalog)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must map folder names to templates: %w", root.Line, ErrMalformedCatalog)
	}

	var entries []catalogEntry
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		folderNode, aliases := root.Content[i], root.Content[i+1]
		folder := folderNode.Value
		if aliases.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: folder %q must map aliases to file paths: %w", aliases.Line, folder, ErrMalformedCatalog)
		}
		for j := 0; j+1 < len(aliases.Content); j += 2 {
			aliasNode, pathNode := aliases.Content[j], aliases.Content[j+1]
			if pathNode.Kind != yaml.ScalarNode || pathNode.Value == "" {
				return nil, fmt.Errorf("line %d: %s/%s needs a file path: %w", pathNode.Line, folder, aliasNode.Value, ErrMalformedCatalog)
			}
			key := folder + "/" + aliasNode.Value
			if seen[key] {
				return nil, fmt.Errorf("line %d: duplicate template %s: %w", aliasNode.Line, key, ErrMalformedCatalog)
			}
			seen[key] = true
			entries = append(entries, catalogEntry{folder: folder, alias: aliasNode.Value, path: pathNode.Value})
		}
	}
	return entries, nil
}

func readTemplateFile(fsys fs.FS, name string) (HeightMap, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	hm, err := ParseHeightMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return hm, nil
}

// ParseHeightMap reads the plain-text height-map format: width, height, then
// height*width non-negative integers in row-major order.
func ParseHeightMap(r io.Reader) (HeightMap, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("unexpected end of file reading %s: %w", what, ErrMalformedTemplate)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%s %q is not an integer: %w", what, sc.Text(), ErrMalformedTemplate)
		}
		return v, nil
	}

	width, err := next("width")
	if err != nil {
		return nil, err
	}
	height, err := next("height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("dimensions %dx%d must be positive: %w", width, height, ErrMalformedTemplate)
	}
	if width > MaxHeightMapSide || height > MaxHeightMapSide {
		return nil, fmt.Errorf("dimensions %dx%d exceed %d: %w", width, height, MaxHeightMapSide, ErrMalformedTemplate)
	}

	// строки выделяются по мере чтения, короткий файл не раздувает память
	hm := make(HeightMap, 0, min(height, 64))
	for i := 0; i < height; i++ {
		row := make([]int, 0, min(width, 64))
		for j := 0; j < width; j++ {
			v, err := next(fmt.Sprintf("cell [%d][%d]", i, j))
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("cell [%d][%d] is negative: %w", i, j, ErrMalformedTemplate)
			}
			row = append(row, v)
		}
		hm = append(hm, row)
	}
	if sc.Scan() {
		return nil, fmt.Errorf("trailing data %q after %dx%d cells: %w", sc.Text(), width, height, ErrMalformedTemplate)
	}
	return hm, sc.Err()
}
