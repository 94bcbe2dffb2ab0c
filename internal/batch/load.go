package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pelletier/go-toml/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported job file format")
	ErrNoMatch           = errors.New("pattern matched no files")
)

// MaxFileSize bounds a decompressed job file
const MaxFileSize = 16 << 20

// Load reads a job file. The format follows the extension: .json, .yaml,
// .yml or .toml, optionally followed by .gz or .zst.
func Load(path string) (*File, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}

	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range f.Jobs {
		f.Jobs[i].Source = path
	}
	return f, nil
}

// Parse decodes and validates a job file in the given format (json, yaml or
// toml). YAML and TOML documents are normalised to JSON first so all three
// share one decoding path.
func Parse(data []byte, format string) (*File, error) {
	if format != "json" {
		var doc interface{}
		switch format {
		case "yaml":
			if err := yaml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("yaml: %w", err)
			}
		case "toml":
			if err := toml.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("toml: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
		}

		normalized, err := normalize(doc)
		if err != nil {
			return nil, err
		}
		if data, err = sonic.Marshal(normalized); err != nil {
			return nil, fmt.Errorf("normalise %s: %w", format, err)
		}
	}

	var f File
	if err := sonic.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func readFile(path string) ([]byte, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	var r io.Reader = file
	name := strings.ToLower(path)
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, "", fmt.Errorf("%s: gzip: %w", path, err)
		}
		defer gz.Close()
		r, name = gz, strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, "", fmt.Errorf("%s: zstd: %w", path, err)
		}
		defer zr.Close()
		r, name = zr, strings.TrimSuffix(name, ".zst")
	}

	format, err := formatOf(name)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, "", fmt.Errorf("%s: larger than %d bytes", path, MaxFileSize)
	}
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), format, nil
}

func formatOf(name string) (string, error) {
	switch filepath.Ext(name) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// normalize rewrites decoded YAML/TOML into values JSON can carry:
// non-string map keys become strings and infinities become "inf"/"-inf".
func normalize(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[fmt.Sprint(k)] = n
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			n, err := normalize(val)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case float64:
		switch {
		case math.IsNaN(t):
			return nil, errors.New("NaN is not a valid value")
		case math.IsInf(t, 1):
			return "inf", nil
		case math.IsInf(t, -1):
			return "-inf", nil
		}
	}
	return v, nil
}

// Expand resolves file names and doublestar globs ("jobs/**/*.yaml") into a
// de-duplicated list of files, in pattern order with each pattern's matches
// sorted. A pattern that matches nothing is an error.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
		}

		sort.Strings(matches)
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}
