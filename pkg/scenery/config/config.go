// Package config loads navigator options from TOML, YAML or JSON files.
//
// Hooks cannot be expressed in a file; attach them to the returned
// scenery.Options in code.
//
//	active_class = "current"
//	data_key = "step"
//	initial_index = 0
//	log_level = "debug"
//
//	[selectors]
//	scene = ".slide"
//	next = ".slide__next"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BrandonKowalski/scenery/pkg/scenery"
	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are not TOML, YAML or JSON.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Selectors mirrors scenery.Selectors.
type Selectors struct {
	Scene string `toml:"scene" yaml:"scene" json:"scene"`
	Next  string `toml:"next" yaml:"next" json:"next"`
	Prev  string `toml:"prev" yaml:"prev" json:"prev"`
	Reset string `toml:"reset" yaml:"reset" json:"reset"`
	Goto  string `toml:"goto" yaml:"goto" json:"goto"`
	Pop   string `toml:"pop" yaml:"pop" json:"pop"`
}

// File is the on-disk navigator configuration.
type File struct {
	ActiveClass  string    `toml:"active_class" yaml:"active_class" json:"active_class"`
	DataKey      string    `toml:"data_key" yaml:"data_key" json:"data_key"`
	InitialIndex int       `toml:"initial_index" yaml:"initial_index" json:"initial_index"`
	LogLevel     string    `toml:"log_level" yaml:"log_level" json:"log_level"`
	Selectors    Selectors `toml:"selectors" yaml:"selectors" json:"selectors"`
}

// Options converts the file into navigator options without hooks.
func (f File) Options() scenery.Options {
	return scenery.Options{
		ActiveClass:  f.ActiveClass,
		DataKey:      f.DataKey,
		InitialIndex: f.InitialIndex,
		Selectors: scenery.Selectors{
			Scene: f.Selectors.Scene,
			Next:  f.Selectors.Next,
			Prev:  f.Selectors.Prev,
			Reset: f.Selectors.Reset,
			Goto:  f.Selectors.Goto,
			Pop:   f.Selectors.Pop,
		},
	}
}

// Load reads a config file, choosing the decoder by extension.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, scenery.NewConfigurationError("load_config", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return DecodeTOML(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	case ".json":
		return DecodeJSON(data)
	default:
		return File{}, scenery.NewConfigurationError("load_config", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path))
	}
}

// DecodeTOML parses TOML config. Unknown keys are an error.
func DecodeTOML(data []byte) (File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, scenery.NewConfigurationError("decode_toml", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, scenery.NewConfigurationError("decode_toml", fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}
	return f, nil
}

// DecodeYAML parses YAML config. Unknown keys are an error.
func DecodeYAML(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, scenery.NewConfigurationError("decode_yaml", err)
	}
	return f, nil
}

// DecodeJSON parses JSON config. Unknown keys are an error.
func DecodeJSON(data []byte) (File, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, scenery.NewConfigurationError("decode_json", err)
	}
	return f, nil
}
