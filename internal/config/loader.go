package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/1broseidon/winstate/internal/appdata"
	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // top-level key -> file position
	File    string            // loaded file, empty when defaults were used
}

func DefaultConfigPath() (string, error) {
	return appdata.ConfigPath()
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources reads the standard location and keeps per-key sources.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path and layers it over the defaults. A missing file is
// not an error.
func LoadFromPath(path string) (*LoadResult, error) {
	raw := RawConfig{}
	sources := map[string]Source{}
	loaded := ""

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read: %w", path, err)
		}
		if err := decodeStrict(data, &raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		srcs, err := keySources(path, data)
		if err != nil {
			return nil, err
		}
		sources = srcs
		loaded = path
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err != nil {
		return nil, attachSourceContext(err, sources)
	}
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}

	return &LoadResult{
		Config:  cfg,
		Sources: sources,
		File:    loaded,
	}, nil
}

// Explain returns the effective value of a top-level key and where it came from.
func Explain(res *LoadResult, key string) (any, Source, error) {
	node := yaml.Node{}
	if err := node.Encode(res.Config); err != nil {
		return nil, Source{}, err
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != key {
			continue
		}
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, Source{}, err
		}
		return value, res.SourceOf(key), nil
	}
	return nil, Source{}, fmt.Errorf("unknown config key %q", key)
}

// SourceOf reports where a top-level key got its value.
func (r *LoadResult) SourceOf(key string) Source {
	if src, ok := r.Sources[key]; ok {
		return src
	}
	return Source{Kind: SourceDefault}
}

func decodeStrict(data []byte, out *RawConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func keySources(path string, data []byte) (map[string]Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sources := map[string]Source{}
	if len(doc.Content) == 0 {
		return sources, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return sources, nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		val := root.Content[i+1]
		sources[key.Value] = Source{
			Kind:   SourceFile,
			File:   path,
			Line:   val.Line,
			Column: val.Column,
		}
	}
	return sources, nil
}

func attachSourceContext(err error, sources map[string]Source) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil {
		return err
	}
	if verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", path, err)
}
