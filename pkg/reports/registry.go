package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Package reports holds the custom report presets the exporter runs.

// Preset is a named custom report definition declared in config files.
type Preset struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Fields      []string `json:"fields" yaml:"fields"`
	Enabled     *bool    `json:"enabled" yaml:"enabled"`
	OnlyCurrent *bool    `json:"only_current" yaml:"only_current"`
}

// configFile represents the structure of the reports configuration file.
type configFile struct {
	Reports []Preset `json:"reports" yaml:"reports"`
}

// Registry materializes report presets loaded from config files.
type Registry struct {
	mu      sync.RWMutex
	presets []Preset
	idx     map[string]Preset
}

// LoadRegistry loads the report preset registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("reports file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reports file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read reports file: %w", err)
	}

	return ParseRegistry(raw, filepath.Ext(path))
}

// ParseRegistry decodes the reports file content into a Registry.
func ParseRegistry(raw []byte, ext string) (*Registry, error) {
	fileReg, err := decodeRegistry(raw, ext)
	if err != nil {
		return nil, err
	}
	if len(fileReg.Reports) == 0 {
		return nil, errors.New("reports file contains no reports entries")
	}

	reg := &Registry{
		presets: make([]Preset, len(fileReg.Reports)),
		idx:     make(map[string]Preset, len(fileReg.Reports)),
	}

	for i := range fileReg.Reports {
		preset := sanitizePreset(fileReg.Reports[i])
		if err := validatePreset(preset); err != nil {
			return nil, fmt.Errorf("reports[%d]: %w", i, err)
		}
		if _, exists := reg.idx[preset.ID]; exists {
			return nil, fmt.Errorf("duplicate report id %q", preset.ID)
		}
		reg.presets[i] = preset
		reg.idx[preset.ID] = preset
	}

	return reg, nil
}

// decodeRegistry attempts to decode the reports file content.
func decodeRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return configFile{}, errors.New("reports file format not recognized (expected YAML or JSON)")
}

// sanitizePreset trims and normalizes the preset fields.
func sanitizePreset(p Preset) Preset {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		p.Title = p.ID
	}

	fields := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	p.Fields = fields

	if p.Enabled == nil {
		def := true
		p.Enabled = &def
	}
	if p.OnlyCurrent == nil {
		def := true
		p.OnlyCurrent = &def
	}

	return p
}

// validatePreset checks that required fields are present.
func validatePreset(p Preset) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if len(p.Fields) == 0 {
		return fmt.Errorf("fields are required for report %q", p.ID)
	}
	return nil
}

// ByID returns the preset by id.
func (r *Registry) ByID(id string) (Preset, bool) {
	if r == nil {
		return Preset{}, false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return Preset{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	preset, ok := r.idx[id]
	return preset, ok
}

// All returns all configured presets.
func (r *Registry) All() []Preset {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Preset, len(r.presets))
	copy(out, r.presets)
	return out
}

// Enabled returns presets that are enabled.
func (r *Registry) Enabled() []Preset {
	if r == nil {
		return nil
	}

	all := r.All()
	if len(all) == 0 {
		return nil
	}

	out := make([]Preset, 0, len(all))
	for _, preset := range all {
		if preset.EnabledValue() {
			out = append(out, preset)
		}
	}
	return out
}

// EnabledValue returns the enabled flag defaulting to true.
func (p Preset) EnabledValue() bool {
	if p.Enabled == nil {
		return true
	}
	return *p.Enabled
}

// OnlyCurrentValue returns the only_current flag defaulting to true.
func (p Preset) OnlyCurrentValue() bool {
	if p.OnlyCurrent == nil {
		return true
	}
	return *p.OnlyCurrent
}
