// Package zone loads the city map: keyed districts with tags, danger
// ratings, risk sub-scores, and street encounter tables.
package zone

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

//go:embed zones.yaml
var defaultZonesYAML []byte

// Risk holds a zone's per-concern risk sub-scores.
type Risk struct {
	Violence          int `yaml:"violence"`
	Masquerade        int `yaml:"masquerade"`
	SecondInquisition int `yaml:"second_inquisition"`
	Occult            int `yaml:"occult"`
}

// Encounter is one entry of a zone's street encounter table.
type Encounter struct {
	Text     string   `yaml:"text"`
	Severity int      `yaml:"severity"`
	Tags     []string `yaml:"tags"`
}

// Zone is one district of the city.
type Zone struct {
	Key        string      `yaml:"key"`
	Name       string      `yaml:"name"`
	Tags       []string    `yaml:"tags"`
	Danger     int         `yaml:"danger"`
	Risk       Risk        `yaml:"risk"`
	Encounters []Encounter `yaml:"encounters"`
}

// HasTag reports whether the zone carries the named tag.
func (z Zone) HasTag(tag string) bool {
	for _, t := range z.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Registry is a keyed zone catalog.
type Registry struct {
	zones      map[string]Zone
	keys       []string
	defaultKey string
}

type zoneFile struct {
	Default string `yaml:"default"`
	Zones   []Zone `yaml:"zones"`
}

// NewRegistry parses a YAML zone catalog.
func NewRegistry(data []byte) (*Registry, error) {
	var file zoneFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse zone catalog: %w", err)
	}
	if len(file.Zones) == 0 {
		return nil, fmt.Errorf("zone catalog is empty")
	}
	r := &Registry{zones: make(map[string]Zone, len(file.Zones))}
	for _, z := range file.Zones {
		key := strings.ToLower(z.Key)
		if key == "" {
			return nil, fmt.Errorf("zone %q has no key", z.Name)
		}
		z.Key = key
		r.zones[key] = z
	}
	for key := range r.zones {
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	r.defaultKey = strings.ToLower(file.Default)
	if _, ok := r.zones[r.defaultKey]; !ok {
		r.defaultKey = r.keys[0]
	}
	return r, nil
}

// DefaultRegistry loads the embedded city map.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(defaultZonesYAML)
}

// Get looks up a zone by key.
func (r *Registry) Get(key string) (Zone, error) {
	z, ok := r.zones[strings.ToLower(key)]
	if !ok {
		return Zone{}, errors.WithMetadata(errors.CodeZoneNotFound,
			fmt.Sprintf("unknown zone %q", key),
			map[string]string{"zone": key})
	}
	return z, nil
}

// Keys returns the zone keys in sorted order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// DefaultZone returns the registry's fallback zone.
func (r *Registry) DefaultZone() Zone {
	return r.zones[r.defaultKey]
}
