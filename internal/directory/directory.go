// Package directory holds the static catalog of well-known AI venture
// capital firms. The seed data is embedded at build time; lookups are
// read-only and safe for concurrent use.
package directory

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"vcscout/internal/domain"
)

//go:embed firms.yaml
var firmsYAML []byte

// Directory is an immutable, ordered catalog of firm records.
type Directory struct {
	firms []domain.Firm
	byKey map[string]int // lowercase key -> index into firms
}

// New loads the embedded firm seed. Seed order is preserved for enumeration.
func New() (*Directory, error) {
	return Parse(firmsYAML)
}

// Parse builds a Directory from YAML seed data.
func Parse(data []byte) (*Directory, error) {
	var seed struct {
		Firms []domain.Firm `yaml:"firms"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse firm seed: %w", err)
	}
	if len(seed.Firms) == 0 {
		return nil, fmt.Errorf("firm seed is empty")
	}

	d := &Directory{
		firms: seed.Firms,
		byKey: make(map[string]int, len(seed.Firms)),
	}
	for i, f := range seed.Firms {
		key := strings.ToLower(strings.TrimSpace(f.Key))
		if key == "" {
			return nil, fmt.Errorf("firm %q has no key", f.Name)
		}
		if _, exists := d.byKey[key]; exists {
			return nil, fmt.Errorf("duplicate firm key: %s", key)
		}
		d.byKey[key] = i
	}
	return d, nil
}

// Get returns the record for key, matched case-insensitively.
func (d *Directory) Get(key string) (domain.Firm, bool) {
	i, ok := d.byKey[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return domain.Firm{}, false
	}
	return d.firms[i], true
}

// Keys returns all firm keys in seed order.
func (d *Directory) Keys() []string {
	keys := make([]string, len(d.firms))
	for i, f := range d.firms {
		keys[i] = f.Key
	}
	return keys
}

// List returns one summary line per firm, in seed order.
func (d *Directory) List() []string {
	lines := make([]string, len(d.firms))
	for i, f := range d.firms {
		lines[i] = fmt.Sprintf("%s: %s - Notable: %s", f.Name, f.Focus, strings.Join(f.Notable, ", "))
	}
	return lines
}

// Describe returns a detail block for the firm, or a not-found message
// naming the requested key and all valid keys.
func (d *Directory) Describe(key string) string {
	f, ok := d.Get(key)
	if !ok {
		return fmt.Sprintf("VC '%s' not found. Available: %s", key, strings.Join(d.Keys(), ", "))
	}
	return fmt.Sprintf("%s\nFocus: %s\nNotable investments: %s", f.Name, f.Focus, strings.Join(f.Notable, ", "))
}
