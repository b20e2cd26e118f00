// Package traits holds the catalog of genes a cross can be run against.
package traits

import (
	"fmt"
	"strings"

	"punnettlab/internal/genetics"
)

// Catalog stores traits in registration order with case-insensitive lookup.
type Catalog struct {
	order  []string
	traits map[string]genetics.TraitConfig
}

func NewCatalog() *Catalog {
	return &Catalog{traits: make(map[string]genetics.TraitConfig)}
}

// Default returns the built-in Height and Seed Color traits.
func Default() *Catalog {
	c := NewCatalog()
	_ = c.Add(genetics.HeightTrait)
	_ = c.Add(genetics.SeedColorTrait)
	return c
}

// Add validates and registers a trait, replacing any trait with the same name.
func (c *Catalog) Add(trait genetics.TraitConfig) error {
	if err := trait.Validate(); err != nil {
		return err
	}
	key := catalogKey(trait.Name)
	if _, exists := c.traits[key]; !exists {
		c.order = append(c.order, key)
	}
	c.traits[key] = trait
	return nil
}

func (c *Catalog) Lookup(name string) (genetics.TraitConfig, bool) {
	if c == nil {
		return genetics.TraitConfig{}, false
	}
	trait, ok := c.traits[catalogKey(name)]
	return trait, ok
}

// Get is Lookup with an error naming the known traits.
func (c *Catalog) Get(name string) (genetics.TraitConfig, error) {
	trait, ok := c.Lookup(name)
	if !ok {
		return genetics.TraitConfig{}, fmt.Errorf("unknown trait %q (known: %s)", name, strings.Join(c.Names(), ", "))
	}
	return trait, nil
}

func (c *Catalog) List() []genetics.TraitConfig {
	if c == nil {
		return nil
	}
	out := make([]genetics.TraitConfig, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.traits[key])
	}
	return out
}

func (c *Catalog) Names() []string {
	list := c.List()
	names := make([]string, len(list))
	for i, trait := range list {
		names[i] = trait.Name
	}
	return names
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Merge overlays other onto c. Traits with matching names are replaced in place.
func (c *Catalog) Merge(other *Catalog) {
	for _, trait := range other.List() {
		_ = c.Add(trait)
	}
}

// DefaultParents returns the heterozygous pair selected when a trait becomes active.
func DefaultParents(trait genetics.TraitConfig) (string, string) {
	g := trait.Heterozygote().String()
	return g, g
}

func catalogKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
