package traits

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"punnettlab/internal/genetics"
)

// YAMLCatalog is the on-disk shape of a trait catalog file.
type YAMLCatalog struct {
	Traits []YAMLTrait `yaml:"traits"`
}

type YAMLTrait struct {
	Name            string `yaml:"name"`
	DominantAllele  string `yaml:"dominant_allele"`
	RecessiveAllele string `yaml:"recessive_allele"`
	DominantLabel   string `yaml:"dominant_label"`
	RecessiveLabel  string `yaml:"recessive_label"`
	Color           string `yaml:"color"`
}

func LoadFile(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := KindUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			kind = KindNotFound
		}
		return nil, &OpError{Op: "traits.load_file", Kind: kind, Path: path, Err: err}
	}

	var dto YAMLCatalog
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, &OpError{Op: "traits.load_file", Kind: KindInvalidConfig, Path: path, Err: err}
	}

	catalog, err := MapCatalog(dto)
	if err != nil {
		return nil, &OpError{Op: "traits.load_file", Kind: KindInvalidConfig, Path: path, Err: err}
	}
	return catalog, nil
}

// MapCatalog converts a decoded file into a validated catalog.
func MapCatalog(dto YAMLCatalog) (*Catalog, error) {
	if len(dto.Traits) == 0 {
		return nil, fmt.Errorf("catalog defines no traits")
	}

	catalog := NewCatalog()
	for i, t := range dto.Traits {
		trait, err := mapTrait(t)
		if err != nil {
			return nil, fmt.Errorf("traits[%d]: %w", i, err)
		}
		if _, dup := catalog.Lookup(trait.Name); dup {
			return nil, fmt.Errorf("traits[%d]: duplicate trait %q", i, trait.Name)
		}
		if err := catalog.Add(trait); err != nil {
			return nil, fmt.Errorf("traits[%d]: %w", i, err)
		}
	}
	return catalog, nil
}

func mapTrait(t YAMLTrait) (genetics.TraitConfig, error) {
	dominant, err := genetics.AlleleSymbol(t.DominantAllele)
	if err != nil {
		return genetics.TraitConfig{}, err
	}
	recessive, err := genetics.AlleleSymbol(t.RecessiveAllele)
	if err != nil {
		return genetics.TraitConfig{}, err
	}
	return genetics.TraitConfig{
		Name:            t.Name,
		DominantAllele:  dominant,
		RecessiveAllele: recessive,
		DominantLabel:   t.DominantLabel,
		RecessiveLabel:  t.RecessiveLabel,
		Color:           t.Color,
	}, nil
}
