package genetics

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TraitConfig describes one gene under study.
type TraitConfig struct {
	Name            string
	DominantAllele  rune
	RecessiveAllele rune
	DominantLabel   string
	RecessiveLabel  string
	Color           string
}

var (
	HeightTrait = TraitConfig{
		Name:            "Height",
		DominantAllele:  'T',
		RecessiveAllele: 't',
		DominantLabel:   "Tall",
		RecessiveLabel:  "Dwarf",
		Color:           "#10b981",
	}
	SeedColorTrait = TraitConfig{
		Name:            "Seed Color",
		DominantAllele:  'Y',
		RecessiveAllele: 'y',
		DominantLabel:   "Yellow",
		RecessiveLabel:  "Green",
		Color:           "#eab308",
	}
)

func (t TraitConfig) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTrait)
	}
	if t.DominantAllele == 0 || t.RecessiveAllele == 0 {
		return fmt.Errorf("%w: trait %s requires both allele symbols", ErrInvalidTrait, t.Name)
	}
	if t.DominantAllele == t.RecessiveAllele {
		return fmt.Errorf("%w: trait %s uses %q for both alleles", ErrInvalidTrait, t.Name, t.DominantAllele)
	}
	if strings.TrimSpace(t.DominantLabel) == "" || strings.TrimSpace(t.RecessiveLabel) == "" {
		return fmt.Errorf("%w: trait %s requires both phenotype labels", ErrInvalidTrait, t.Name)
	}
	return nil
}

// HasAllele reports whether r is the dominant or recessive allele of the trait.
func (t TraitConfig) HasAllele(r rune) bool {
	return r == t.DominantAllele || r == t.RecessiveAllele
}

// Heterozygote returns the dominant-then-recessive genotype of the trait.
func (t TraitConfig) Heterozygote() DiploidGenotype {
	return DiploidGenotype{alleles: [Ploidy]rune{t.DominantAllele, t.RecessiveAllele}}
}

type traitJSON struct {
	Name            string `json:"name"`
	DominantAllele  string `json:"dominant_allele"`
	RecessiveAllele string `json:"recessive_allele"`
	DominantLabel   string `json:"dominant_label"`
	RecessiveLabel  string `json:"recessive_label"`
	Color           string `json:"color,omitempty"`
}

func (t TraitConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(traitJSON{
		Name:            t.Name,
		DominantAllele:  string(t.DominantAllele),
		RecessiveAllele: string(t.RecessiveAllele),
		DominantLabel:   t.DominantLabel,
		RecessiveLabel:  t.RecessiveLabel,
		Color:           t.Color,
	})
}

func (t *TraitConfig) UnmarshalJSON(data []byte) error {
	var dto traitJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	dominant, err := AlleleSymbol(dto.DominantAllele)
	if err != nil {
		return err
	}
	recessive, err := AlleleSymbol(dto.RecessiveAllele)
	if err != nil {
		return err
	}
	*t = TraitConfig{
		Name:            dto.Name,
		DominantAllele:  dominant,
		RecessiveAllele: recessive,
		DominantLabel:   dto.DominantLabel,
		RecessiveLabel:  dto.RecessiveLabel,
		Color:           dto.Color,
	}
	return nil
}

// AlleleSymbol parses a single-character allele symbol.
func AlleleSymbol(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: allele symbol %q must be a single character", ErrInvalidTrait, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
