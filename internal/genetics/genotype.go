package genetics

import "strings"

// Ploidy is the number of alleles a monohybrid genotype carries.
const Ploidy = 2

// Combine joins two alleles into their canonical genotype string. Alleles are ordered
// by code point, which places an uppercase symbol before its lowercase counterpart.
func Combine(a, b rune) string {
	if b < a {
		a, b = b, a
	}
	return string([]rune{a, b})
}

// DiploidGenotype is a genotype known to hold exactly two alleles. The zero value is
// not valid; build one with ParseGenotype or ParseGenotypeFor.
type DiploidGenotype struct {
	alleles [Ploidy]rune
}

// ParseGenotype validates the allele count of s. Allele order is preserved, so the
// gametes of "tT" are 't' then 'T'.
func ParseGenotype(s string) (DiploidGenotype, error) {
	runes := []rune(s)
	if len(runes) != Ploidy {
		return DiploidGenotype{}, &GenotypeError{Genotype: s, Length: len(runes)}
	}
	return DiploidGenotype{alleles: [Ploidy]rune{runes[0], runes[1]}}, nil
}

// ParseGenotypeFor validates s and checks both alleles belong to trait.
func ParseGenotypeFor(s string, trait TraitConfig) (DiploidGenotype, error) {
	g, err := ParseGenotype(s)
	if err != nil {
		return DiploidGenotype{}, err
	}
	for _, allele := range g.alleles {
		if !trait.HasAllele(allele) {
			return DiploidGenotype{}, &AlleleError{Allele: allele, Trait: trait.Name}
		}
	}
	return g, nil
}

// MustParseGenotype is ParseGenotype for literals known to be valid.
func MustParseGenotype(s string) DiploidGenotype {
	g, err := ParseGenotype(s)
	if err != nil {
		panic(err)
	}
	return g
}

func (g DiploidGenotype) String() string {
	return string(g.alleles[:])
}

// Canonical returns the genotype with its alleles in canonical order.
func (g DiploidGenotype) Canonical() string {
	return Combine(g.alleles[0], g.alleles[1])
}

func (g DiploidGenotype) Alleles() [Ploidy]rune {
	return g.alleles
}

// Gametes returns the single-allele gametes in genotype order.
func (g DiploidGenotype) Gametes() [Ploidy]string {
	return [Ploidy]string{string(g.alleles[0]), string(g.alleles[1])}
}

type Zygosity string

const (
	HomozygousDominant  Zygosity = "homozygous_dominant"
	HomozygousRecessive Zygosity = "homozygous_recessive"
	Heterozygous        Zygosity = "heterozygous"
)

// ZygosityOf classifies a canonical genotype against a trait. Anything that is not two
// copies of one trait allele counts as heterozygous.
func ZygosityOf(genotype string, trait TraitConfig) Zygosity {
	switch genotype {
	case Combine(trait.DominantAllele, trait.DominantAllele):
		return HomozygousDominant
	case Combine(trait.RecessiveAllele, trait.RecessiveAllele):
		return HomozygousRecessive
	default:
		return Heterozygous
	}
}

func (z Zygosity) Label() string {
	words := strings.Split(string(z), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
