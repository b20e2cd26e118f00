package genetics

import (
	"strconv"
	"strings"
)

// Entry is one label of a distribution.
type Entry struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Distribution lists entries in the order their labels first appear in the grid.
type Distribution []Entry

// Stats holds the offspring distributions of one cross.
type Stats struct {
	Genotypes  Distribution `json:"genotypes"`
	Phenotypes Distribution `json:"phenotypes"`
}

// Analyze tallies a grid using simple dominance with the permissive fallback.
func Analyze(grid [Ploidy][Ploidy]string, trait TraitConfig) Stats {
	stats, _ := Resolver{Policy: PolicyPermissive}.Analyze(grid, trait)
	return stats
}

// Analyze tallies a grid, resolving phenotypes under the resolver's policy.
func (r Resolver) Analyze(grid [Ploidy][Ploidy]string, trait TraitConfig) (Stats, error) {
	var genotypes, phenotypes tally
	for _, row := range grid {
		for _, genotype := range row {
			phenotype, err := r.Resolve(genotype, trait)
			if err != nil {
				return Stats{}, err
			}
			genotypes.add(genotype)
			phenotypes.add(phenotype)
		}
	}
	return Stats{
		Genotypes:  genotypes.distribution(),
		Phenotypes: phenotypes.distribution(),
	}, nil
}

type tally struct {
	order  []string
	counts map[string]int
	total  int
}

func (t *tally) add(label string) {
	if t.counts == nil {
		t.counts = make(map[string]int)
	}
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label]++
	t.total++
}

func (t *tally) distribution() Distribution {
	out := make(Distribution, 0, len(t.order))
	for _, label := range t.order {
		count := t.counts[label]
		out = append(out, Entry{
			Label:   label,
			Count:   count,
			Percent: float64(count) / float64(t.total) * 100,
		})
	}
	return out
}

// Count returns the count recorded for label, or zero.
func (d Distribution) Count(label string) int {
	for _, e := range d {
		if e.Label == label {
			return e.Count
		}
	}
	return 0
}

func (d Distribution) Total() int {
	total := 0
	for _, e := range d {
		total += e.Count
	}
	return total
}

// Ratio renders counts in entry order, e.g. "1:2:1".
func (d Distribution) Ratio() string {
	parts := make([]string, len(d))
	for i, e := range d {
		parts[i] = strconv.Itoa(e.Count)
	}
	return strings.Join(parts, ":")
}
