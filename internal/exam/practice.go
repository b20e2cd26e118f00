package exam

import (
	"fmt"
	"strings"

	"punnettlab/internal/genetics"
)

// Practice is an ungraded quick quiz: name the offspring genotype of one cross.
type Practice struct {
	Trait   genetics.TraitConfig `json:"trait"`
	Parent1 string               `json:"parent1"`
	Parent2 string               `json:"parent2"`
	Options []string             `json:"options"`
}

type Feedback struct {
	Answer   string   `json:"answer,omitempty"`
	Skipped  bool     `json:"skipped"`
	Correct  bool     `json:"correct"`
	Expected []string `json:"expected"`
	Message  string   `json:"message"`
}

// NewPractice builds a quiz for p1 x p2. Both parents must use the trait's alleles.
func NewPractice(trait genetics.TraitConfig, p1, p2 string) (Practice, error) {
	if err := trait.Validate(); err != nil {
		return Practice{}, err
	}
	for _, parent := range []string{p1, p2} {
		if _, err := genetics.ParseGenotypeFor(parent, trait); err != nil {
			return Practice{}, err
		}
	}
	dom, rec := trait.DominantAllele, trait.RecessiveAllele
	return Practice{
		Trait:   trait,
		Parent1: p1,
		Parent2: p2,
		Options: []string{genetics.Combine(dom, dom), genetics.Combine(dom, rec), genetics.Combine(rec, rec)},
	}, nil
}

// QuickQuiz crosses the trait's two homozygous parents.
func QuickQuiz(trait genetics.TraitConfig) (Practice, error) {
	dom, rec := trait.DominantAllele, trait.RecessiveAllele
	return NewPractice(trait, string([]rune{dom, dom}), string([]rune{rec, rec}))
}

func (p Practice) Prompt() string {
	return fmt.Sprintf("Cross: %s x %s. What is the genotype of the offspring?", p.Parent1, p.Parent2)
}

// Check compares answer with the genotypes the cross actually produces. An empty
// answer skips the question.
func (p Practice) Check(answer string) (Feedback, error) {
	square, err := genetics.CrossStrings(p.Parent1, p.Parent2)
	if err != nil {
		return Feedback{}, err
	}
	offspring := genetics.Analyze(square.Grid, p.Trait).Genotypes

	fb := Feedback{Answer: strings.TrimSpace(answer)}
	for _, e := range offspring {
		fb.Expected = append(fb.Expected, e.Label)
	}
	if fb.Answer == "" {
		fb.Skipped = true
		fb.Message = "Skipped."
		return fb, nil
	}

	g, err := genetics.ParseGenotypeFor(fb.Answer, p.Trait)
	if err != nil {
		return Feedback{}, err
	}
	canonical := g.Canonical()
	count := offspring.Count(canonical)
	fb.Correct = count > 0

	switch {
	case fb.Correct && count == offspring.Total():
		fb.Message = fmt.Sprintf("Correct! %s (%s) is the only outcome.",
			genetics.ZygosityOf(canonical, p.Trait).Label(), canonical)
	case fb.Correct:
		fb.Message = fmt.Sprintf("Correct! %s (%s) appears in %d of %d offspring.",
			genetics.ZygosityOf(canonical, p.Trait).Label(), canonical, count, offspring.Total())
	default:
		fb.Message = fmt.Sprintf("Try again! Hint: P1 gives %s, P2 gives %s.",
			gameteHint(square.P1Gametes), gameteHint(square.P2Gametes))
	}
	return fb, nil
}

func gameteHint(gametes [genetics.Ploidy]string) string {
	if gametes[0] == gametes[1] {
		return gametes[0]
	}
	return gametes[0] + " or " + gametes[1]
}
