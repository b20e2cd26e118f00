package narration

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"punnettlab/internal/genetics"
)

// Lesson is a narrated walkthrough of one cross, together with the data it narrates.
type Lesson struct {
	Trait  genetics.TraitConfig
	Square genetics.PunnettSquare
	Stats  genetics.Stats
	Steps  []Step
}

// LessonScript builds the narrated lesson for a cross. Parent 1 is the male parent
// whose gametes head the columns; parent 2 is the female parent heading the rows.
func LessonScript(trait genetics.TraitConfig, p1, p2 genetics.DiploidGenotype, tag language.Tag) Lesson {
	p := newPrinter(tag)
	square := genetics.Cross(p1, p2)
	stats := genetics.Analyze(square.Grid, trait)

	male := p1.Alleles()
	female := p2.Alleles()
	cellMessages := []string{msgCellFirst, msgCellSecond, msgCellThird, msgCellFourth}

	steps := []Step{
		{Text: p.Sprintf(msgWelcome, trait.Name), Target: TargetDNA, Delay: 1000 * time.Millisecond},
		{
			Text:   p.Sprintf(msgParents, speakable(p, male[0]), speakable(p, male[1]), speakable(p, female[0]), speakable(p, female[1])),
			Target: TargetParents,
			Delay:  1000 * time.Millisecond,
		},
		{Text: p.Sprintf(msgSegregation), Target: TargetGenotypes, Delay: 800 * time.Millisecond},
		{Text: p.Sprintf(msgFertilize), Target: TargetPunnettBoard, Action: ActionRevealCross, Delay: 500 * time.Millisecond},
	}
	for i, msg := range cellMessages {
		row, col := i/genetics.Ploidy, i%genetics.Ploidy
		steps = append(steps, Step{
			Text:   p.Sprintf(msg, speakable(p, female[row]), speakable(p, male[col]), explainGenotype(p, square.Grid[row][col], trait)),
			Target: CellTarget(i),
			Delay:  1000 * time.Millisecond,
		})
	}
	steps = append(steps,
		Step{Text: p.Sprintf(msgResults), Target: TargetOffspring, Delay: 500 * time.Millisecond},
		Step{Text: p.Sprintf(msgPhenoRatio, ratioPhrase(p, stats.Phenotypes)), Target: TargetOffspring, Delay: 500 * time.Millisecond},
		Step{Text: p.Sprintf(msgGenoRatio, ratioPhrase(p, stats.Genotypes)), Target: TargetOffspring, Delay: 500 * time.Millisecond},
		Step{Text: p.Sprintf(msgConclusion), Target: TargetNone, Action: ActionFinish, Delay: 100 * time.Millisecond},
	)

	return Lesson{Trait: trait, Square: square, Stats: stats, Steps: steps}
}

// SpeakableAllele renders an allele as it should be read aloud, e.g. "Capital T".
// Symbols without case are read as themselves.
func SpeakableAllele(allele rune, tag language.Tag) string {
	return speakable(newPrinter(tag), allele)
}

func speakable(p *message.Printer, allele rune) string {
	switch {
	case unicode.IsUpper(allele):
		return p.Sprintf(msgCapital, string(allele))
	case unicode.IsLower(allele):
		return p.Sprintf(msgSmall, string(allele))
	default:
		return string(allele)
	}
}

func explainGenotype(p *message.Printer, genotype string, trait genetics.TraitConfig) string {
	dom, rec := trait.DominantAllele, trait.RecessiveAllele

	var name, reasoning string
	switch genetics.ZygosityOf(genotype, trait) {
	case genetics.HomozygousDominant:
		name = p.Sprintf(msgHomDominant)
		reasoning = p.Sprintf(msgTwoDominant, speakable(p, dom))
	case genetics.HomozygousRecessive:
		name = p.Sprintf(msgHomRecessive)
		reasoning = p.Sprintf(msgTwoRecessive, speakable(p, rec))
	default:
		name = p.Sprintf(msgHeterozygous)
		reasoning = p.Sprintf(msgMasks, speakable(p, dom), speakable(p, rec))
	}

	alleles := []rune(genotype)
	return p.Sprintf(msgExplain, speakable(p, alleles[0]), speakable(p, alleles[1]), name, reasoning, genetics.PhenotypeOf(genotype, trait))
}

func ratioPhrase(p *message.Printer, dist genetics.Distribution) string {
	parts := make([]string, len(dist))
	for i, e := range dist {
		parts[i] = p.Sprintf(msgRatioEntry, e.Count, e.Label)
	}
	return strings.Join(parts, p.Sprintf(msgRatioJoin))
}
