package render

import (
	"strings"
	"testing"

	"punnettlab/internal/genetics"
)

func TestSquareShowsEveryCell(t *testing.T) {
	square := genetics.Cross(genetics.MustParseGenotype("Tt"), genetics.MustParseGenotype("Tt"))
	out := Square(square, genetics.HeightTrait)

	for _, want := range []string{"Height: Tt x Tt", "TT", "tt", "Tall", "Dwarf", "♂ T", "♀ t"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered square:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "Tall"); got != 3 {
		t.Fatalf("expected 3 tall cells, got %d:\n%s", got, out)
	}
}

func TestStatsShowsRatios(t *testing.T) {
	square := genetics.Cross(genetics.MustParseGenotype("YY"), genetics.MustParseGenotype("Yy"))
	out := Stats(genetics.Analyze(square.Grid, genetics.SeedColorTrait))

	for _, want := range []string{"Genotypes (2:2)", "Phenotypes (4)", "Yellow", "100.00%", "50.00%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered stats:\n%s", want, out)
		}
	}
}
