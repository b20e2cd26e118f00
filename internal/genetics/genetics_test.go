package genetics

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCombineIsCommutative(t *testing.T) {
	alleles := []rune{'T', 't', 'Y', 'y', 'A', 'a'}
	for _, a := range alleles {
		for _, b := range alleles {
			require.Equal(t, Combine(a, b), Combine(b, a), "combine(%q,%q)", a, b)
			require.Len(t, []rune(Combine(a, b)), Ploidy)
		}
	}
	require.Equal(t, "Tt", Combine('t', 'T'))
}

func TestParseGenotypeRejectsWrongLength(t *testing.T) {
	for _, input := range []string{"", "T", "TtT"} {
		_, err := ParseGenotype(input)
		require.ErrorIs(t, err, ErrInvalidGenotype)

		var genotypeErr *GenotypeError
		require.True(t, errors.As(err, &genotypeErr))
		require.Equal(t, input, genotypeErr.Genotype)
		require.Contains(t, err.Error(), "expected 2")
	}
}

func TestParseGenotypeForRejectsForeignAllele(t *testing.T) {
	_, err := ParseGenotypeFor("Tx", HeightTrait)
	require.ErrorIs(t, err, ErrUnknownAllele)

	var alleleErr *AlleleError
	require.True(t, errors.As(err, &alleleErr))
	require.Equal(t, 'x', alleleErr.Allele)
	require.Equal(t, "Height", alleleErr.Trait)

	g, err := ParseGenotypeFor("tT", HeightTrait)
	require.NoError(t, err)
	require.Equal(t, "tT", g.String())
	require.Equal(t, "Tt", g.Canonical())
}

func TestCrossHeterozygotes(t *testing.T) {
	square, err := CrossStrings("Tt", "Tt")
	require.NoError(t, err)
	require.Equal(t, [2]string{"T", "t"}, square.P1Gametes)
	require.Equal(t, [2]string{"T", "t"}, square.P2Gametes)
	require.Equal(t, [2][2]string{{"TT", "Tt"}, {"Tt", "tt"}}, square.Grid)

	stats := Analyze(square.Grid, HeightTrait)
	require.Equal(t, Distribution{
		{Label: "TT", Count: 1, Percent: 25},
		{Label: "Tt", Count: 2, Percent: 50},
		{Label: "tt", Count: 1, Percent: 25},
	}, stats.Genotypes)
	require.Equal(t, Distribution{
		{Label: "Tall", Count: 3, Percent: 75},
		{Label: "Dwarf", Count: 1, Percent: 25},
	}, stats.Phenotypes)
	require.Equal(t, "1:2:1", stats.Genotypes.Ratio())
	require.Equal(t, "3:1", stats.Phenotypes.Ratio())
}

func TestCrossHomozygotes(t *testing.T) {
	square, err := CrossStrings("TT", "tt")
	require.NoError(t, err)
	for _, cell := range square.Cells() {
		require.Equal(t, "Tt", cell)
	}

	stats := Analyze(square.Grid, HeightTrait)
	require.Equal(t, Distribution{{Label: "Tall", Count: 4, Percent: 100}}, stats.Phenotypes)
}

func TestCrossSeedColor(t *testing.T) {
	square, err := CrossStrings("YY", "Yy")
	require.NoError(t, err)

	stats := Analyze(square.Grid, SeedColorTrait)
	require.Equal(t, Distribution{
		{Label: "YY", Count: 2, Percent: 50},
		{Label: "Yy", Count: 2, Percent: 50},
	}, stats.Genotypes)
	require.Equal(t, Distribution{{Label: "Yellow", Count: 4, Percent: 100}}, stats.Phenotypes)
}

func TestCrossGridProperties(t *testing.T) {
	genotypes := []string{"TT", "Tt", "tT", "tt"}
	for _, p1 := range genotypes {
		for _, p2 := range genotypes {
			first, err := CrossStrings(p1, p2)
			require.NoError(t, err)
			second, err := CrossStrings(p1, p2)
			require.NoError(t, err)
			require.Equal(t, first, second)

			allowed := p1 + p2
			for _, cell := range first.Cells() {
				require.Len(t, cell, 2)
				for _, r := range cell {
					require.Contains(t, allowed, string(r))
				}
			}

			stats := Analyze(first.Grid, HeightTrait)
			require.Equal(t, 4, stats.Genotypes.Total())
			require.Equal(t, 4, stats.Phenotypes.Total())

			for _, dist := range []Distribution{stats.Genotypes, stats.Phenotypes} {
				var percent float64
				for _, e := range dist {
					percent += e.Percent
				}
				require.InDelta(t, 100, percent, 1e-9)
			}

			require.Equal(t, stats, Analyze(first.Grid, HeightTrait))
		}
	}
}

func TestCrossStringsRejectsMalformedParent(t *testing.T) {
	_, err := CrossStrings("Tt", "T")
	require.ErrorIs(t, err, ErrInvalidGenotype)
	_, err = CrossStrings("TTt", "Tt")
	require.ErrorIs(t, err, ErrInvalidGenotype)
}

func TestPhenotypeOfDominance(t *testing.T) {
	cases := map[string]string{
		"TT": "Tall",
		"Tt": "Tall",
		"tT": "Tall",
		"tt": "Dwarf",
		"xx": "Dwarf",
	}
	for genotype, want := range cases {
		require.Equal(t, want, PhenotypeOf(genotype, HeightTrait), genotype)
	}
}

func TestResolverPolicies(t *testing.T) {
	permissive := Resolver{Policy: PolicyPermissive}
	label, err := permissive.Resolve("xy", HeightTrait)
	require.NoError(t, err)
	require.Equal(t, "Dwarf", label)

	strict := Resolver{Policy: PolicyStrict}
	_, err = strict.Resolve("xy", HeightTrait)
	require.ErrorIs(t, err, ErrUnknownAllele)
	_, err = strict.Resolve("T", HeightTrait)
	require.ErrorIs(t, err, ErrInvalidGenotype)

	label, err = strict.Resolve("Tt", HeightTrait)
	require.NoError(t, err)
	require.Equal(t, "Tall", label)

	_, err = strict.Analyze([2][2]string{{"TT", "Tt"}, {"Tt", "Yy"}}, HeightTrait)
	require.ErrorIs(t, err, ErrUnknownAllele)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyPermissive, p)

	p, err = ParsePolicy("Strict")
	require.NoError(t, err)
	require.Equal(t, PolicyStrict, p)
	require.Equal(t, "strict", p.String())

	_, err = ParsePolicy("codominant")
	require.Error(t, err)
}

func TestZygosityOf(t *testing.T) {
	require.Equal(t, HomozygousDominant, ZygosityOf("TT", HeightTrait))
	require.Equal(t, HomozygousRecessive, ZygosityOf("tt", HeightTrait))
	require.Equal(t, Heterozygous, ZygosityOf("Tt", HeightTrait))
	require.Equal(t, "Homozygous Dominant", HomozygousDominant.Label())
}

func TestTraitValidate(t *testing.T) {
	require.NoError(t, HeightTrait.Validate())
	require.NoError(t, SeedColorTrait.Validate())

	bad := HeightTrait
	bad.RecessiveAllele = 'T'
	require.ErrorIs(t, bad.Validate(), ErrInvalidTrait)

	bad = HeightTrait
	bad.DominantLabel = " "
	require.ErrorIs(t, bad.Validate(), ErrInvalidTrait)
}

func TestTraitJSONUsesAlleleStrings(t *testing.T) {
	data, err := json.Marshal(SeedColorTrait)
	require.NoError(t, err)
	require.Contains(t, string(data), `"dominant_allele":"Y"`)

	var decoded TraitConfig
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, SeedColorTrait, decoded)

	require.Error(t, json.Unmarshal([]byte(`{"name":"x","dominant_allele":"YY"}`), &decoded))
}

func TestHeterozygote(t *testing.T) {
	require.Equal(t, "Yy", SeedColorTrait.Heterozygote().String())
}
