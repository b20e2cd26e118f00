package narration

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// English source strings double as catalog keys, so a locale without a translation
// falls back to them.
const (
	msgWelcome      = "Welcome to the Virtual Genetics Lab. We will now analyze the inheritance of %s in Pisum sativum."
	msgParents      = "Observe the parents. The Male parent genotype is %s %s. The Female genotype is %s %s."
	msgSegregation  = "According to Mendel's Law of Segregation, these allele pairs separate during gamete formation, so each gamete receives only one allele."
	msgFertilize    = "Let us simulate the fertilization process."
	msgCellFirst    = "In the first quadrant: The Mother contributes %s, and the Father contributes %s. %s"
	msgCellSecond   = "Moving to the top-right: The Mother contributes %s, but the Father contributes %s. %s"
	msgCellThird    = "In the bottom-left: The Mother contributes %s, and the Father contributes %s. %s"
	msgCellFourth   = "Finally, the bottom-right: The Mother contributes %s, and the Father contributes %s. %s"
	msgResults      = "Now, let us examine the Analysis Results on the right panel."
	msgPhenoRatio   = "Phenotypically, the offspring ratio is: %s."
	msgGenoRatio    = "Genotypically, we observe: %s."
	msgConclusion   = "This concludes the analysis of this generation. You may now explore freely."
	msgExplain      = "The resulting genotype is %s %s, which is %s. %s Therefore, the phenotype is %s."
	msgTwoDominant  = "It possesses two dominant %s alleles."
	msgTwoRecessive = "It possesses two recessive %s alleles."
	msgMasks        = "The dominant %s allele masks the expression of the recessive %s allele."
	msgCapital      = "Capital %s"
	msgSmall        = "Small %s"
	msgHomDominant  = "Homozygous Dominant"
	msgHomRecessive = "Homozygous Recessive"
	msgHeterozygous = "Heterozygous"
	msgRatioEntry   = "%d %s"
	msgRatioJoin    = ", and "
)

var spanish = map[string]string{
	msgWelcome:      "Bienvenido al Laboratorio Virtual de Genética. Ahora analizaremos la herencia de %s en Pisum sativum.",
	msgParents:      "Observa a los progenitores. El genotipo del progenitor masculino es %s %s. El genotipo femenino es %s %s.",
	msgSegregation:  "Según la Ley de Segregación de Mendel, estos pares de alelos se separan durante la formación de gametos, así que cada gameto recibe un solo alelo.",
	msgFertilize:    "Simulemos el proceso de fecundación.",
	msgCellFirst:    "En el primer cuadrante: la madre aporta %s y el padre aporta %s. %s",
	msgCellSecond:   "Arriba a la derecha: la madre aporta %s, pero el padre aporta %s. %s",
	msgCellThird:    "Abajo a la izquierda: la madre aporta %s y el padre aporta %s. %s",
	msgCellFourth:   "Por último, abajo a la derecha: la madre aporta %s y el padre aporta %s. %s",
	msgResults:      "Ahora examinemos los resultados del análisis en el panel derecho.",
	msgPhenoRatio:   "Fenotípicamente, la proporción de la descendencia es: %s.",
	msgGenoRatio:    "Genotípicamente, observamos: %s.",
	msgConclusion:   "Con esto concluye el análisis de esta generación. Ahora puedes explorar libremente.",
	msgExplain:      "El genotipo resultante es %s %s, que es %s. %s Por lo tanto, el fenotipo es %s.",
	msgTwoDominant:  "Posee dos alelos dominantes %s.",
	msgTwoRecessive: "Posee dos alelos recesivos %s.",
	msgMasks:        "El alelo dominante %s enmascara la expresión del alelo recesivo %s.",
	msgCapital:      "%s mayúscula",
	msgSmall:        "%s minúscula",
	msgHomDominant:  "Homocigoto Dominante",
	msgHomRecessive: "Homocigoto Recesivo",
	msgHeterozygous: "Heterocigoto",
	msgRatioJoin:    " y ",
}

var registerOnce sync.Once

func registerMessages() {
	registerOnce.Do(func() {
		for key, value := range spanish {
			_ = message.SetString(language.Spanish, key, value)
		}
	})
}

// ParseLocale parses a BCP 47 tag. An empty locale selects English.
func ParseLocale(locale string) (language.Tag, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return tag, nil
}

func newPrinter(tag language.Tag) *message.Printer {
	registerMessages()
	return message.NewPrinter(tag)
}
