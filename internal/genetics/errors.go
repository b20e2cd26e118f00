package genetics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGenotype = errors.New("invalid genotype")
	ErrUnknownAllele   = errors.New("unknown allele")
	ErrInvalidTrait    = errors.New("invalid trait")
)

// GenotypeError reports a genotype string that does not hold exactly two alleles.
type GenotypeError struct {
	Genotype string
	Length   int
}

func (e *GenotypeError) Error() string {
	return fmt.Sprintf("%v: %q has %d alleles, expected %d", ErrInvalidGenotype, e.Genotype, e.Length, Ploidy)
}

func (e *GenotypeError) Unwrap() error { return ErrInvalidGenotype }

// AlleleError reports an allele symbol that belongs to neither allele of a trait.
type AlleleError struct {
	Allele rune
	Trait  string
}

func (e *AlleleError) Error() string {
	return fmt.Sprintf("%v: %q is not an allele of trait %s", ErrUnknownAllele, e.Allele, e.Trait)
}

func (e *AlleleError) Unwrap() error { return ErrUnknownAllele }
