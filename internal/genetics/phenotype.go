package genetics

import (
	"fmt"
	"strings"
)

// PhenotypeOf returns the dominant label when genotype carries the trait's dominant
// allele and the recessive label otherwise. Characters foreign to the trait are not
// checked; use a strict Resolver to reject them.
func PhenotypeOf(genotype string, trait TraitConfig) string {
	if strings.ContainsRune(genotype, trait.DominantAllele) {
		return trait.DominantLabel
	}
	return trait.RecessiveLabel
}

// Policy selects how a Resolver treats genotypes outside a trait's alleles.
type Policy int

const (
	// PolicyPermissive resolves any genotype without the dominant allele as recessive.
	PolicyPermissive Policy = iota
	// PolicyStrict rejects genotypes of the wrong length or with foreign alleles.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyPermissive:
		return "permissive"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps "permissive" or "strict" to a Policy. Empty selects permissive.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return PolicyPermissive, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyPermissive, fmt.Errorf("unsupported phenotype policy: %s", s)
	}
}

// Resolver resolves phenotypes under a validation policy.
type Resolver struct {
	Policy Policy
}

func (r Resolver) Resolve(genotype string, trait TraitConfig) (string, error) {
	if r.Policy == PolicyStrict {
		if _, err := ParseGenotypeFor(genotype, trait); err != nil {
			return "", err
		}
	}
	return PhenotypeOf(genotype, trait), nil
}
