// Package genetics implements monohybrid crosses under simple dominance.
//
// A cross splits each parent's diploid genotype into its two gametes, pairs every
// gamete of the second parent (rows) with every gamete of the first parent (columns),
// and canonicalizes each pairing by code point so "tT" and "Tt" name the same offspring.
// Analyze then tallies the 2x2 grid into genotype and phenotype distributions.
//
// Every function in this package is pure: no state survives a call and concurrent use
// needs no synchronization.
package genetics
