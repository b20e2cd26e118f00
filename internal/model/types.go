package model

import "punnettlab/internal/genetics"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// CrossRecord is one persisted cross with the trait it was analyzed against.
type CrossRecord struct {
	VersionedRecord
	ID           string                 `json:"id"`
	Trait        genetics.TraitConfig   `json:"trait"`
	Parent1      string                 `json:"parent1"`
	Parent2      string                 `json:"parent2"`
	Policy       string                 `json:"policy"`
	Square       genetics.PunnettSquare `json:"square"`
	Stats        genetics.Stats         `json:"stats"`
	CreatedAtUTC string                 `json:"created_at_utc"`
}

// CrossSummary is the listing view of a CrossRecord.
type CrossSummary struct {
	ID             string `json:"id"`
	TraitName      string `json:"trait"`
	Parent1        string `json:"parent1"`
	Parent2        string `json:"parent2"`
	GenotypeRatio  string `json:"genotype_ratio"`
	PhenotypeRatio string `json:"phenotype_ratio"`
	CreatedAtUTC   string `json:"created_at_utc"`
}

func (r CrossRecord) Summary() CrossSummary {
	return CrossSummary{
		ID:             r.ID,
		TraitName:      r.Trait.Name,
		Parent1:        r.Parent1,
		Parent2:        r.Parent2,
		GenotypeRatio:  r.Stats.Genotypes.Ratio(),
		PhenotypeRatio: r.Stats.Phenotypes.Ratio(),
		CreatedAtUTC:   r.CreatedAtUTC,
	}
}
