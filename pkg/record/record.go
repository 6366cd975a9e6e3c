package record

import "strings"

// FieldSampleID is the identity field every record must carry. All
// sample-indexed stages look records up by its value.
const FieldSampleID = "sequencing_sample_id"

// Record holds one sample's aggregated metadata as field -> value.
// Derived numeric quantities are kept as decimal strings so the whole
// record serializes uniformly.
type Record map[string]string

// SampleID returns the logical sample identifier of the record.
func (r Record) SampleID() string {
	return r[FieldSampleID]
}

// Set is the ordered collection of records for one pipeline run. Stages
// mutate records in place and never add or remove elements.
type Set []Record

// ArtifactName maps a logical sample identifier to the identifier used in
// on-disk artifact names. Upstream tools replace hyphens with underscores
// when they name per-sample files.
func ArtifactName(sampleID string) string {
	if strings.Contains(sampleID, "-") {
		return strings.ReplaceAll(sampleID, "-", "_")
	}
	return sampleID
}
