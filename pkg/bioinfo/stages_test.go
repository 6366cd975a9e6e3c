package bioinfo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viromics/biometa/pkg/record"
)

type stubResolver struct {
	flat   map[string]map[string]string
	nested map[string]map[string]map[string]string
}

func (r *stubResolver) Fields(topic, subtopic string) (map[string]string, error) {
	fields, ok := r.flat[subtopic]
	if !ok {
		return nil, errors.Errorf("subtopic %q not found", subtopic)
	}
	return fields, nil
}

func (r *stubResolver) NestedFields(topic, subtopic string) (map[string]map[string]string, error) {
	fields, ok := r.nested[subtopic]
	if !ok {
		return nil, errors.Errorf("subtopic %q not found", subtopic)
	}
	return fields, nil
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fieldSet(rec record.Record) map[string]struct{} {
	fields := make(map[string]struct{}, len(rec))
	for field := range rec {
		fields[field] = struct{}{}
	}
	return fields
}

func TestAddFixedValues(t *testing.T) {
	m := &Merger{resolver: &stubResolver{
		flat: map[string]map[string]string{
			subFixedValues: {"country": "ES"},
		},
	}}
	set := record.Set{
		{record.FieldSampleID: "S-001"},
		{record.FieldSampleID: "S002"},
	}

	require.NoError(t, m.addFixedValues(context.Background(), set))
	for _, rec := range set {
		assert.Equal(t, "ES", rec["country"])
	}
}

func TestAddMappingStats(t *testing.T) {
	dir := t.TempDir()
	stats := writeInput(t, dir, "mapping_stats.tab",
		"Sample\tCoverage\tNs\nS-001\t98.2\t120\nS002\t75.0\t3000\n")

	m := &Merger{
		resolver: &stubResolver{flat: map[string]map[string]string{
			subMappingStats: {"depth_of_coverage_value": "Coverage", "per_Ns": "Ns"},
		}},
		reqFiles: map[string]string{reqMappingStats: stats},
	}
	set := record.Set{
		{record.FieldSampleID: "S-001"},
		{record.FieldSampleID: "S002"},
	}

	require.NoError(t, m.addMappingStats(context.Background(), set))
	assert.Equal(t, "98.2", set[0]["depth_of_coverage_value"])
	assert.Equal(t, "120", set[0]["per_Ns"])
	assert.Equal(t, "3000", set[1]["per_Ns"])
}

func TestAddMappingStatsMissingSample(t *testing.T) {
	dir := t.TempDir()
	stats := writeInput(t, dir, "mapping_stats.tab", "Sample\tCoverage\nS-001\t98.2\n")

	m := &Merger{
		resolver: &stubResolver{flat: map[string]map[string]string{
			subMappingStats: {"depth_of_coverage_value": "Coverage"},
		}},
		reqFiles: map[string]string{reqMappingStats: stats},
	}
	set := record.Set{{record.FieldSampleID: "S002"}}

	err := m.addMappingStats(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S002")
}

func TestAddMappingStatsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	stats := writeInput(t, dir, "mapping_stats.tab", "Sample\tCoverage\nS-001\t98.2\n")

	m := &Merger{
		resolver: &stubResolver{flat: map[string]map[string]string{
			subMappingStats: {"per_Ns": "Ns"},
		}},
		reqFiles: map[string]string{reqMappingStats: stats},
	}
	set := record.Set{{record.FieldSampleID: "S-001"}}

	err := m.addMappingStats(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ns")
}

func TestAddSoftwareVersions(t *testing.T) {
	dir := t.TempDir()
	versions := writeInput(t, dir, "versions.yml",
		"bcftools:\n    version: \"1.12\"\nivar:\n    version: \"1.3.1\"\n")

	m := &Merger{
		resolver: &stubResolver{nested: map[string]map[string]map[string]string{
			subVersions: {
				"variant_calling_software_version":    {"bcftools": "version"},
				"consensus_sequence_software_version": {"ivar": "version"},
			},
		}},
		reqFiles: map[string]string{reqVersions: versions},
	}
	set := record.Set{
		{record.FieldSampleID: "S-001"},
		{record.FieldSampleID: "S002"},
	}

	require.NoError(t, m.addSoftwareVersions(context.Background(), set))
	for _, rec := range set {
		assert.Equal(t, "1.12", rec["variant_calling_software_version"])
		assert.Equal(t, "1.3.1", rec["consensus_sequence_software_version"])
	}
}

func TestAddSoftwareVersionsMissingTool(t *testing.T) {
	dir := t.TempDir()
	versions := writeInput(t, dir, "versions.yml", "bcftools:\n    version: \"1.12\"\n")

	m := &Merger{
		resolver: &stubResolver{nested: map[string]map[string]map[string]string{
			subVersions: {"lineage_analysis_software_version": {"pangolin": "version"}},
		}},
		reqFiles: map[string]string{reqVersions: versions},
	}
	set := record.Set{{record.FieldSampleID: "S-001"}}

	err := m.addSoftwareVersions(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pangolin")
}

func TestAddPangolinLineage(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "S_001.pangolin.20210501.csv",
		"taxon,lineage,version\nS_001,B.1.1.7,PANGO-v1.2\n")

	m := &Merger{
		inputFolder: dir,
		resolver: &stubResolver{flat: map[string]map[string]string{
			subPangolin: {
				"lineage_name":                      "lineage",
				"lineage_analysis_software_version": "version",
			},
		}},
	}
	set := record.Set{{record.FieldSampleID: "S-001", "analysis_date": "20210501"}}

	require.NoError(t, m.addPangolinLineage(context.Background(), set))
	assert.Equal(t, "B.1.1.7", set[0]["lineage_name"])
	assert.Equal(t, "PANGO-v1.2", set[0]["lineage_analysis_software_version"])
}

func TestAddPangolinLineageMissingFile(t *testing.T) {
	m := &Merger{
		inputFolder: t.TempDir(),
		resolver: &stubResolver{flat: map[string]map[string]string{
			subPangolin: {"lineage_name": "lineage"},
		}},
	}
	set := record.Set{{record.FieldSampleID: "X1", "analysis_date": "2021-05-01"}}

	require.NoError(t, m.addPangolinLineage(context.Background(), set))
	lineage, ok := set[0]["lineage_name"]
	assert.True(t, ok)
	assert.Equal(t, "", lineage)
}

func consensusMerger(dir string) *Merger {
	return &Merger{
		inputFolder: dir,
		resolver: &stubResolver{flat: map[string]map[string]string{
			subConsensus: {
				"consensus_genome_length":     "",
				"consensus_sequence_name":     "",
				"consensus_sequence_filepath": "",
				"consensus_sequence_filename": "",
				"consensus_sequence_md5":      "",
			},
		}},
	}
}

func TestAddConsensusSequence(t *testing.T) {
	dir := t.TempDir()
	sequence := strings.Repeat("ACGT", 7500) // 30000 bases
	writeInput(t, dir, "S_001.consensus.fa", ">S_001 consensus genome\n"+sequence+"\n")

	m := consensusMerger(dir)
	set := record.Set{{record.FieldSampleID: "S-001", "read_length": "150"}}

	require.NoError(t, m.addConsensusSequence(context.Background(), set))
	rec := set[0]
	assert.Equal(t, "30000", rec["consensus_genome_length"])
	assert.Equal(t, "S_001 consensus genome", rec["consensus_sequence_name"])
	assert.Equal(t, dir, rec["consensus_sequence_filepath"])
	assert.Equal(t, "S_001.consensus.fa", rec["consensus_sequence_filename"])
	assert.NotEmpty(t, rec["consensus_sequence_md5"])
	assert.Equal(t, "9000000", rec["number_of_base_pairs_sequenced"])
}

func TestAddConsensusSequenceMissingFile(t *testing.T) {
	m := consensusMerger(t.TempDir())
	set := record.Set{{record.FieldSampleID: "S-001", "read_length": "150"}}

	require.NoError(t, m.addConsensusSequence(context.Background(), set))
	rec := set[0]
	for _, field := range []string{
		"consensus_genome_length",
		"consensus_sequence_name",
		"consensus_sequence_filepath",
		"consensus_sequence_filename",
		"consensus_sequence_md5",
	} {
		value, ok := rec[field]
		assert.True(t, ok, field)
		assert.Equal(t, "", value, field)
	}
	// derived numeric fields are only written on the success path
	_, ok := rec["number_of_base_pairs_sequenced"]
	assert.False(t, ok)
}

func TestAddConsensusSequenceInvalidReadLength(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "S_001.consensus.fa", ">S_001\nACGT\n")

	m := consensusMerger(dir)
	set := record.Set{{record.FieldSampleID: "S-001", "read_length": "many"}}

	err := m.addConsensusSequence(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read_length")
}

func TestAddLongTablePath(t *testing.T) {
	dir := t.TempDir()
	path := writeInput(t, dir, "variants_long_table.csv", "x")

	m := &Merger{inputFolder: dir}
	set := record.Set{
		{record.FieldSampleID: "S-001"},
		{record.FieldSampleID: "S002"},
	}

	require.NoError(t, m.addLongTablePath(context.Background(), set))
	for _, rec := range set {
		assert.Equal(t, path, rec["long_table_path"])
	}
}

func TestAddLongTablePathNoMatch(t *testing.T) {
	m := &Merger{inputFolder: t.TempDir()}
	set := record.Set{{record.FieldSampleID: "S-001"}}

	require.NoError(t, m.addLongTablePath(context.Background(), set))
	value, ok := set[0]["long_table_path"]
	assert.True(t, ok)
	assert.Equal(t, "", value)
}

// Stage contract: the identity field is untouched and the field set only
// grows as stages run.
func TestStagesPreserveIdentityAndGrowFields(t *testing.T) {
	dir := t.TempDir()
	stats := writeInput(t, dir, "mapping_stats.tab", "Sample\tCoverage\nS-001\t98.2\n")
	writeInput(t, dir, "S_001.consensus.fa", ">S_001\nACGTACGT\n")

	m := &Merger{
		inputFolder: dir,
		resolver: &stubResolver{
			flat: map[string]map[string]string{
				subFixedValues:  {"country": "ES"},
				subMappingStats: {"depth_of_coverage_value": "Coverage"},
				subPangolin:     {"lineage_name": "lineage"},
				subConsensus:    {"consensus_sequence_md5": ""},
			},
		},
		reqFiles: map[string]string{reqMappingStats: stats},
	}
	set := record.Set{{record.FieldSampleID: "S-001", "analysis_date": "20210501", "read_length": "150"}}

	stages := []pipelineStage{
		m.addFixedValues,
		m.addMappingStats,
		m.addPangolinLineage,
		m.addConsensusSequence,
		m.addLongTablePath,
	}

	previous := fieldSet(set[0])
	for _, stageFn := range stages {
		require.NoError(t, stageFn(context.Background(), set))
		assert.Equal(t, "S-001", set[0].SampleID())
		current := fieldSet(set[0])
		for field := range previous {
			assert.Contains(t, current, field)
		}
		previous = current
	}
}

type pipelineStage func(ctx context.Context, set record.Set) error
