package bioinfo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/viromics/biometa/internal/artifact"
	"github.com/viromics/biometa/pkg/record"
)

// addMappingStats projects the configured columns of the whole-run mapping
// statistics table into every record.
func (m *Merger) addMappingStats(ctx context.Context, set record.Set) error {
	return m.projectTable(set, m.reqFiles[reqMappingStats], "\t", subMappingStats)
}

// addVariantMetrics projects the configured columns of the variant-calling
// summary metrics table into every record.
func (m *Merger) addVariantMetrics(ctx context.Context, set record.Set) error {
	return m.projectTable(set, m.reqFiles[reqVariantMetrics], ",", subVariantMetrics)
}

// projectTable reads one sample-indexed table and copies every configured
// (field <- column) pair into each record. The table must cover all samples:
// a missing sample or column is fatal for the whole run.
func (m *Merger) projectTable(set record.Set, path, sep, subtopic string) error {
	fields, err := m.resolver.Fields(topicAnalysis, subtopic)
	if err != nil {
		return err
	}

	index, err := artifact.ReadIndex(path, sep, sampleColumn)
	if err != nil {
		return err
	}

	for _, rec := range set {
		row, ok := index[rec.SampleID()]
		if !ok {
			return errors.Errorf("sample %q not found in %s", rec.SampleID(), path)
		}
		for field, column := range fields {
			value, ok := row[column]
			if !ok {
				return errors.Errorf("column %q not found in %s", column, path)
			}
			rec[field] = value
		}
	}

	return nil
}
