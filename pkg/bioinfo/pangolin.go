package bioinfo

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/viromics/biometa/internal/artifact"
	"github.com/viromics/biometa/pkg/record"
)

// addPangolinLineage copies the configured columns from each sample's
// pangolin classification file. Samples whose file is absent get every
// configured field set to the empty string; the run continues.
func (m *Merger) addPangolinLineage(ctx context.Context, set record.Set) error {
	fields, err := m.resolver.Fields(topicAnalysis, subPangolin)
	if err != nil {
		return err
	}

	for _, rec := range set {
		name := record.ArtifactName(rec.SampleID()) + ".pangolin." + rec["analysis_date"] + ".csv"
		path := filepath.Join(m.inputFolder, name)

		_, err = os.Stat(path)
		if err != nil {
			log.Printf("pangolin file %s not found, lineage fields left empty", name)
			for field := range fields {
				rec[field] = ""
			}
			continue
		}

		row, err := artifact.ReadFirstRow(path, ",")
		if err != nil {
			return err
		}
		for field, column := range fields {
			rec[field] = row[column]
		}
	}

	return nil
}
