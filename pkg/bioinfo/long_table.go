package bioinfo

import (
	"context"
	"log"

	"github.com/viromics/biometa/internal/artifact"
	"github.com/viromics/biometa/pkg/record"
)

// addLongTablePath writes the path of the variant long table into every
// record. Absence degrades to an empty value, never to a failed run.
func (m *Merger) addLongTablePath(ctx context.Context, set record.Set) error {
	path, err := artifact.FirstWithSuffix(m.inputFolder, "long_table.csv")
	if err != nil {
		log.Printf("unable to search for long table: %v", err)
		path = ""
	}

	for _, rec := range set {
		rec["long_table_path"] = path
	}

	return nil
}
