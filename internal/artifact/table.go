// Package artifact reads the per-run and per-sample analysis outputs the
// merge pipeline consumes: delimited tables, consensus FASTA files and
// software version manifests.
package artifact

import (
	"github.com/liserjrqlxue/goUtil/textUtil"
	"github.com/pkg/errors"
)

// Index is a sample-keyed view over one parsed table: sample identifier ->
// column -> raw value. It is built and discarded within a single stage.
type Index map[string]map[string]string

// ReadIndex parses a delimited table whose first line holds the column
// names and indexes its rows by the value of keyColumn. Rows without a key
// value are skipped; duplicate keys keep the last row.
func ReadIndex(path, sep, keyColumn string) (Index, error) {
	rows, _ := textUtil.File2MapArray(path, sep, nil)
	if len(rows) == 0 {
		return nil, errors.Errorf("no data rows in %s", path)
	}

	index := make(Index, len(rows))
	for _, row := range rows {
		key := row[keyColumn]
		if key == "" {
			continue
		}
		index[key] = row
	}

	return index, nil
}

// ReadFirstRow parses a delimited table and returns its first data row.
// Per-sample classification outputs carry a single row.
func ReadFirstRow(path, sep string) (map[string]string, error) {
	rows, _ := textUtil.File2MapArray(path, sep, nil)
	if len(rows) == 0 {
		return nil, errors.Errorf("no data rows in %s", path)
	}

	return rows[0], nil
}
