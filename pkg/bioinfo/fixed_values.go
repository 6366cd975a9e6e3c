package bioinfo

import (
	"context"

	"github.com/viromics/biometa/pkg/record"
)

// addFixedValues copies the configured constant values into every record.
func (m *Merger) addFixedValues(ctx context.Context, set record.Set) error {
	values, err := m.resolver.Fields(topicAnalysis, subFixedValues)
	if err != nil {
		return err
	}

	for _, rec := range set {
		for field, value := range values {
			rec[field] = value
		}
	}

	return nil
}
