package bioinfo

import (
	"context"

	"github.com/pkg/errors"

	"github.com/viromics/biometa/internal/artifact"
	"github.com/viromics/biometa/pkg/record"
)

// addSoftwareVersions resolves each configured field through the two-level
// version manifest (tool -> key) and assigns it identically to every record.
func (m *Merger) addSoftwareVersions(ctx context.Context, set record.Set) error {
	fields, err := m.resolver.NestedFields(topicAnalysis, subVersions)
	if err != nil {
		return err
	}

	manifest, err := artifact.ReadManifest(m.reqFiles[reqVersions])
	if err != nil {
		return err
	}

	for field, source := range fields {
		for tool, key := range source {
			toolVersions, ok := manifest[tool]
			if !ok {
				return errors.Errorf("tool %q not found in %s", tool, m.reqFiles[reqVersions])
			}
			value, ok := toolVersions[key]
			if !ok {
				return errors.Errorf("key %q not found for tool %q in %s", key, tool, m.reqFiles[reqVersions])
			}
			for _, rec := range set {
				rec[field] = value
			}
		}
	}

	return nil
}
