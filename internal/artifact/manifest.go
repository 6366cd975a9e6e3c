package artifact

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ReadManifest parses a software version manifest: a two-level YAML mapping
// of tool -> key -> value.
func ReadManifest(path string) (map[string]map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read version manifest %s", path)
	}

	manifest := make(map[string]map[string]string)
	err = yaml.Unmarshal(raw, &manifest)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse version manifest %s", path)
	}

	return manifest, nil
}
