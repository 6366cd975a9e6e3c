package record

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Load reads a lab metadata JSON file (an array of field -> value objects)
// into a record set.
func Load(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read lab metadata %s", path)
	}

	var set Set
	err = json.Unmarshal(raw, &set)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse lab metadata %s", path)
	}

	return set, nil
}

// Write serializes the record set to path as indented JSON.
func (s Set) Write(path string) error {
	raw, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return errors.Wrap(err, "unable to serialize record set")
	}

	err = os.WriteFile(path, raw, 0o644)
	if err != nil {
		return errors.Wrapf(err, "unable to write record set %s", path)
	}

	return nil
}
