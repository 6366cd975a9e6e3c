// Package config loads the topic-keyed field-mapping configuration that
// drives the merge pipeline. Mappings live in an external JSON file so the
// artifact schema can evolve without code changes.
package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// JSON resolves field mappings from a JSON file of shape
// {topic: {subtopic: value}}.
type JSON struct {
	topics map[string]map[string]json.RawMessage
}

// Load reads and parses a configuration file.
func Load(path string) (*JSON, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read configuration %s", path)
	}

	cfg := &JSON{}
	err = json.Unmarshal(raw, &cfg.topics)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse configuration %s", path)
	}

	return cfg, nil
}

func (c *JSON) topicData(topic, subtopic string) (json.RawMessage, error) {
	sub, ok := c.topics[topic]
	if !ok {
		return nil, errors.Errorf("topic %q not found in configuration", topic)
	}
	raw, ok := sub[subtopic]
	if !ok {
		return nil, errors.Errorf("subtopic %q not found in configuration topic %q", subtopic, topic)
	}

	return raw, nil
}

// Fields returns a flat target field -> source locator mapping.
func (c *JSON) Fields(topic, subtopic string) (map[string]string, error) {
	raw, err := c.topicData(topic, subtopic)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]string)
	err = json.Unmarshal(raw, &fields)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode configuration %s/%s", topic, subtopic)
	}

	return fields, nil
}

// NestedFields returns a two-level target field -> (key -> subkey) mapping.
func (c *JSON) NestedFields(topic, subtopic string) (map[string]map[string]string, error) {
	raw, err := c.topicData(topic, subtopic)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]map[string]string)
	err = json.Unmarshal(raw, &fields)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode configuration %s/%s", topic, subtopic)
	}

	return fields, nil
}
