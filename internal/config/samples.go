package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Sample is one seed candidate for the pilot run.
type Sample struct {
	URL     string `yaml:"url"`
	Segment string `yaml:"segment"`
}

// LoadSamples reads the pilot seed list from a YAML file.
func LoadSamples(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read samples file %s", path)
	}

	var doc struct {
		Samples []Sample `yaml:"samples"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrapf(err, "config: parse samples file %s", path)
	}
	if len(doc.Samples) == 0 {
		return nil, eris.Errorf("config: samples file %s contains no entries", path)
	}

	return doc.Samples, nil
}
