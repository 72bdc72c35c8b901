package config

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v2"
)

func LoadFromYAMLPath(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return LoadFromYAML(data)
}

// LoadFromYAML rejects unknown keys and validates the result.
func LoadFromYAML(data []byte) (*Config, error) {
	config := NewConfig()
	err := yaml.UnmarshalStrict(data, config)
	if err != nil {
		return nil, err
	}

	if err := Validate(config); err != nil {
		return nil, err
	}
	return config, nil
}
