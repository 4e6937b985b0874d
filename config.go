package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the format of the --config file. Every field is optional.
//
//	base_url: http://localhost:8080/v2
//	timeout_ms: 5000
//	categories: [functional, negative]
//	catalog: [extra-scenarios.yaml]
//	report: results.json
//	rate: 5
//	check_idempotence: true
type fileConfig struct {
	BaseURL          string   `yaml:"base_url"`
	TimeoutMS        int      `yaml:"timeout_ms"`
	Categories       []string `yaml:"categories"`
	Catalogs         []string `yaml:"catalog"`
	Report           string   `yaml:"report"`
	Rate             float64  `yaml:"rate"`
	CheckIdempotence *bool    `yaml:"check_idempotence"`
}

func loadConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("%w: %s", errConfig, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return fc, fmt.Errorf("%w: %s: %s", errConfig, path, err)
	}
	if fc.TimeoutMS < 0 {
		return fc, fmt.Errorf("%w: %s: timeout_ms must not be negative", errConfig, path)
	}
	return fc, nil
}
