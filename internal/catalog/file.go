package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type fileDocument struct {
	Cities []City `yaml:"cities"`
}

// LoadFile reads cities from a YAML document of the form
//
//	cities:
//	  - name: Париж
//	    country: Франция
//	    lat: 48.8566
//	    lon: 2.3522
//	    area: 105 км²
//	    population: 2.1 млн
//	    photos: [https://...]
func LoadFile(path string) ([]City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes the catalog document format used by LoadFile.
func ParseYAML(data []byte) ([]City, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return doc.Cities, nil
}
