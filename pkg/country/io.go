package country

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaii/gaii/pkg/indicator"
	"github.com/gaii/gaii/pkg/scoring"
)

// Format is the serialization of a dataset document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the document format from a file extension.
// Anything that is not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk form of a dataset.
type Document struct {
	Name        string       `yaml:"name" json:"name"`
	Source      string       `yaml:"source" json:"source"`
	LastUpdated string       `yaml:"last_updated" json:"last_updated"`
	Countries   []CountryDoc `yaml:"countries" json:"countries"`
}

// CountryDoc is one authored country. Exactly one of Indicators or
// AdoptionRate must be present.
type CountryDoc struct {
	Code          string         `yaml:"code" json:"code"`
	AltCode       string         `yaml:"alt_code,omitempty" json:"alt_code,omitempty"`
	Name          string         `yaml:"name" json:"name"`
	Region        Region         `yaml:"region" json:"region"`
	Population    float64        `yaml:"population" json:"population"`
	Indicators    *indicator.Set `yaml:"indicators,omitempty" json:"indicators,omitempty"`
	AdoptionRate  *float64       `yaml:"adoption_rate,omitempty" json:"adoption_rate,omitempty"`
	PaidUserIndex float64        `yaml:"paid_user_index,omitempty" json:"paid_user_index,omitempty"`
	Trend         Trend          `yaml:"trend" json:"trend"`
	Source        string         `yaml:"source,omitempty" json:"source,omitempty"`
	LastUpdated   string         `yaml:"last_updated,omitempty" json:"last_updated,omitempty"`
}

// Input converts the authored entry into a scoring input.
func (c CountryDoc) Input() (Input, error) {
	var in scoring.Input
	switch {
	case c.Indicators != nil && c.AdoptionRate != nil:
		return Input{}, fmt.Errorf("country %s: %w", c.Code, ErrAmbiguousInput)
	case c.Indicators != nil:
		in = scoring.Indicators{Set: *c.Indicators}
	case c.AdoptionRate != nil:
		in = scoring.LegacyAdoption{Rate: *c.AdoptionRate, PaidUserIndex: c.PaidUserIndex}
	default:
		return Input{}, fmt.Errorf("country %s: %w", c.Code, ErrMissingInput)
	}

	return Input{
		Code:        c.Code,
		AltCode:     c.AltCode,
		Name:        c.Name,
		Region:      Region(strings.ToUpper(strings.TrimSpace(string(c.Region)))),
		Population:  c.Population,
		Scoring:     in,
		Trend:       c.Trend,
		Source:      c.Source,
		LastUpdated: c.LastUpdated,
	}, nil
}

// Build validates the document and constructs the Dataset.
func (doc *Document) Build() (*Dataset, error) {
	inputs := make([]Input, 0, len(doc.Countries))
	for _, c := range doc.Countries {
		in, err := c.Input()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return NewDataset(Meta{
		Name:        doc.Name,
		Source:      doc.Source,
		LastUpdated: doc.LastUpdated,
	}, inputs)
}

// Parse decodes a dataset document and builds it.
func Parse(data []byte, format Format) (*Dataset, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshaling dataset: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshaling dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}

	ds, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("building dataset %q: %w", doc.Name, err)
	}
	return ds, nil
}

// LoadFile reads a dataset document from disk.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}
