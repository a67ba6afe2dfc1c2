// Package data embeds the reference GAII dataset so every binary can score
// countries without a configured backend.
package data

import (
	_ "embed"

	"github.com/gaii/gaii/pkg/country"
)

// DefaultName is the dataset key used when no dataset is requested explicitly.
const DefaultName = "default"

//go:embed gaii.yaml
var gaiiYAML []byte

// Raw returns the embedded YAML document.
func Raw() []byte {
	out := make([]byte, len(gaiiYAML))
	copy(out, gaiiYAML)
	return out
}

// Default parses the embedded dataset.
func Default() (*country.Dataset, error) {
	return country.Parse(gaiiYAML, country.FormatYAML)
}
