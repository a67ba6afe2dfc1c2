package country

import (
	"errors"
	"fmt"
	"strings"
)

// Data-authoring defects detected while building a Dataset.
var (
	ErrDuplicateCode    = errors.New("duplicate country code")
	ErrUnknownRegion    = errors.New("unknown region code")
	ErrMissingCode      = errors.New("missing country code")
	ErrMissingInput     = errors.New("country has neither indicators nor adoption rate")
	ErrAmbiguousInput   = errors.New("country has both indicators and adoption rate")
	ErrUnknownDirection = errors.New("unknown trend direction")
)

// Meta is dataset-wide provenance.
type Meta struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	LastUpdated string `json:"last_updated"`
}

// Dataset is the immutable, ordered collection of country records with O(1)
// lookup by primary and secondary code. It is built once and safe to share
// between goroutines without locking.
type Dataset struct {
	meta    Meta
	records []Record
	byCode  map[string]int
	byAlt   map[string]int
}

// NewDataset scores every input and indexes the results in input order.
// Records without their own provenance inherit it from meta.
func NewDataset(meta Meta, inputs []Input) (*Dataset, error) {
	d := &Dataset{
		meta:    meta,
		records: make([]Record, 0, len(inputs)),
		byCode:  make(map[string]int, len(inputs)),
		byAlt:   make(map[string]int, len(inputs)),
	}

	for i, in := range inputs {
		if in.Scoring == nil {
			return nil, fmt.Errorf("country #%d (%q): %w", i, in.Code, ErrMissingInput)
		}
		rec := NewRecord(in)
		if err := d.add(rec); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// MustNewDataset is like NewDataset but panics on a data-authoring defect.
func MustNewDataset(meta Meta, inputs []Input) *Dataset {
	d, err := NewDataset(meta, inputs)
	if err != nil {
		panic(fmt.Sprintf("country: invalid dataset %q: %v", meta.Name, err))
	}
	return d
}

func (d *Dataset) add(rec Record) error {
	if rec.Code == "" {
		return fmt.Errorf("country %q: %w", rec.Name, ErrMissingCode)
	}
	if !rec.Region.Valid() {
		return fmt.Errorf("country %s: %w %q", rec.Code, ErrUnknownRegion, rec.Region)
	}
	if !rec.Trend.Direction.Valid() {
		return fmt.Errorf("country %s: %w %q", rec.Code, ErrUnknownDirection, rec.Trend.Direction)
	}
	if d.taken(rec.Code) {
		return fmt.Errorf("country %s: %w", rec.Code, ErrDuplicateCode)
	}
	if rec.AltCode != "" && (rec.AltCode != rec.Code && d.taken(rec.AltCode)) {
		return fmt.Errorf("country %s: alt code %s: %w", rec.Code, rec.AltCode, ErrDuplicateCode)
	}

	if rec.Source == "" {
		rec.Source = d.meta.Source
	}
	if rec.LastUpdated == "" {
		rec.LastUpdated = d.meta.LastUpdated
	}

	idx := len(d.records)
	d.records = append(d.records, rec)
	d.byCode[rec.Code] = idx
	if rec.AltCode != "" {
		d.byAlt[rec.AltCode] = idx
	}
	return nil
}

// taken reports whether code is already used as a primary or secondary key.
func (d *Dataset) taken(code string) bool {
	if _, ok := d.byCode[code]; ok {
		return true
	}
	_, ok := d.byAlt[code]
	return ok
}

// Meta returns the dataset provenance.
func (d *Dataset) Meta() Meta { return d.meta }

// Len returns the number of countries.
func (d *Dataset) Len() int { return len(d.records) }

// At returns a copy of the i-th record in dataset order.
func (d *Dataset) At(i int) Record { return d.records[i].clone() }

// Records returns a copy of every record in dataset order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	for i, rec := range d.records {
		out[i] = rec.clone()
	}
	return out
}

// Lookup finds a country by primary code.
func (d *Dataset) Lookup(code string) (Record, bool) {
	i, ok := d.byCode[normalizeCode(code)]
	if !ok {
		return Record{}, false
	}
	return d.records[i].clone(), true
}

// LookupAlt finds a country by secondary code.
func (d *Dataset) LookupAlt(code string) (Record, bool) {
	i, ok := d.byAlt[normalizeCode(code)]
	if !ok {
		return Record{}, false
	}
	return d.records[i].clone(), true
}

// Find tries the primary code first, then the secondary code.
func (d *Dataset) Find(code string) (Record, bool) {
	if rec, ok := d.Lookup(code); ok {
		return rec, true
	}
	return d.LookupAlt(code)
}

// InRegion returns the records of one region in dataset order.
func (d *Dataset) InRegion(r Region) []Record {
	var out []Record
	for _, rec := range d.records {
		if rec.Region == r {
			out = append(out, rec.clone())
		}
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
