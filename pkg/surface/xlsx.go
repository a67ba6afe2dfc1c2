package surface

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v2"

	"github.com/gaii/gaii/pkg/report"
)

// Sheet names written by XLSXRenderer.
const (
	SheetCountries   = "Countries"
	SheetRegions     = "Regions"
	SheetMethodology = "Methodology"
)

// XLSXRenderer writes the country table, region rollups and methodology as
// a spreadsheet workbook.
type XLSXRenderer struct{}

func (r *XLSXRenderer) Render(w io.Writer, rep *report.Report) error {
	f, err := BuildWorkbook(rep)
	if err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays out the report as an in-memory workbook.
func BuildWorkbook(rep *report.Report) (*xlsx.File, error) {
	f := xlsx.NewFile()

	countries, err := f.AddSheet(SheetCountries)
	if err != nil {
		return nil, fmt.Errorf("xlsx: add sheet: %w", err)
	}
	header(countries, "Code", "Alt code", "Name", "Region", "Population (M)",
		"Access", "Affordability", "Language", "Skill",
		"Score", "Grade", "Basis", "Trend", "Magnitude", "Source", "Last updated")
	for _, rec := range rep.Countries {
		row := countries.AddRow()
		str(row, rec.Code, rec.AltCode, rec.Name, string(rec.Region))
		num(row, rec.Population,
			rec.Indicators.Access, rec.Indicators.Affordability, rec.Indicators.Language, rec.Indicators.Skill,
			rec.Score)
		str(row, string(rec.Grade), string(rec.Basis), string(rec.Trend.Direction))
		num(row, rec.Trend.Magnitude)
		str(row, rec.Source, rec.LastUpdated)
	}

	regions, err := f.AddSheet(SheetRegions)
	if err != nil {
		return nil, fmt.Errorf("xlsx: add sheet: %w", err)
	}
	header(regions, "Region", "Name", "Countries", "Population (M)", "Mean score",
		"Weighted score", "Adoption proxy", "Grade", "Trend", "Magnitude")
	for _, ru := range rep.Global.Regions {
		row := regions.AddRow()
		str(row, string(ru.Region), ru.Name)
		row.AddCell().SetInt(ru.CountryCount)
		num(row, ru.Population, ru.MeanScore, ru.WeightedScore, ru.WeightedProxy)
		str(row, string(ru.Grade), string(ru.Trend.Direction))
		num(row, ru.Trend.Magnitude)
	}
	g := rep.Global
	total := regions.AddRow()
	str(total, "ALL", "Global")
	total.AddCell().SetInt(g.CountryCount)
	num(total, g.Population)
	str(total, "")
	num(total, g.WeightedScore, g.WeightedProxy)
	str(total, string(g.Grade))

	meth, err := f.AddSheet(SheetMethodology)
	if err != nil {
		return nil, fmt.Errorf("xlsx: add sheet: %w", err)
	}
	header(meth, "Indicator", "Weight", "Description")
	for _, e := range rep.Methodology.Weights {
		row := meth.AddRow()
		str(row, string(e.Indicator))
		num(row, e.Weight)
		str(row, e.Description)
	}
	meth.AddRow()
	header(meth, "Grade", "Min", "Max")
	for _, b := range rep.Methodology.Bands {
		row := meth.AddRow()
		str(row, string(b.Grade))
		num(row, b.Min, b.Max)
	}

	return f, nil
}

func header(sheet *xlsx.Sheet, titles ...string) {
	row := sheet.AddRow()
	for _, t := range titles {
		c := row.AddCell()
		c.SetString(t)
		c.GetStyle().Font.Bold = true
	}
}

func str(row *xlsx.Row, vals ...string) {
	for _, v := range vals {
		row.AddCell().SetString(v)
	}
}

func num(row *xlsx.Row, vals ...float64) {
	for _, v := range vals {
		row.AddCell().SetFloat(v)
	}
}
