package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/scoring"
)

// MarkdownRenderer produces a Markdown document suitable for publishing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, rep *report.Report) error {
	_, err := io.WriteString(w, BuildMarkdown(rep))
	return err
}

// BuildMarkdown renders the full report as a Markdown string.
func BuildMarkdown(rep *report.Report) string {
	var sb strings.Builder
	g := rep.Global

	sb.WriteString(fmt.Sprintf("# %s\n\n", rep.Title))
	sb.WriteString(fmt.Sprintf("%s **Global score %.1f (%s)** across %d countries and %s people.\n\n",
		gradeIcon(g.Grade), g.WeightedScore, g.Grade, g.CountryCount, population(g.Population)))
	sb.WriteString(fmt.Sprintf("_Dataset: %s. Source: %s. Updated: %s. Generated %s._\n\n",
		rep.Dataset.Name, rep.Dataset.Source, rep.Dataset.LastUpdated, rep.GeneratedAt.Format("2006-01-02 15:04 MST")))

	if len(rep.Findings) > 0 {
		sb.WriteString("## Key Findings\n\n")
		for _, f := range rep.Findings {
			sb.WriteString(fmt.Sprintf("- %s\n", f))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## North / South\n\n")
	sb.WriteString("| Group | Countries | Population | Score | Adoption proxy |\n|-------|-----------|------------|-------|----------------|\n")
	for _, grp := range []struct {
		name  string
		count int
		pop   float64
		score float64
		proxy float64
	}{
		{"North", g.Split.North.CountryCount, g.Split.North.Population, g.Split.North.WeightedScore, g.Split.North.WeightedProxy},
		{"South", g.Split.South.CountryCount, g.Split.South.Population, g.Split.South.WeightedScore, g.Split.South.WeightedProxy},
	} {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %.1f | %.1f |\n", grp.name, grp.count, population(grp.pop), grp.score, grp.proxy))
	}
	sb.WriteString(fmt.Sprintf("\nGap: **%+.1f** points.\n\n", g.Split.Gap))

	sb.WriteString("## Regions\n\n")
	sb.WriteString("| Region | Countries | Population | Mean | Weighted | Grade | Trend |\n|--------|-----------|------------|------|----------|-------|-------|\n")
	for _, ru := range g.Regions {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %.1f | %.1f | %s | %s %+.1f |\n",
			ru.Name, ru.CountryCount, population(ru.Population), ru.MeanScore, ru.WeightedScore,
			ru.Grade, ru.Trend.Direction, ru.Trend.Magnitude))
	}
	sb.WriteString("\n")

	writeCountryTable(&sb, "Most Equal", rep.Top)
	writeCountryTable(&sb, "Least Equal", rep.Bottom)
	writeCountryTable(&sb, "Fastest Improving", rep.Improving)

	m := rep.Methodology
	sb.WriteString("## Methodology\n\n")
	sb.WriteString(fmt.Sprintf("`%s`\n\n", m.Formula))
	sb.WriteString("| Indicator | Weight | Measures |\n|-----------|--------|----------|\n")
	for _, e := range m.Weights {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %s |\n", e.Indicator, e.Weight, e.Description))
	}
	sb.WriteString("\n| Grade | Score range |\n|-------|-------------|\n")
	for _, b := range m.Bands {
		sb.WriteString(fmt.Sprintf("| %s | %.0f to %.0f |\n", b.Grade, b.Min, b.Max))
	}
	sb.WriteString(fmt.Sprintf("\nCountries without measured indicators use `%s`.\n", m.Legacy))

	if len(m.Citations) > 0 {
		sb.WriteString("\n### Sources\n\n")
		for _, c := range m.Citations {
			src := c.Source
			if c.URL != "" {
				src = fmt.Sprintf("[%s](%s)", c.Source, c.URL)
			}
			if c.Indicator != "" {
				src += fmt.Sprintf(" (%s)", c.Indicator)
			}
			sb.WriteString(fmt.Sprintf("- %s\n", src))
		}
	}

	return sb.String()
}

func writeCountryTable(sb *strings.Builder, title string, recs []country.Record) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", title))
	if len(recs) == 0 {
		sb.WriteString("_None._\n\n")
		return
	}
	sb.WriteString("| # | Country | Region | Score | Grade | Trend |\n|---|---------|--------|-------|-------|-------|\n")
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("| %d | %s (%s) | %s | %.1f | %s %s | %s %+.1f |\n",
			i+1, rec.Name, rec.Code, rec.Region.Name(), rec.Score, gradeIcon(rec.Grade), rec.Grade,
			rec.Trend.Direction, rec.Trend.Magnitude))
	}
	sb.WriteString("\n")
}

func gradeIcon(g scoring.Grade) string {
	switch g {
	case scoring.GradeLow:
		return ":green_circle:"
	case scoring.GradeModerate:
		return ":yellow_circle:"
	case scoring.GradeHigh:
		return ":orange_circle:"
	default:
		return ":red_circle:"
	}
}
