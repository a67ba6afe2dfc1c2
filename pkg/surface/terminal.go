package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gaii/gaii/pkg/country"
	"github.com/gaii/gaii/pkg/indicator"
	"github.com/gaii/gaii/pkg/report"
	"github.com/gaii/gaii/pkg/rollup"
	"github.com/gaii/gaii/pkg/scoring"
)

// TerminalRenderer renders a Report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(g scoring.Grade) string {
	if noColor() {
		return ""
	}
	switch g {
	case scoring.GradeLow:
		return colorGreen
	case scoring.GradeModerate:
		return colorYellow
	case scoring.GradeHigh, scoring.GradeCritical:
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

// grade pads before coloring so escape codes never shift columns.
func grade(g scoring.Grade, width int) string {
	return colored(fmt.Sprintf("%-*s", width, g), gradeColor(g))
}

func trendArrow(d country.Direction) string {
	switch d {
	case country.DirectionUp:
		return "↑"
	case country.DirectionDown:
		return "↓"
	default:
		return "→"
	}
}

func (r *TerminalRenderer) Render(w io.Writer, rep *report.Report) error {
	g := rep.Global

	// Header
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%s: %s, score %.1f",
		rep.Title, colored(string(g.Grade), gradeColor(g.Grade)), g.WeightedScore)))
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("%s (%s, updated %s) - %d countries, %s people",
		rep.Dataset.Name, rep.Dataset.Source, rep.Dataset.LastUpdated, g.CountryCount, population(g.Population))))

	if len(rep.Findings) > 0 {
		fmt.Fprintln(w, "Findings:")
		for _, f := range rep.Findings {
			for i, line := range wrapText(f, 74) {
				prefix := "  • "
				if i > 0 {
					prefix = "    "
				}
				fmt.Fprintf(w, "%s%s\n", prefix, line)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "North/south split:")
	for _, grp := range []rollup.Group{g.Split.North, g.Split.South} {
		fmt.Fprintf(w, "  %-6s %3d countries  %12s  score %5.1f  adoption %5.1f\n",
			grp.Name, grp.CountryCount, population(grp.Population), grp.WeightedScore, grp.WeightedProxy)
	}
	fmt.Fprintf(w, "  gap    %+.1f\n\n", g.Split.Gap)

	fmt.Fprintln(w, "Regions:")
	RenderRegions(w, g.Regions)
	fmt.Fprintln(w)

	for _, sec := range []struct {
		title string
		recs  []country.Record
	}{
		{"Most equal", rep.Top},
		{"Least equal", rep.Bottom},
		{"Fastest improving", rep.Improving},
	} {
		fmt.Fprintf(w, "%s:\n", sec.title)
		if len(sec.recs) == 0 {
			fmt.Fprintln(w, dim("  none"))
		} else {
			RenderCountries(w, sec.recs)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// RenderCountries writes one aligned line per record.
func RenderCountries(w io.Writer, recs []country.Record) {
	for i, rec := range recs {
		fmt.Fprintf(w, "  %3d. %-4s %-26s %-5s %5.1f  %s %s %+.1f\n",
			i+1, rec.Code, truncate(rec.Name, 26), rec.Region, rec.Score,
			grade(rec.Grade, 9), trendArrow(rec.Trend.Direction), rec.Trend.Magnitude)
	}
}

// RenderCountry writes the full detail of one record.
func RenderCountry(w io.Writer, rec country.Record) {
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("%s (%s / %s)", rec.Name, rec.Code, rec.AltCode)))
	fmt.Fprintf(w, "  Region:      %s\n", rec.Region.Name())
	fmt.Fprintf(w, "  Population:  %s\n", population(rec.Population))
	fmt.Fprintf(w, "  Score:       %.1f %s\n", rec.Score, colored(string(rec.Grade), gradeColor(rec.Grade)))
	fmt.Fprintf(w, "  Trend:       %s %+.1f\n", rec.Trend.Direction, rec.Trend.Magnitude)
	fmt.Fprintf(w, "  Basis:       %s\n", rec.Basis)
	if rec.Basis == scoring.BasisAdoption {
		fmt.Fprintf(w, "  Adoption:    %.1f%% (paid-user index %.1f)\n", rec.AdoptionRate, rec.PaidUserIndex)
	}
	fmt.Fprintln(w, "  Indicators:")
	for _, n := range indicator.Names() {
		fmt.Fprintf(w, "    %-14s %5.1f\n", n, rec.Indicators.Value(n))
	}
	if rec.Source != "" {
		fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("Source: %s (%s)", rec.Source, rec.LastUpdated)))
	}
}

// RenderRegions writes one aligned line per region rollup.
func RenderRegions(w io.Writer, rus []rollup.RegionRollup) {
	for _, ru := range rus {
		if ru.CountryCount == 0 {
			fmt.Fprintf(w, "  %-5s %-28s %s\n", ru.Region, ru.Name, dim("no countries"))
			continue
		}
		fmt.Fprintf(w, "  %-5s %-28s %2d  %12s  mean %5.1f  weighted %5.1f %s  %s %+.1f\n",
			ru.Region, ru.Name, ru.CountryCount, population(ru.Population),
			ru.MeanScore, ru.WeightedScore, grade(ru.Grade, 9),
			trendArrow(ru.Trend.Direction), ru.Trend.Magnitude)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
