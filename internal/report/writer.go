package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/densitymap/internal/analysis"
	"github.com/sells-group/densitymap/internal/classify"
	"github.com/sells-group/densitymap/internal/heat"
)

// Format selects an output encoding.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON, FormatYAML, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", eris.Errorf("report: unknown format %q", s)
	}
}

// Writer renders report values in one format. Table output uses the
// locale-aware number formatter; the other formats carry raw numbers.
type Writer struct {
	Format  Format
	Numbers *Numbers
}

// NewWriter builds a Writer for the given format and locale.
func NewWriter(format, locale string) (*Writer, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	n, err := NewNumbers(locale)
	if err != nil {
		return nil, err
	}
	return &Writer{Format: f, Numbers: n}, nil
}

// WriteRows renders district rows.
func (w *Writer) WriteRows(out io.Writer, rows []Row) error {
	switch w.Format {
	case FormatJSON:
		return writeJSON(out, rows)
	case FormatYAML:
		return writeYAML(out, rows)
	}

	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, w.rowCells(r))
	}
	return w.writeGrid(out, "districts", rowHeader, records)
}

func (w *Writer) rowCells(r Row) []string {
	if w.Format == FormatTable {
		return []string{
			strconv.Itoa(r.Rank),
			r.Name,
			r.Region,
			w.Numbers.FormatInt(r.Population),
			w.Numbers.FormatKm2(r.AreaKm2),
			w.Numbers.FormatDensity(r.Density),
			strconv.Itoa(r.Class),
			r.Color,
			formatFloat(r.Lat),
			formatFloat(r.Lng),
		}
	}
	return []string{
		strconv.Itoa(r.Rank),
		r.Name,
		r.Region,
		formatFloat(r.Population),
		formatFloat(r.AreaKm2),
		formatFloat(r.Density),
		strconv.Itoa(r.Class),
		r.Color,
		formatFloat(r.Lat),
		formatFloat(r.Lng),
	}
}

// WriteLegend renders class breaks with their colors.
func (w *Writer) WriteLegend(out io.Writer, legend []classify.LegendEntry) error {
	switch w.Format {
	case FormatJSON:
		return writeJSON(out, legend)
	case FormatYAML:
		return writeYAML(out, legend)
	}

	records := make([][]string, 0, len(legend))
	for _, e := range legend {
		records = append(records, []string{
			strconv.Itoa(e.Class),
			w.bound(e.Lower),
			w.bound(e.Upper),
			e.Color,
		})
	}
	return w.writeGrid(out, "legend", []string{"class", "lower", "upper", "color"}, records)
}

// WriteSummary renders aggregate statistics.
func (w *Writer) WriteSummary(out io.Writer, s analysis.Summary) error {
	switch w.Format {
	case FormatJSON:
		return writeJSON(out, s)
	case FormatYAML:
		return writeYAML(out, s)
	}

	records := [][]string{
		{"count", strconv.Itoa(s.Count)},
		{"total_population", w.integer(s.TotalPopulation)},
		{"total_area_km2", w.area(s.TotalAreaKm2)},
		{"average_density", w.density(s.AverageDensity)},
		{"zero_population", strconv.Itoa(s.ZeroPopulation)},
		{"max_density", w.density(s.MaxDensity)},
		{"densest", s.Densest},
	}
	return w.writeGrid(out, "summary", []string{"metric", "value"}, records)
}

// WriteHeat renders weighted heatmap points.
func (w *Writer) WriteHeat(out io.Writer, points []heat.Point) error {
	switch w.Format {
	case FormatJSON:
		return writeJSON(out, points)
	case FormatYAML:
		return writeYAML(out, points)
	}

	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{formatFloat(p.Lat), formatFloat(p.Lng), formatFloat(p.Weight)})
	}
	return w.writeGrid(out, "heat", []string{"lat", "lng", "weight"}, records)
}

// bound renders a legend bound; the open top class shows as "+Inf".
func (w *Writer) bound(v float64) string {
	if math.IsInf(v, 1) {
		return "+Inf"
	}
	return w.density(v)
}

func (w *Writer) integer(v float64) string {
	if w.Format == FormatTable {
		return w.Numbers.FormatInt(v)
	}
	return formatFloat(v)
}

func (w *Writer) area(v float64) string {
	if w.Format == FormatTable {
		return w.Numbers.FormatKm2(v)
	}
	return formatFloat(v)
}

func (w *Writer) density(v float64) string {
	if w.Format == FormatTable {
		return w.Numbers.FormatDensity(v)
	}
	return formatFloat(v)
}

// writeGrid handles the three grid formats: table, csv and xlsx.
func (w *Writer) writeGrid(out io.Writer, sheet string, header []string, records [][]string) error {
	switch w.Format {
	case FormatCSV:
		return writeCSV(out, header, records)
	case FormatXLSX:
		return writeXLSX(out, sheet, header, records)
	default:
		return writeTable(out, header, records)
	}
}

func writeTable(out io.Writer, header []string, records [][]string) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	upper := make([]string, len(header))
	dashes := make([]string, len(header))
	for i, h := range header {
		upper[i] = strings.ToUpper(h)
		dashes[i] = strings.Repeat("-", len(h))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(upper, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for _, r := range records {
		_, _ = fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return eris.Wrap(tw.Flush(), "report: flush table")
}

func writeCSV(out io.Writer, header []string, records [][]string) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	if err := cw.WriteAll(records); err != nil {
		return eris.Wrap(err, "report: write csv")
	}
	return nil
}

func writeXLSX(out io.Writer, sheetName string, header []string, records [][]string) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "report: add xlsx sheet")
	}

	addRow := func(cells []string, numeric bool) {
		row := sheet.AddRow()
		for _, c := range cells {
			cell := row.AddCell()
			if numeric {
				if v, err := strconv.ParseFloat(c, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
					cell.SetFloat(v)
					continue
				}
			}
			cell.SetString(c)
		}
	}
	addRow(header, false)
	for _, r := range records {
		addRow(r, true)
	}

	if err := f.Write(out); err != nil {
		return eris.Wrap(err, "report: write xlsx")
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "report: encode json")
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "report: encode yaml")
	}
	return eris.Wrap(enc.Close(), "report: close yaml encoder")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
