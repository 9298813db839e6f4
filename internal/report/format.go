// Package report renders districts, legends, summaries and heat points in
// tabular and machine-readable formats.
package report

import (
	"math"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale formats numbers the Indonesian way: "1.234.567".
const DefaultLocale = "id"

// Numbers formats values for display in one locale.
type Numbers struct {
	p *message.Printer
}

// NewNumbers returns a formatter for the BCP 47 tag locale. An empty tag
// selects DefaultLocale.
func NewNumbers(locale string) (*Numbers, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, eris.Wrapf(err, "report: parse locale %q", locale)
	}
	return &Numbers{p: message.NewPrinter(tag)}, nil
}

// FormatInt rounds v and groups thousands.
func (n *Numbers) FormatInt(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return n.p.Sprintf("%d", int64(math.Round(v)))
}

// FormatDensity shows large densities as grouped integers and small ones
// with two decimals.
func (n *Numbers) FormatDensity(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if math.Abs(v) >= 1000 {
		return n.FormatInt(v)
	}
	return n.FormatDecimal(v)
}

// FormatKm2 shows an area with two decimals.
func (n *Numbers) FormatKm2(v float64) string {
	return n.FormatDecimal(v)
}

// FormatDecimal shows v with two decimals and grouped thousands.
func (n *Numbers) FormatDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return n.p.Sprintf("%.2f", v)
}
