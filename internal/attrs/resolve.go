package attrs

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// DefaultName is used when no name attribute is present.
const DefaultName = "(Tanpa Nama)"

// DefaultPopulationKeys lists the population attribute keys probed in order.
var DefaultPopulationKeys = []string{
	"Penduduk", "penduduk", "PENDUDUK",
	"Jumlah", "jumlah", "JUMLAH", "JML",
	"Populasi", "populasi",
	"Population", "population", "POPULATION",
	"Jumlah Penduduk", "JUMLAH_PDDK",
}

// DefaultNameKeys lists the name attribute keys probed in order.
var DefaultNameKeys = []string{"WADMKC", "nm_kecamatan", "NAMOBJ", "nama", "NAME"}

// DefaultScanSubstrings are matched against lowercased keys when no
// population candidate yields a value.
var DefaultScanSubstrings = []string{"jumlah", "penduduk"}

// Resolver picks population and name values out of a feature's properties.
// The zero value probes nothing; use NewResolver for the default key lists.
type Resolver struct {
	PopulationKeys []string
	NameKeys       []string
	ScanSubstrings []string
	ScanFallback   bool
	DefaultName    string
}

// NewResolver returns a Resolver with the default key lists and the
// substring scan enabled.
func NewResolver() Resolver {
	return Resolver{
		PopulationKeys: append([]string(nil), DefaultPopulationKeys...),
		NameKeys:       append([]string(nil), DefaultNameKeys...),
		ScanSubstrings: append([]string(nil), DefaultScanSubstrings...),
		ScanFallback:   true,
		DefaultName:    DefaultName,
	}
}

// Population returns the first candidate value that parses to a positive
// number. If no candidate matches and ScanFallback is set, keys containing
// one of ScanSubstrings are tried in sorted key order. Returns 0 otherwise.
func (r Resolver) Population(props map[string]any) float64 {
	if len(props) == 0 {
		return 0
	}
	for _, key := range r.PopulationKeys {
		v, ok := props[key]
		if !ok {
			continue
		}
		if n := ParsePopulation(v); n > 0 {
			return n
		}
	}
	if !r.ScanFallback || len(r.ScanSubstrings) == 0 {
		return 0
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !r.scanMatch(k) {
			continue
		}
		if n := ParsePopulation(props[k]); n > 0 {
			return n
		}
	}
	return 0
}

func (r Resolver) scanMatch(key string) bool {
	lk := strings.ToLower(key)
	for _, sub := range r.ScanSubstrings {
		if sub != "" && strings.Contains(lk, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// Name returns the first non-empty name attribute, or DefaultName.
func (r Resolver) Name(props map[string]any) string {
	for _, key := range r.NameKeys {
		v, ok := props[key]
		if !ok || v == nil {
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	if r.DefaultName != "" {
		return r.DefaultName
	}
	return DefaultName
}
