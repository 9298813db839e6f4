package loader

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cast"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// ReadShapefile decodes a polygon shapefile and its DBF attributes into
// features. Numeric DBF fields become float64, everything else a trimmed
// string. Records without a usable polygon keep a nil geometry.
func ReadShapefile(shpPath string) ([]*geojson.Feature, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = strings.TrimRight(f.String(), "\x00")
	}

	var features []*geojson.Feature
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		props := make(map[string]any, len(fields))
		for i, f := range fields {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			props[names[i]] = attributeValue(f.Fieldtype, val)
		}

		var g geom.T
		if p, ok := shape.(*shp.Polygon); ok {
			if mp := polygonToMultiPolygon(p); mp != nil {
				g = mp
			}
		}
		if g == nil {
			skipped++
		}
		features = append(features, &geojson.Feature{Geometry: g, Properties: props})
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "read shapefile %s", shpPath)
	}

	if skipped > 0 {
		zap.L().Debug("loader: shapefile records without polygon geometry",
			zap.String("path", shpPath),
			zap.Int("skipped", skipped),
		)
	}
	return features, nil
}

func attributeValue(fieldType byte, val string) any {
	switch fieldType {
	case 'N', 'F':
		if val == "" {
			return nil
		}
		if v, err := cast.ToFloat64E(val); err == nil {
			return v
		}
		return val
	default:
		return val
	}
}

// polygonToMultiPolygon groups shapefile parts into polygons. Clockwise parts
// are outer rings and start a new polygon; counter-clockwise parts are holes
// of the polygon before them.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	var current *geom.Polygon
	flush := func() {
		if current == nil {
			return
		}
		if err := mp.Push(current); err != nil {
			zap.L().Debug("loader: skipping malformed polygon", zap.Error(err))
		}
		current = nil
	}

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}
		if start < 0 || end > int32(len(p.Points)) || end-start < 3 {
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}
		ring := geom.NewLinearRingFlat(geom.XY, flat)

		if current == nil || signedArea(flat) <= 0 {
			flush()
			current = geom.NewPolygon(geom.XY)
		}
		if err := current.Push(ring); err != nil {
			zap.L().Debug("loader: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
		}
	}
	flush()

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// signedArea is the shoelace sum over flat XY coordinates. It is negative
// for clockwise rings.
func signedArea(flat []float64) float64 {
	n := len(flat) / 2
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += flat[2*i]*flat[2*j+1] - flat[2*j]*flat[2*i+1]
	}
	return sum / 2
}
