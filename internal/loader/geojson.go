package loader

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// DecodeGeoJSON reads a FeatureCollection, or a single Feature, from r.
func DecodeGeoJSON(r io.Reader) ([]*geojson.Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "read geojson")
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, eris.Wrap(err, "decode geojson")
	}

	switch head.Type {
	case "FeatureCollection":
		var fc geojson.FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, eris.Wrap(err, "decode feature collection")
		}
		return fc.Features, nil
	case "Feature":
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, eris.Wrap(err, "decode feature")
		}
		return []*geojson.Feature{&f}, nil
	default:
		return nil, eris.Errorf("geojson: expected FeatureCollection, got %q", head.Type)
	}
}

func readGeoJSONFile(p string) ([]*geojson.Feature, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", p)
	}
	defer f.Close() //nolint:errcheck

	return DecodeGeoJSON(f)
}
