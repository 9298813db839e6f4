// Package loader fetches the Kota and Kabupaten subdistrict datasets from
// local files or HTTP and decodes them into GeoJSON features.
package loader

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/densitymap/internal/density"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 2 * time.Minute

// Supported source formats.
const (
	FormatGeoJSON   = "geojson"
	FormatShapefile = "shapefile"
	FormatZip       = "zip"
)

// Options locates the two source datasets.
type Options struct {
	Kota       string
	Kabupaten  string
	TempDir    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (o Options) sources() map[density.Region]string {
	return map[density.Region]string{
		density.RegionKota:      o.Kota,
		density.RegionKabupaten: o.Kabupaten,
	}
}

func (o Options) client() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Load fetches both regions concurrently and returns their features. If
// either source fails the whole load fails.
func Load(ctx context.Context, opts Options) (map[density.Region][]*geojson.Feature, error) {
	srcs := opts.sources()
	results := make([][]*geojson.Feature, len(density.SourceRegions))

	tempDir := opts.TempDir
	if tempDir == "" {
		dir, err := os.MkdirTemp("", "densitymap-*")
		if err != nil {
			return nil, eris.Wrap(err, "loader: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck
		tempDir = dir
	}

	client := opts.client()
	g, gctx := errgroup.WithContext(ctx)
	for i, region := range density.SourceRegions {
		src := srcs[region]
		g.Go(func() error {
			dir := filepath.Join(tempDir, strings.ToLower(string(region)))
			fs, err := loadSource(gctx, client, src, dir)
			if err != nil {
				return eris.Wrapf(err, "loader: load %s from %s", region, src)
			}
			results[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[density.Region][]*geojson.Feature, len(results))
	for i, region := range density.SourceRegions {
		out[region] = results[i]
	}
	return out, nil
}

// LoadSource loads a single source. It is exposed for callers that only need
// one region.
func LoadSource(ctx context.Context, opts Options, src string) ([]*geojson.Feature, error) {
	tempDir := opts.TempDir
	if tempDir == "" {
		dir, err := os.MkdirTemp("", "densitymap-*")
		if err != nil {
			return nil, eris.Wrap(err, "loader: create temp dir")
		}
		defer os.RemoveAll(dir) //nolint:errcheck
		tempDir = dir
	}
	return loadSource(ctx, opts.client(), src, tempDir)
}

func loadSource(ctx context.Context, client *http.Client, src, workDir string) ([]*geojson.Feature, error) {
	if strings.TrimSpace(src) == "" {
		return nil, eris.New("empty source")
	}
	log := zap.L().With(zap.String("component", "loader"), zap.String("source", src))

	format, err := DetectFormat(src)
	if err != nil {
		return nil, err
	}

	remote := IsURL(src)
	if remote && format == FormatShapefile {
		return nil, eris.New("remote shapefiles must be zipped")
	}

	var features []*geojson.Feature
	switch {
	case remote && format == FormatGeoJSON:
		log.Debug("fetching geojson")
		features, err = fetchGeoJSON(ctx, client, src)
	case remote && format == FormatZip:
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return nil, eris.Wrap(err, "create work dir")
		}
		zipPath := filepath.Join(workDir, "source.zip")
		log.Debug("downloading archive", zap.String("path", zipPath))
		if err := downloadFile(ctx, client, src, zipPath); err != nil {
			return nil, err
		}
		features, err = readZip(zipPath, filepath.Join(workDir, "extract"))
	case format == FormatGeoJSON:
		features, err = readGeoJSONFile(src)
	case format == FormatShapefile:
		features, err = ReadShapefile(src)
	case format == FormatZip:
		features, err = readZip(src, filepath.Join(workDir, "extract"))
	}
	if err != nil {
		return nil, err
	}

	log.Info("source loaded", zap.Int("features", len(features)))
	return features, nil
}

// IsURL reports whether src is an http or https URL.
func IsURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DetectFormat picks a decoder from the source's file extension. Query
// strings on URLs are ignored.
func DetectFormat(src string) (string, error) {
	p := src
	if IsURL(src) {
		u, err := url.Parse(src)
		if err != nil {
			return "", eris.Wrap(err, "parse source url")
		}
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".geojson", ".json":
		return FormatGeoJSON, nil
	case ".shp":
		return FormatShapefile, nil
	case ".zip":
		return FormatZip, nil
	default:
		return "", eris.Errorf("unsupported source format %q", path.Ext(p))
	}
}
