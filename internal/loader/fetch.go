package loader

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// openURL issues a GET and returns the body of a 200 response.
func openURL(ctx context.Context, client *http.Client, src string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, eris.Wrap(err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "download")
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("download returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func fetchGeoJSON(ctx context.Context, client *http.Client, src string) ([]*geojson.Feature, error) {
	body, err := openURL(ctx, client, src)
	if err != nil {
		return nil, err
	}
	defer body.Close() //nolint:errcheck

	return DecodeGeoJSON(body)
}

// downloadFile downloads a URL to a local file.
func downloadFile(ctx context.Context, client *http.Client, src, dest string) error {
	body, err := openURL(ctx, client, src)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck

	f, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "create file")
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, body); err != nil {
		return eris.Wrap(err, "write file")
	}
	return nil
}

// readZip extracts an archive and decodes the first shapefile inside it,
// falling back to the first GeoJSON file.
func readZip(zipPath, extractDir string) ([]*geojson.Feature, error) {
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, eris.Wrap(err, "create extract dir")
	}
	if err := extractZIP(zipPath, extractDir); err != nil {
		return nil, eris.Wrap(err, "extract zip")
	}

	if shpPath, err := findFileByExt(extractDir, ".shp"); err == nil {
		return ReadShapefile(shpPath)
	}
	for _, ext := range []string{".geojson", ".json"} {
		if p, err := findFileByExt(extractDir, ext); err == nil {
			return readGeoJSONFile(p)
		}
	}
	return nil, eris.Errorf("no .shp or .geojson file found in %s", filepath.Base(zipPath))
}

// extractZIP flattens a ZIP archive into destDir.
func extractZIP(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "open zip")
	}
	defer r.Close() //nolint:errcheck

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		if strings.HasPrefix(name, ".") {
			continue
		}
		if err := extractEntry(f, filepath.Join(destDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, destPath string) error {
	rc, err := f.Open()
	if err != nil {
		return eris.Wrapf(err, "open zip entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return eris.Wrapf(err, "create %s", destPath)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return eris.Wrapf(err, "extract %s", f.Name)
	}
	return nil
}

// findFileByExt finds the first file with the given extension in a directory.
func findFileByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrap(err, "read directory")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("no %s file found in %s", ext, dir)
}
