package dataset

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"
)

// Archives for the supported benchmarks. GitHub serves the default branch
// as a zip without authentication.
var KnownSources = map[string]string{
	"cryptoapi_bench": "https://github.com/CryptoGuardOSS/cryptoapi-bench/archive/refs/heads/master.zip",
	"owasp_benchmark": "https://github.com/OWASP-Benchmark/BenchmarkJava/archive/refs/heads/master.zip",
}

type Fetcher struct {
	client *resty.Client
	log    hclog.Logger
}

func NewFetcher(log hclog.Logger) *Fetcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Fetcher{client: resty.New(), log: log.Named("fetch")}
}

// Fetch downloads a zip archive and unpacks it into destDir/name, stripping
// the archive's top-level directory so the layout matches a plain clone.
func (f *Fetcher) Fetch(ctx context.Context, name, url, destDir string) error {
	if url == "" {
		known, ok := KnownSources[name]
		if !ok {
			return fmt.Errorf("unknown dataset %q and no url given", name)
		}
		url = known
	}
	target := filepath.Join(destDir, name)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "cryptoscan-*.zip")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	f.log.Info("downloading dataset", "name", name, "url", url)
	resp, err := f.client.R().SetContext(ctx).SetOutput(tmpPath).Get(url)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	if resp.IsError() {
		return fmt.Errorf("download %s: status %s", url, resp.Status())
	}

	n, err := unzipStrip(tmpPath, target)
	if err != nil {
		return fmt.Errorf("unpack %s: %w", name, err)
	}
	f.log.Info("dataset unpacked", "name", name, "files", n, "dir", target)
	return nil
}

// unzipStrip extracts an archive, dropping the single top-level directory
// GitHub wraps repository archives in. Entries that would escape destDir
// are rejected.
func unzipStrip(zipPath, destDir string) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	count := 0
	for _, entry := range zr.File {
		rel := stripTopDir(entry.Name)
		if rel == "" {
			continue
		}
		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return count, fmt.Errorf("zip entry escapes destination: %s", entry.Name)
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return count, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return count, err
		}
		rc, err := entry.Open()
		if err != nil {
			return count, err
		}
		out, err := os.Create(dest)
		if err != nil {
			rc.Close()
			return count, err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func stripTopDir(name string) string {
	if i := strings.Index(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return ""
}
