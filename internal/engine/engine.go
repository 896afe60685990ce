package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/cache"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/config"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/java"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/rules"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/util"
)

type Engine struct {
	log      hclog.Logger
	catalog  []rules.Rule
	registry java.Registry
	cfg      config.Config
	useCache bool
}

func New(cfg config.Config, log hclog.Logger) *Engine {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Engine{
		log:      log.Named("engine"),
		catalog:  rules.Catalog(),
		registry: java.DefaultRegistry(),
		cfg:      cfg,
		useCache: true,
	}
}

// WithoutCache disables the on-disk result cache; used by tests and by
// evaluation runs over in-memory records.
func (e *Engine) WithoutCache() *Engine {
	e.useCache = false
	return e
}

func (e *Engine) Catalog() []rules.Rule { return e.catalog }

// ScanSource runs the per-file pipeline over source text held in memory.
// file is only used to label findings; no I/O happens here.
func (e *Engine) ScanSource(file, src string) model.FileResult {
	res := model.FileResult{File: filepath.ToSlash(file)}
	if !utf8.ValidString(src) {
		// fatal for this file only; reported, never silently skipped
		res.Error = "invalid input: source is not valid UTF-8 text"
		return res
	}
	normalized, warnings := java.Normalize(src)
	sites, extractWarnings := java.Extract(normalized, e.registry)
	res.Warnings = append(warnings, extractWarnings...)
	res.Findings = Detect(res.File, sites, e.catalog)
	for i := range res.Findings {
		res.Findings[i].Snippet = util.ExtractSnippet(src, res.Findings[i].Line, 4)
	}
	return res
}

// ScanFile reads one file from disk and runs the pipeline, consulting the
// content-addressed cache first.
func (e *Engine) ScanFile(path string) model.FileResult {
	b, err := os.ReadFile(path)
	if err != nil {
		return model.FileResult{File: filepath.ToSlash(path), Error: err.Error()}
	}
	if e.useCache {
		key := cache.Key("findings-v1", e.catalogVersion(), path, string(b))
		if data, ok := cache.Load(key); ok {
			var res model.FileResult
			if err := json.Unmarshal(data, &res); err == nil {
				return res
			}
		}
		res := e.ScanSource(path, string(b))
		if data, err := json.Marshal(res); err == nil {
			_ = cache.Store(key, data)
		}
		return res
	}
	return e.ScanSource(path, string(b))
}

// Scan processes a file or a tree of .java files. Files are independent, so
// they run on a bounded worker pool; results are reassembled in path order
// for deterministic output.
func (e *Engine) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error) {
	start := time.Now()
	files, err := discoverFiles(req.Path)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	e.log.Debug("scanning", "files", len(files), "path", req.Path)

	workers := req.Workers
	if workers <= 0 {
		workers = e.cfg.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]model.FileResult, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, f := range files {
		if ctx.Err() != nil {
			break
		}
		i, f := i, f
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = e.ScanFile(f)
		}()
	}
	wg.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	bl, err := loadBaseline(req.Baseline)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	out := &model.ScanResult{RunID: uuid.NewString()}
	for i := range results {
		res := results[i]
		if res.Error != "" {
			e.log.Warn("file not processed", "file", res.File, "error", res.Error)
		}
		res.Findings = applyIgnores(res.Findings, e.cfg)
		res.Findings = filterBySeverity(res.Findings, e.cfg)
		res.Findings = filterByRules(res.Findings, e.cfg)
		res.Findings = filterByBaseline(res.Findings, bl)
		out.Files = append(out.Files, res)
		out.Findings = append(out.Findings, res.Findings...)
	}
	out.Elapsed = time.Since(start)
	return out, nil
}

func (e *Engine) catalogVersion() string {
	ids := make([]string, 0, len(e.catalog))
	for _, r := range e.catalog {
		ids = append(ids, r.ID)
	}
	return strings.Join(ids, ",")
}

// discoverFiles returns the .java files under root, or root itself when it
// is a single file.
func discoverFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".java") {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
