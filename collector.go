package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Collector expands a glob pattern against a scan root and returns the
// files that pass a PathFilter.
type Collector struct {
	fsys   fs.FS
	filter *PathFilter
	logger *zap.Logger
}

// NewCollector returns a collector reading from fsys, which is the scan root.
func NewCollector(fsys fs.FS, filter *PathFilter, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{fsys: fsys, filter: filter, logger: logger}
}

// Collect expands pattern and returns the included files sorted by path.
// Unreadable files are logged and recorded as exclusions. When nothing is
// included the collection is still returned along with ErrNoMatches.
func (c *Collector) Collect(pattern string) (*Collection, error) {
	pattern = normalizePattern(pattern)
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return nil, &PatternSyntaxError{Pattern: pattern, Err: doublestar.ErrBadPattern}
	}

	if _, err := fs.Stat(c.fsys, "."); err != nil {
		return nil, fmt.Errorf("error accessing scan root: %w", err)
	}

	matches, err := doublestar.Glob(c.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, &PatternSyntaxError{Pattern: pattern, Err: err}
		}
		return nil, fmt.Errorf("error expanding pattern %q: %w", pattern, err)
	}

	paths := dedupePaths(matches)
	c.logger.Debug("expanded pattern", zap.String("pattern", pattern), zap.Int("matches", len(paths)))

	col := &Collection{}
	for _, rel := range paths {
		file, ok, excl := c.evaluate(rel)
		if ok {
			col.Files = append(col.Files, file)
		} else if excl != nil {
			col.Excluded = append(col.Excluded, *excl)
		}
	}

	if len(col.Files) == 0 {
		return col, fmt.Errorf("%w pattern %q", ErrNoMatches, pattern)
	}
	return col, nil
}

// evaluate runs one candidate through the filter. A nil exclusion with
// ok=false means the path is not a regular file and is dropped silently.
func (c *Collector) evaluate(rel string) (IncludedFile, bool, *Exclusion) {
	info, err := fs.Stat(c.fsys, rel)
	if err != nil {
		return IncludedFile{}, false, c.readFailure(rel, err)
	}
	if !info.Mode().IsRegular() {
		return IncludedFile{}, false, nil
	}

	if d := c.filter.Precheck(rel, info.Size()); !d.Include {
		return IncludedFile{}, false, &Exclusion{Path: rel, Reason: d.Reason}
	}

	data, err := fs.ReadFile(c.fsys, rel)
	if err != nil {
		return IncludedFile{}, false, c.readFailure(rel, err)
	}
	// The file may have grown since it was stat'ed.
	if len(data) > maxFileSize {
		return IncludedFile{}, false, &Exclusion{Path: rel, Reason: reasonTooLarge}
	}
	if d := c.filter.CheckContent(data); !d.Include {
		return IncludedFile{}, false, &Exclusion{Path: rel, Reason: d.Reason}
	}

	return IncludedFile{Path: rel, Content: string(data), Size: int64(len(data))}, true, nil
}

func (c *Collector) readFailure(rel string, err error) *Exclusion {
	readErr := &FileReadError{Path: rel, Err: err}
	c.logger.Warn("skipping unreadable file", zap.String("path", rel), zap.Error(err))
	return &Exclusion{Path: rel, Reason: reasonUnread, Err: readErr}
}

// dedupePaths cleans, deduplicates and sorts glob matches byte-wise.
func dedupePaths(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		p := path.Clean(m)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return pathLess(paths[i], paths[j]) })
	return paths
}

// pathLess orders paths one segment at a time, so "a/y" sorts before "a-b/x"
// the same way the document walks directory a before a-b.
func pathLess(a, b string) bool {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

func normalizePattern(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	for strings.HasPrefix(pattern, "./") {
		pattern = strings.TrimLeft(pattern[2:], "/")
	}
	return pattern
}

// resolveScanRoot returns the directory to scan and the pattern relative to
// it. Patterns that are absolute or climb above cwd are re-rooted at their
// static prefix; everything else is scanned from cwd.
func resolveScanRoot(cwd, pattern string) (root, rel string) {
	p := filepath.ToSlash(pattern)
	if !filepath.IsAbs(pattern) && p != ".." && !strings.HasPrefix(p, "../") {
		return cwd, normalizePattern(p)
	}

	base, rest := doublestar.SplitPattern(p)
	base = filepath.FromSlash(base)
	if !filepath.IsAbs(base) {
		base = filepath.Join(cwd, base)
	}
	return filepath.Clean(base), rest
}

// splitSegments splits a slash-separated path, dropping empty segments.
func splitSegments(rel string) []string {
	var segs []string
	for _, s := range strings.Split(rel, "/") {
		if s != "" && s != "." {
			segs = append(segs, s)
		}
	}
	return segs
}
