package main

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	gogitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

const (
	ignoreFileName = ".gitignore"

	engineGit   = "git"   // ordered rules, last match wins
	engineIndex = "index" // indexed rules, a matching negation always wins
	engineNone  = "none"
)

// IgnoreMatcher decides whether a slash-separated path relative to the scan
// root is excluded by ignore rules.
type IgnoreMatcher interface {
	Match(rel string, isDir bool) bool
	Name() string
}

// loadIgnoreMatcher picks the ignore strategy once per run. A missing ignore
// file yields an empty rule set; any failure to load degrades to nopMatcher.
func loadIgnoreMatcher(fsys fs.FS, engine string, logger *zap.Logger) IgnoreMatcher {
	if engine == engineNone {
		return nopMatcher{}
	}

	data, err := fs.ReadFile(fsys, ignoreFileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("could not read ignore file, skipping ignore rules",
			zap.String("path", ignoreFileName), zap.Error(err))
		return nopMatcher{}
	}

	switch engine {
	case engineGit:
		return newGitMatcher(data)
	case engineIndex:
		return newIndexMatcher(data)
	default:
		logger.Warn("unknown ignore engine, skipping ignore rules", zap.String("engine", engine))
		return nopMatcher{}
	}
}

// isIgnored applies m to every ancestor directory of rel before rel itself.
// Git never looks inside an excluded directory, so a negation cannot bring
// back a file below one.
func isIgnored(m IgnoreMatcher, rel string) bool {
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if m.Match(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return m.Match(rel, false)
}

// --- go-git matcher ---

type gitMatcher struct {
	matcher gogitignore.Matcher
}

func newGitMatcher(data []byte) *gitMatcher {
	var patterns []gogitignore.Pattern
	for _, line := range ignoreLines(data) {
		patterns = append(patterns, gogitignore.ParsePattern(line, nil))
	}
	return &gitMatcher{matcher: gogitignore.NewMatcher(patterns)}
}

func (m *gitMatcher) Match(rel string, isDir bool) bool {
	return m.matcher.Match(strings.Split(rel, "/"), isDir)
}

func (m *gitMatcher) Name() string { return engineGit }

// ignoreLines returns the pattern lines of a gitignore file: comments and
// blank lines dropped, unescaped trailing spaces trimmed, `\#` unescaped.
func ignoreLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		line = trimTrailingSpaces(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}
		lines = append(lines, line)
	}
	return lines
}

func trimTrailingSpaces(line string) string {
	for strings.HasSuffix(line, " ") && !strings.HasSuffix(line, `\ `) {
		line = line[:len(line)-1]
	}
	return line
}

// --- monochromegane matcher ---

type indexMatcher struct {
	matcher gitignore.IgnoreMatcher
}

func newIndexMatcher(data []byte) *indexMatcher {
	return &indexMatcher{matcher: gitignore.NewGitIgnoreFromReader(".", bytes.NewReader(data))}
}

func (m *indexMatcher) Match(rel string, isDir bool) bool {
	return m.matcher.Match(filepath.FromSlash(rel), isDir)
}

func (m *indexMatcher) Name() string { return engineIndex }

// --- no rules ---

type nopMatcher struct{}

func (nopMatcher) Match(string, bool) bool { return false }

func (nopMatcher) Name() string { return engineNone }
