package main

// maxFileSize is the largest file, in bytes, that is embedded in a document.
const maxFileSize = 100 * 1024

// Exclusion reasons, in the order the rules are applied.
const (
	reasonGitPath   = "git path"
	reasonGitignore = "gitignore"
	reasonTooLarge  = "too large"
	reasonBinary    = "binary"
	reasonUnread    = "unreadable"
)

// Decision is the outcome of running a candidate through PathFilter.
type Decision struct {
	Include bool
	Reason  string // Empty when included
}

func include() Decision { return Decision{Include: true} }

func exclude(reason string) Decision { return Decision{Reason: reason} }

// PathFilter decides whether a candidate belongs in the document.
type PathFilter struct {
	ignore   IgnoreMatcher
	isBinary func([]byte) bool
}

// NewPathFilter returns a filter using m for ignore rules. A nil m applies no
// ignore rules; the .git exclusion still holds.
func NewPathFilter(m IgnoreMatcher) *PathFilter {
	if m == nil {
		m = nopMatcher{}
	}
	return &PathFilter{ignore: m, isBinary: isBinary}
}

// Precheck applies the rules that need no file content: .git paths, ignore
// rules and the size limit.
func (f *PathFilter) Precheck(rel string, size int64) Decision {
	if isGitPath(rel) {
		return exclude(reasonGitPath)
	}
	if isIgnored(f.ignore, rel) {
		return exclude(reasonGitignore)
	}
	if size > maxFileSize {
		return exclude(reasonTooLarge)
	}
	return include()
}

// CheckContent applies the binary heuristic.
func (f *PathFilter) CheckContent(content []byte) Decision {
	if f.isBinary(content) {
		return exclude(reasonBinary)
	}
	return include()
}

// Decide runs every rule against a path and its full content.
func (f *PathFilter) Decide(rel string, content []byte) Decision {
	if d := f.Precheck(rel, int64(len(content))); !d.Include {
		return d
	}
	return f.CheckContent(content)
}

// isGitPath reports whether any segment of rel is ".git".
func isGitPath(rel string) bool {
	for _, seg := range splitSegments(rel) {
		if seg == ".git" {
			return true
		}
	}
	return false
}
