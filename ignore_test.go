package main

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGitMatcher(t *testing.T) {
	m := newGitMatcher([]byte(`# build output
*.log
!important.log

build/
/root.txt
docs/*.md
trailing.txt   
`))

	tests := []struct {
		path string
		want bool
	}{
		{"debug.log", true},
		{"nested/dir/debug.log", true},
		{"important.log", false},
		{"build/out.js", true},
		{"src/build/out.js", true},
		{"build", false}, // a file named build is not a directory
		{"root.txt", true},
		{"sub/root.txt", false},
		{"docs/readme.md", true},
		{"src/docs/readme.md", false},
		{"trailing.txt", true},
		{"main.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isIgnored(m, tt.path))
		})
	}
}

func TestGitMatcher_LaterRulesWin(t *testing.T) {
	m := newGitMatcher([]byte("!keep.log\n*.log\n"))
	assert.True(t, isIgnored(m, "keep.log"))

	m = newGitMatcher([]byte("*.log\n!keep.log\n"))
	assert.False(t, isIgnored(m, "keep.log"))
}

func TestGitMatcher_NegationCannotReachInsideIgnoredDir(t *testing.T) {
	m := newGitMatcher([]byte("logs/\n!logs/keep.txt\n"))
	assert.True(t, isIgnored(m, "logs/keep.txt"))
}

func TestIndexMatcher(t *testing.T) {
	m := newIndexMatcher([]byte("*.log\n!important.log\n"))

	assert.True(t, isIgnored(m, "debug.log"))
	assert.False(t, isIgnored(m, "important.log"))
	assert.False(t, isIgnored(m, "main.go"))
	assert.Equal(t, engineIndex, m.Name())
}

func TestIndexMatcher_NegationWinsRegardlessOfOrder(t *testing.T) {
	m := newIndexMatcher([]byte("!keep.log\n*.log\n"))
	assert.False(t, isIgnored(m, "keep.log"))
}

func TestIgnoreLines(t *testing.T) {
	lines := ignoreLines([]byte("# comment\n\n  \n*.tmp\r\nkeep\\ \n\\#literal\n"))
	assert.Equal(t, []string{"*.tmp", `keep\ `, "#literal"}, lines)
}

func TestLoadIgnoreMatcher(t *testing.T) {
	fsys := fstest.MapFS{".gitignore": {Data: []byte("*.log\n")}}
	logger := zap.NewNop()

	t.Run("git engine", func(t *testing.T) {
		m := loadIgnoreMatcher(fsys, engineGit, logger)
		require.Equal(t, engineGit, m.Name())
		assert.True(t, isIgnored(m, "a.log"))
	})

	t.Run("index engine", func(t *testing.T) {
		m := loadIgnoreMatcher(fsys, engineIndex, logger)
		require.Equal(t, engineIndex, m.Name())
		assert.True(t, isIgnored(m, "a.log"))
	})

	t.Run("none engine ignores nothing", func(t *testing.T) {
		m := loadIgnoreMatcher(fsys, engineNone, logger)
		assert.Equal(t, engineNone, m.Name())
		assert.False(t, isIgnored(m, "a.log"))
	})

	t.Run("unknown engine degrades to no rules", func(t *testing.T) {
		m := loadIgnoreMatcher(fsys, "pathspec", logger)
		assert.Equal(t, engineNone, m.Name())
	})

	t.Run("missing ignore file is an empty rule set", func(t *testing.T) {
		m := loadIgnoreMatcher(fstest.MapFS{}, engineGit, logger)
		assert.Equal(t, engineGit, m.Name())
		assert.False(t, isIgnored(m, "a.log"))
	})
}
