package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// treeUnits are the four-rune prefixes of a tree listing, one per level.
var treeUnits = []string{"├── ", "└── ", "│   ", "    ", "|-- ", "`-- ", "|   "}

// TreeEntry is one line of a parsed tree listing.
type TreeEntry struct {
	Depth int
	Name  string
	IsDir bool
}

// treeReport matches the "N directories, M files" line tree(1) ends with.
var treeReport = regexp.MustCompile(`^\d+ director(y|ies)(, \d+ files?)?$`)

// parseTreeListing reads a listing in the format renderTree and tree(1)
// produce. An entry is a directory when its name ends in "/" or the next
// entry is nested below it. Symlink targets ("name -> target") are dropped.
func parseTreeListing(text string) ([]TreeEntry, error) {
	var entries []TreeEntry
	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(strings.ReplaceAll(line, "\u00a0", " "), " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth := 0
		for {
			unit := matchTreeUnit(line)
			if unit == "" {
				break
			}
			line = line[len(unit):]
			depth++
		}

		name := strings.TrimSpace(line)
		if depth == 0 && treeReport.MatchString(name) {
			continue
		}
		if i := strings.Index(name, " -> "); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimRight(name, "/")
		if err := validateTreeName(name, depth); err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		entries = append(entries, TreeEntry{Depth: depth, Name: name, IsDir: isDir})
	}

	for i := range entries {
		if i+1 < len(entries) && entries[i+1].Depth > entries[i].Depth {
			entries[i].IsDir = true
		}
	}
	return entries, nil
}

func matchTreeUnit(line string) string {
	for _, u := range treeUnits {
		if strings.HasPrefix(line, u) {
			return u
		}
	}
	return ""
}

func validateTreeName(name string, depth int) error {
	switch {
	case name == "":
		return fmt.Errorf("empty entry name")
	case name == "." && depth == 0:
		return nil
	case name == "." || name == "..":
		return fmt.Errorf("invalid entry name %q", name)
	case strings.ContainsAny(name, `/\`) || filepath.IsAbs(name):
		return fmt.Errorf("entry name %q must be a single path element", name)
	}
	return nil
}

// scaffold creates the directories and empty files described by entries
// below base. Existing files are left untouched. With dryRun it only prints
// what it would do. It returns the file paths it created or would create.
func scaffold(base string, entries []TreeEntry, dryRun bool, out io.Writer) ([]string, error) {
	var stack []string
	var files []string
	for i, e := range entries {
		if e.Depth > len(stack) {
			return nil, fmt.Errorf("entry %q is nested deeper than its parent", e.Name)
		}
		stack = stack[:e.Depth]

		parts := append([]string{base}, stack...)
		p := filepath.Join(append(parts, e.Name)...)
		if e.IsDir {
			if dryRun {
				fmt.Fprintln(out, "mkdir", p)
			} else if err := os.MkdirAll(p, 0o755); err != nil {
				return nil, fmt.Errorf("error creating directory %s: %w", p, err)
			}
			stack = append(stack, e.Name)
			continue
		}

		if dryRun {
			fmt.Fprintln(out, "touch", p)
		} else if err := touch(p); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		files = append(files, p)
	}
	return files, nil
}

func touch(p string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("error creating directory for %s: %w", p, err)
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error creating file %s: %w", p, err)
	}
	return f.Close()
}

// editFiles opens each file in $EDITOR, one after another.
func editFiles(files []string, stdin io.Reader, stdout, stderr io.Writer) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	for _, f := range files {
		cmd := exec.Command(editor, f)
		cmd.Stdin, cmd.Stdout, cmd.Stderr = stdin, stdout, stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("error running %s on %s: %w", editor, f, err)
		}
	}
	return nil
}
