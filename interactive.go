package main

import (
	"errors"
	"fmt"
	"os"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"golang.org/x/term"
)

// errSelectionAborted is returned when the user leaves the finder.
var errSelectionAborted = errors.New("interactive selection aborted")

// selectFiles lets the user narrow the collected files with a fuzzy finder.
func selectFiles(files []IncludedFile) ([]IncludedFile, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("interactive mode requires a terminal on stdin")
	}

	idx, err := fuzzyfinder.FindMulti(
		files,
		func(i int) string {
			return files[i].Path
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Tab selects multiple files, Enter confirms."
			}
			return fmt.Sprintf("%s (%d bytes)\n\n%s", files[i].Path, files[i].Size, files[i].Content)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, errSelectionAborted
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	return pickFiles(files, idx), nil
}

// pickFiles keeps the chosen indices in collection order.
func pickFiles(files []IncludedFile, idx []int) []IncludedFile {
	chosen := make(map[int]bool, len(idx))
	for _, i := range idx {
		chosen[i] = true
	}
	var out []IncludedFile
	for i, f := range files {
		if chosen[i] {
			out = append(out, f)
		}
	}
	return out
}
