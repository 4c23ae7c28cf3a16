package main

// IncludedFile is a matched file that passed every filter.
type IncludedFile struct {
	Path    string // Slash-separated, relative to the scan root
	Content string
	Size    int64
}

// Exclusion records why a matched file was left out of the document.
type Exclusion struct {
	Path   string
	Reason string
	Err    error // Set for read failures
}

// Collection is the result of expanding one pattern against the scan root.
type Collection struct {
	Files    []IncludedFile
	Excluded []Exclusion
}

// Summary holds aggregated information about the collected files.
type Summary struct {
	TotalFiles  int
	TotalSize   int64
	TotalTokens int
}

func summarize(files []IncludedFile) Summary {
	var s Summary
	for _, f := range files {
		s.TotalFiles++
		s.TotalSize += f.Size
	}
	return s
}
