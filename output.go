package main

import (
	"path"
	"sort"
	"strings"
)

// maxHeaderLevel is the deepest header Markdown renders.
const maxHeaderLevel = 6

// DirectoryNode is one directory in the tree rebuilt from the collected
// file paths. The root node stands for the scan root and has depth 0.
type DirectoryNode struct {
	Name     string
	Depth    int
	Children []*DirectoryNode // Sorted by name
	Files    []IncludedFile   // Sorted by base name
}

// buildTree groups files into a DirectoryNode tree.
func buildTree(files []IncludedFile) *DirectoryNode {
	root := &DirectoryNode{Name: "."}
	dirs := map[string]*DirectoryNode{"": root}

	for _, file := range files {
		segs := splitSegments(file.Path)
		if len(segs) == 0 {
			continue
		}
		parent := root
		key := ""
		for _, seg := range segs[:len(segs)-1] {
			key = path.Join(key, seg)
			node, ok := dirs[key]
			if !ok {
				node = &DirectoryNode{Name: seg, Depth: parent.Depth + 1}
				parent.Children = append(parent.Children, node)
				dirs[key] = node
			}
			parent = node
		}
		parent.Files = append(parent.Files, file)
	}

	sortChildren(root)
	return root
}

// sortChildren recursively sorts directories and files by name.
func sortChildren(node *DirectoryNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})
	sort.SliceStable(node.Files, func(i, j int) bool {
		return path.Base(node.Files[i].Path) < path.Base(node.Files[j].Path)
	})
	for _, child := range node.Children {
		sortChildren(child)
	}
}

// entry is either a directory or a file, so a node's contents can be walked
// in one name order.
type entry struct {
	name string
	dir  *DirectoryNode
	file *IncludedFile
}

// entries merges a node's directories and files into one name-sorted list.
func (n *DirectoryNode) entries() []entry {
	out := make([]entry, 0, len(n.Children)+len(n.Files))
	i, j := 0, 0
	for i < len(n.Children) || j < len(n.Files) {
		if j >= len(n.Files) || (i < len(n.Children) && n.Children[i].Name < path.Base(n.Files[j].Path)) {
			out = append(out, entry{name: n.Children[i].Name, dir: n.Children[i]})
			i++
			continue
		}
		out = append(out, entry{name: path.Base(n.Files[j].Path), file: &n.Files[j]})
		j++
	}
	return out
}

// DocumentBuilder renders collected files as one Markdown document.
type DocumentBuilder struct {
	// Language returns the fence info string for a path, or "".
	Language func(path string) string
}

// Build renders files as nested headers with each file in a fenced block.
// Directories and files share one name order within a directory, compared a
// path segment at a time, which is the order the collector returns. The
// output depends only on the paths and contents given.
func (b *DocumentBuilder) Build(files []IncludedFile) string {
	if len(files) == 0 {
		return ""
	}
	var blocks []string
	b.writeNode(&blocks, buildTree(files))
	return strings.Join(blocks, "\n\n") + "\n"
}

func (b *DocumentBuilder) writeNode(blocks *[]string, node *DirectoryNode) {
	level := node.Depth + 1
	for _, e := range node.entries() {
		if e.dir != nil {
			*blocks = append(*blocks, header(level, e.name))
			b.writeNode(blocks, e.dir)
			continue
		}
		lang := ""
		if b.Language != nil {
			lang = b.Language(e.file.Path)
		}
		*blocks = append(*blocks, header(level, e.name), fenced(e.file.Content, lang))
	}
}

func header(level int, text string) string {
	if level > maxHeaderLevel {
		level = maxHeaderLevel
	}
	return strings.Repeat("#", level) + " " + text
}

// fenced wraps content in a backtick fence longer than any backtick run
// inside it.
func fenced(content, lang string) string {
	fence := strings.Repeat("`", max(3, longestRun(content, '`')+1))

	var sb strings.Builder
	sb.WriteString(fence)
	sb.WriteString(lang)
	sb.WriteString("\n")
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence)
	return sb.String()
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	return longest
}

// renderTree generates the indented tree listing of a DirectoryNode tree.
func renderTree(root *DirectoryNode) string {
	var builder strings.Builder
	builder.WriteString(root.Name)
	builder.WriteString("\n")
	printNode(&builder, root, "")
	return builder.String()
}

// printNode is a helper function for recursively printing tree nodes.
func printNode(builder *strings.Builder, node *DirectoryNode, prefix string) {
	entries := node.entries()
	for i, e := range entries {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(entries)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(e.name)
		if e.dir != nil {
			builder.WriteString("/")
		}
		builder.WriteString("\n")

		if e.dir != nil {
			printNode(builder, e.dir, newPrefix)
		}
	}
}
