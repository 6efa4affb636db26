package output

import (
	"sort"
	"strings"
)

const (
	// Tree characters
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// Status alignment column
	statusColumn = 40
)

// TreeEntry is one file in a result tree.
type TreeEntry struct {
	// Path is slash-separated and relative to the tree root.
	Path string

	// Status is one of the Status* constants.
	Status string

	// Note is optional dim text after the status.
	Note string
}

type treeNode struct {
	name     string
	entry    *TreeEntry
	children []*treeNode
}

func (n *treeNode) isDir() bool {
	return n.entry == nil
}

// RenderResultTree renders files grouped by directory under rootName,
// with color-coded statuses aligned in one column.
func RenderResultTree(rootName string, entries []TreeEntry) string {
	if len(entries) == 0 {
		return ""
	}

	root := &treeNode{name: rootName}
	for i := range entries {
		parts := strings.Split(strings.Trim(entries[i].Path, "/"), "/")
		current := root

		for j, part := range parts {
			var child *treeNode
			for _, c := range current.children {
				if c.name == part && c.isDir() == (j < len(parts)-1) {
					child = c
					break
				}
			}
			if child == nil {
				child = &treeNode{name: part}
				current.children = append(current.children, child)
			}
			if j == len(parts)-1 {
				child.entry = &entries[i]
			}
			current = child
		}
	}

	sortTree(root)

	var sb strings.Builder
	sb.WriteString(StyleAction.Render(rootName + "/"))
	sb.WriteString("\n")
	renderChildren(&sb, root, "")
	return sb.String()
}

// sortTree recursively sorts tree nodes (directories first, then alphabetically).
func sortTree(node *treeNode) {
	sort.SliceStable(node.children, func(i, j int) bool {
		a, b := node.children[i], node.children[j]
		if a.isDir() != b.isDir() {
			return a.isDir()
		}
		return a.name < b.name
	})
	for _, child := range node.children {
		sortTree(child)
	}
}

func renderChildren(sb *strings.Builder, node *treeNode, prefix string) {
	for i, child := range node.children {
		last := i == len(node.children)-1

		connector, childPrefix := treeEdge, prefix+treeVert
		if last {
			connector, childPrefix = treeLast, prefix+treeSpace
		}

		line := prefix + connector
		if child.isDir() {
			sb.WriteString(line + StyleDim.Render(child.name+"/") + "\n")
			renderChildren(sb, child, childPrefix)
			continue
		}

		width := len([]rune(line)) + len(child.name)
		padding := statusColumn - width
		if padding < 2 {
			padding = 2
		}

		sb.WriteString(line)
		sb.WriteString(StyleNoun.Render(child.name))
		sb.WriteString(strings.Repeat(" ", padding))
		sb.WriteString(statusStyle(child.entry.Status).Render(child.entry.Status))
		if child.entry.Note != "" {
			sb.WriteString("  ")
			sb.WriteString(StyleDim.Render(child.entry.Note))
		}
		sb.WriteString("\n")
	}
}
