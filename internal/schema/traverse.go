// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import "iter"

// Traverse returns a depth-first, pre-order iterator over the field and all
// of its descendants. A node reachable twice is yielded once.
func Traverse(root *Field) iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		visited := make(map[*Field]struct{})
		traverseWithVisited(root, yield, visited)
	}
}

func traverseWithVisited(f *Field, yield func(*Field) bool, visited map[*Field]struct{}) bool {
	if f == nil {
		return true
	}
	if _, ok := visited[f]; ok {
		return true
	}
	visited[f] = struct{}{}

	if !yield(f) {
		return false
	}
	for _, child := range f.Fields {
		if !traverseWithVisited(child, yield, visited) {
			return false
		}
	}
	return true
}

// ReferencedTypes returns the custom type names used anywhere under the
// given roots, either as a field kind or as a Reference/Array member, in
// first-seen order without duplicates.
func ReferencedTypes(roots ...*Field) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if name == "" || IsBuiltin(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, root := range roots {
		for f := range Traverse(root) {
			add(string(f.Kind))
			for _, to := range f.To {
				add(to)
			}
			for _, of := range f.Of {
				add(of)
			}
		}
	}
	return names
}

// Count returns the number of fields in the tree, the root included.
func Count(root *Field) int {
	n := 0
	for range Traverse(root) {
		n++
	}
	return n
}
