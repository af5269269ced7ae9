package linker

import "sort"

// detectCycles implements spec.md §4.3.1: a DFS from every unresolved
// function (visited in lexicographic order for determinism), recording a
// candidate cycle whenever the traversal revisits a node already on the
// current path, followed by a "cycle merge" pass that fuses any two
// candidates sharing a node until no more merges are possible — the result
// is the set of strongly connected components among the unresolved nodes.
func detectCycles(fns map[string]*fnEntry, unlinked map[string]bool) [][]string {
	var names []string
	for name := range unlinked {
		names = append(names, name)
	}
	sort.Strings(names)

	var candidates [][]string
	for _, start := range names {
		path := []string{}
		onPath := map[string]int{}
		walkCycles(fns, unlinked, start, path, onPath, &candidates)
	}

	return mergeCycles(candidates)
}

func walkCycles(fns map[string]*fnEntry, unlinked map[string]bool, name string, path []string, onPath map[string]int, out *[][]string) {
	if i, seen := onPath[name]; seen {
		cycle := append([]string{}, path[i:]...)
		*out = append(*out, cycle)
		return
	}
	if !unlinked[name] {
		return
	}
	onPath[name] = len(path)
	path = append(path, name)

	var deps []string
	for dep := range fns[name].deps {
		if unlinked[dep] {
			deps = append(deps, dep)
		}
	}
	sort.Strings(deps)
	for _, dep := range deps {
		walkCycles(fns, unlinked, dep, path, onPath, out)
	}

	delete(onPath, name)
}

// mergeCycles repeatedly fuses any two candidate cycles sharing at least
// one node, preserving the first candidate's order and appending new
// members from the second in their original order.
func mergeCycles(candidates [][]string) [][]string {
	merged := candidates
	for {
		didMerge := false
		var next [][]string
		used := make([]bool, len(merged))
		for i := range merged {
			if used[i] {
				continue
			}
			cur := merged[i]
			for j := i + 1; j < len(merged); j++ {
				if used[j] {
					continue
				}
				if shareNode(cur, merged[j]) {
					cur = fuse(cur, merged[j])
					used[j] = true
					didMerge = true
				}
			}
			next = append(next, cur)
		}
		merged = next
		if !didMerge {
			return dedupeCycles(merged)
		}
	}
}

func shareNode(a, b []string) bool {
	set := map[string]bool{}
	for _, n := range a {
		set[n] = true
	}
	for _, n := range b {
		if set[n] {
			return true
		}
	}
	return false
}

func fuse(a, b []string) []string {
	set := map[string]bool{}
	out := append([]string{}, a...)
	for _, n := range a {
		set[n] = true
	}
	for _, n := range b {
		if !set[n] {
			out = append(out, n)
			set[n] = true
		}
	}
	return out
}

// dedupeCycles removes a cycle that is a strict subset of another (can
// arise when the same SCC is discovered from two different start nodes).
func dedupeCycles(cycles [][]string) [][]string {
	var out [][]string
	for i, c := range cycles {
		subsumed := false
		for j, other := range cycles {
			if i == j || len(other) <= len(c) {
				continue
			}
			if isSubset(c, other) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, c)
		}
	}
	return out
}

func isSubset(a, b []string) bool {
	set := map[string]bool{}
	for _, n := range b {
		set[n] = true
	}
	for _, n := range a {
		if !set[n] {
			return false
		}
	}
	return true
}
