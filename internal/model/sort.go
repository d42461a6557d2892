package model

import "sort"

// SortByPath sorts matches by node_modules path ascending
func SortByPath(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].NodeModulesPath < matches[j].NodeModulesPath
	})
}

// SortBySize sorts matches by size descending, then by path ascending
func SortBySize(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		si, sj := matches[i].SizeBytes(), matches[j].SizeBytes()
		if si != sj {
			return si > sj
		}
		return matches[i].NodeModulesPath < matches[j].NodeModulesPath
	})
}
