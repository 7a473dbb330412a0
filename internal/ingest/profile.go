package ingest

import "sort"

const SampleSize = 5

// Profile describes the raw payload before anything touches it.
type Profile struct {
	Rows   int      `json:"rows"`
	Cols   []string `json:"cols"`
	Sample []any    `json:"sample"`
}

// BuildProfile takes the array elements exactly as decoded. Only object
// elements contribute columns; the sample keeps every element verbatim.
func BuildProfile(items []any) Profile {
	seen := make(map[string]struct{})
	cols := make([]string, 0)
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for k := range obj {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)

	n := min(len(items), SampleSize)
	sample := make([]any, n)
	copy(sample, items[:n])

	return Profile{
		Rows:   len(items),
		Cols:   cols,
		Sample: sample,
	}
}
