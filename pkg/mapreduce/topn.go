package mapreduce

import (
	"fmt"
	"io"
	"sort"
)

type kv struct {
	Key   string
	Value int
}

// sorted orders counts by count descending, then key ascending so that
// ties print the same way every run.
func sorted(counts map[string]int) []kv {
	ss := make([]kv, 0, len(counts))
	for k, v := range counts {
		ss = append(ss, kv{k, v})
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})
	return ss
}

// TopCategories returns the top N categories as "category:count" strings.
func TopCategories(counts map[string]int, n int) []string {
	ss := sorted(counts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}

	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}
	return out
}

// PrintTopCategories writes the top N categories as a numbered list.
func PrintTopCategories(w io.Writer, counts map[string]int, n int) {
	ss := sorted(counts)

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}

	for i := 0; i < limit; i++ {
		fmt.Fprintf(w, "%d. %s: %d\n", i+1, ss[i].Key, ss[i].Value)
	}
}
