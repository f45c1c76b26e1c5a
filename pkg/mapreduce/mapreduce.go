package mapreduce

import "github.com/dtnitsch/linkscout/models"

// Map counts records per category for a single domain's output.
func Map(records []models.LinkRecord) map[string]int {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	return counts
}

// Reduce aggregates a slice of category count maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for category, count := range counts {
			finalResults[category] += count
		}
	}

	return finalResults
}
