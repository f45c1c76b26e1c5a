package crawler

import (
	"sync"

	"github.com/dtnitsch/linkscout/models"
)

// job is one metadata fetch. index ties the result back to its link.
type job struct {
	index int
	url   string
}

type result struct {
	index int
	meta  models.PageMetadata
}

// fetchAll fetches metadata for every link with at most c.workerCount
// requests in flight, and blocks until all of them finish. The returned
// slice is aligned with links.
func (c *Crawler) fetchAll(links []string) []models.PageMetadata {
	metas := make([]models.PageMetadata, len(links))
	if len(links) == 0 {
		return metas
	}

	workerCount := min(c.workerCount, len(links))

	var wg sync.WaitGroup
	jobs := make(chan job, len(links))
	results := make(chan result, len(links))

	for w := 1; w <= workerCount; w++ {
		wg.Add(1)
		go c.worker(w, &wg, jobs, results)
	}

	for i, link := range links {
		jobs <- job{index: i, url: link}
	}
	close(jobs)

	wg.Wait()
	close(results)

	for r := range results {
		metas[r.index] = r.meta
	}
	return metas
}

func (c *Crawler) worker(id int, wg *sync.WaitGroup, jobs <-chan job, results chan<- result) {
	defer wg.Done()
	for j := range jobs {
		c.logger.Debug("Worker fetching metadata", "worker_id", id, "url", j.url)
		results <- result{index: j.index, meta: c.client.FetchMetadata(j.url)}
	}
}
