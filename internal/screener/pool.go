package screener

import "sync"

// workerPool fans ticker evaluations out over a fixed number of goroutines.
type workerPool struct {
	jobCh chan func()
	wg    sync.WaitGroup
}

func newWorkerPool(maxWorkers int) *workerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	wp := &workerPool{
		jobCh: make(chan func(), maxWorkers*2),
	}
	for i := 0; i < maxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
	return wp
}

func (wp *workerPool) worker() {
	defer wp.wg.Done()
	for job := range wp.jobCh {
		job()
	}
}

// Submit blocks until a worker can take the job.
func (wp *workerPool) Submit(job func()) {
	wp.jobCh <- job
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (wp *workerPool) Close() {
	close(wp.jobCh)
	wp.wg.Wait()
}
