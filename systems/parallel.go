package systems

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// parallelThreshold is the minimum body count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// workChunk is a range of snapshot indices handed to one worker.
type workChunk struct {
	index      int
	start, end int
}

// workerPool runs chunks of a per-tick job on persistent goroutines.
type workerPool struct {
	numWorkers int
	job        func(workChunk)

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(job func(workChunk)) *workerPool {
	return &workerPool{numWorkers: runtime.GOMAXPROCS(0), job: job}
}

func (p *workerPool) start() {
	if p.running {
		return
	}
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.runChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// runChunk reports a crashing chunk to Sentry before letting the panic through.
func (p *workerPool) runChunk(chunk workChunk) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(fmt.Errorf("controller worker crashed on [%d,%d): %v", chunk.start, chunk.end, err))
			hub.Flush(5 * time.Second)
			panic(err)
		}
	}()
	p.job(chunk)
}

// run splits n items into one chunk per worker and blocks until all are done.
// It returns the number of chunks dispatched; chunk indices are 0..count-1.
func (p *workerPool) run(n int) int {
	p.start()

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{index: dispatched, start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
	return dispatched
}
