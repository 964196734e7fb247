package fluid

import (
	"runtime"
	"sync"
)

// parallelRowThreshold is the minimum grid height to use parallel dispatch.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelRowThreshold = 64

// rowBand is a contiguous range of grid rows for one worker.
type rowBand struct {
	y0, y1 int
	fn     func(y int)
}

// workerPool executes a stage over all grid rows with full-barrier
// semantics: Dispatch returns only when every row has been processed.
// Workers are persistent goroutines; swaps and stage sequencing stay on the
// caller's goroutine.
type workerPool struct {
	numWorkers int

	workChan chan rowBand
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool() *workerPool {
	return &workerPool{numWorkers: runtime.GOMAXPROCS(0)}
}

// start launches the persistent worker goroutines.
func (p *workerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowBand, p.numWorkers)
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
		case band, ok := <-p.workChan:
			if !ok {
				return
			}
			for y := band.y0; y < band.y1; y++ {
				band.fn(y)
			}
			p.doneChan <- struct{}{}
		}
	}
}

// Dispatch runs fn for every row in [0, rows). It blocks until all rows are
// done; the stage is complete when it returns.
func (p *workerPool) Dispatch(rows int, fn func(y int)) {
	if rows < parallelRowThreshold {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}

	if !p.running {
		p.start()
	}

	bandSize := (rows + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		y0 := w * bandSize
		y1 := y0 + bandSize
		if y1 > rows {
			y1 = rows
		}
		if y0 >= y1 {
			continue
		}
		p.workChan <- rowBand{y0: y0, y1: y1, fn: fn}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
