// MIT License
//
// Portions copyright (c) 2017 Ivan Pusic
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"sync"
)

const queueLength = 1000

type task func()

type worker struct {
	tasks chan task
}

// pool runs tasks on a fixed set of workers. A dispatcher goroutine hands
// each queued task to the first idle worker.
type pool struct {
	queue   chan task
	idle    chan *worker
	size    int
	pending sync.WaitGroup
	stopped chan struct{}
}

func newPool(size int) *pool {
	p := &pool{
		queue:   make(chan task, queueLength),
		idle:    make(chan *worker, size),
		size:    size,
		stopped: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		go p.work(&worker{tasks: make(chan task)})
	}
	go p.dispatch()
	return p
}

func (p *pool) work(w *worker) {
	for {
		// report idle, then wait for the next task
		p.idle <- w
		t, ok := <-w.tasks
		if !ok {
			return
		}
		t()
	}
}

func (p *pool) dispatch() {
	for t := range p.queue {
		w := <-p.idle
		w.tasks <- t
	}
	// every worker reports idle exactly once more before it is stopped
	for i := 0; i < p.size; i++ {
		w := <-p.idle
		close(w.tasks)
	}
	close(p.stopped)
}

// Enqueue queues t, blocking while the queue is full.
func (p *pool) Enqueue(t task) {
	p.pending.Add(1)
	p.queue <- func() {
		defer p.pending.Done()
		t()
	}
}

// Wait blocks until every queued task ran.
func (p *pool) Wait() {
	p.pending.Wait()
}

// Release stops the workers. The pool cannot be used afterwards.
func (p *pool) Release() {
	close(p.queue)
	<-p.stopped
}
