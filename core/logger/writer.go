package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// asyncWriter fans out log lines to sinks from a single background goroutine.
type asyncWriter struct {
	queue    chan []byte
	flushReq chan chan error
	done     chan struct{}
	once     sync.Once

	mu       sync.Mutex
	sinks    []*bufio.Writer
	writeErr error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
		}
	}
	w := &asyncWriter{
		queue:    make(chan []byte, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
		sinks:    sinks,
	}
	go w.loop()
	return w
}

func (w *asyncWriter) loop() {
	defer close(w.done)
	for {
		select {
		case data, ok := <-w.queue:
			if !ok {
				_ = w.flushAll()
				return
			}
			w.writeAll(data)
		case ack := <-w.flushReq:
			// drain what is already queued so Flush observes every prior Write
			for n := len(w.queue); n > 0; n-- {
				w.writeAll(<-w.queue)
			}
			ack <- w.flushAll()
		}
	}
}

// Write enqueues a copy of p. It blocks when the queue is full rather than drop lines.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.err(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	w.queue <- append([]byte(nil), p...)
	return nil
}

// Flush waits until queued lines reach the sinks.
func (w *asyncWriter) Flush() error {
	ack := make(chan error, 1)
	select {
	case w.flushReq <- ack:
		return errors.Join(<-ack, w.err())
	case <-w.done:
		return w.err()
	}
}

// Close drains the queue and reports the first write error.
func (w *asyncWriter) Close() error {
	w.once.Do(func() { close(w.queue) })
	<-w.done
	return w.err()
}

func (w *asyncWriter) writeAll(p []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil && w.writeErr == nil {
			w.writeErr = err
		}
		if err := sink.Flush(); err != nil && w.writeErr == nil {
			w.writeErr = err
		}
	}
}

func (w *asyncWriter) flushAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}
