package sender

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/m3rciful/travelbot/core/logger"
	"github.com/m3rciful/travelbot/core/netutil"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrQueueClosed is returned when enqueue is attempted after dispatcher stop.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull indicates the queue is saturated and the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")

	tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent retrying a single job.
	MaxDuration time.Duration
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
	result   chan error
}

// Dispatcher executes outbound Telegram calls on a worker pool with retries.
type Dispatcher struct {
	opts Options
	jobs chan job
	stop chan struct{}
	mu   sync.RWMutex
	once sync.Once
	wg   sync.WaitGroup
	errs atomic.Uint64
	sent atomic.Uint64
}

// NewDispatcher starts a dispatcher with sane defaults if options are zeroed.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 12 * time.Second
	}

	d := &Dispatcher{
		opts: opts,
		jobs: make(chan job, opts.QueueSize),
		stop: make(chan struct{}),
	}

	d.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go d.worker()
	}

	return d
}

// Enqueue schedules run for asynchronous execution and returns immediately.
// The run closure must be idempotent if retries are desired.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}
	return d.submit(job{ctx: ctx, action: action, endpoint: endpoint, run: run})
}

// Do executes run on the worker pool and waits for the final result, so callers
// keep their own ordering while sharing retries and logging. When the queue
// is saturated or closed the job runs on the calling goroutine instead.
func (d *Dispatcher) Do(ctx context.Context, action, endpoint string, run func() error) error {
	if run == nil {
		return errors.New("telegram sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	j := job{ctx: ctx, action: action, endpoint: endpoint, run: run, result: make(chan error, 1)}
	if err := d.submit(j); err != nil {
		return d.handleJob(j)
	}
	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) submit(j job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	select {
	case <-d.stop:
		return ErrQueueClosed
	default:
	}
	select {
	case d.jobs <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of failed jobs.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errs.Load()
}

// SentCount returns the number of jobs that completed successfully.
func (d *Dispatcher) SentCount() uint64 {
	return d.sent.Load()
}

// Close stops workers and waits for them to finish processing queued jobs.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		close(d.stop)
		close(d.jobs)
		d.mu.Unlock()
		d.wg.Wait()
	})
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		err := d.handleJob(j)
		if j.result != nil {
			j.result <- err
		}
	}
}

func (d *Dispatcher) handleJob(j job) error {
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	logger.Debug(ctx, "tg.sender", "send.start", sendLogAttrs(j)...)

	var lastErr error
	attempts := d.opts.MaxRetries + 1

attemptLoop:
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := deadlineCtx.Err(); err != nil {
			lastErr = err
			break
		}

		err := j.run()
		if err == nil {
			d.sent.Add(1)
			logSendSuccess(ctx, j, attempt, time.Since(start))
			return nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || attempt == attempts {
			break
		}

		delay := d.opts.RetryBackoff * time.Duration(attempt)
		timer := time.NewTimer(delay)
		select {
		case <-deadlineCtx.Done():
			timer.Stop()
			lastErr = deadlineCtx.Err()
			break attemptLoop
		case <-timer.C:
		}
		logger.Debug(ctx, "tg.sender", "send.retry",
			append(sendLogAttrs(j),
				slog.String("status", "retry"),
				slog.Int("attempts", attempt),
				slog.Duration("delay", delay),
			)...,
		)
	}

	d.errs.Add(1)
	logSendFailure(ctx, j, lastErr, attempts, time.Since(start))
	return lastErr
}

func sendLogAttrs(j job) []slog.Attr {
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

func logSendSuccess(ctx context.Context, j job, attempt int, elapsed time.Duration) {
	attrs := append(sendLogAttrs(j), slog.String("status", "ok"))
	if attempt > 1 {
		attrs = append(attrs, slog.Int("attempts", attempt))
	}
	attrs = append(attrs, slog.Duration("duration", elapsed))
	logger.Debug(ctx, "tg.sender", "send.done", attrs...)
}

func logSendFailure(ctx context.Context, j job, err error, attempts int, elapsed time.Duration) {
	attrs := append(sendLogAttrs(j),
		slog.String("status", "fail"),
		slog.String("err", SanitizeError(err)),
		slog.String("err_kind", ClassifyError(err)),
		slog.Duration("duration", elapsed),
		slog.Int("attempts", attempts),
	)
	if code := httpStatusFromError(err); code != 0 {
		attrs = append(attrs, slog.Int("http_code", code))
	}
	logger.Error(ctx, "tg.sender", "send.done", attrs...)
}

// ClassifyError extends netutil.Classify with Telegram API status codes.
func ClassifyError(err error) string {
	kind := netutil.Classify(err)
	if kind != netutil.KindUnknown {
		return kind
	}
	status := httpStatusFromError(err)
	switch {
	case status == http.StatusTooManyRequests:
		return "flood"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}
	return kind
}

// SanitizeError prevents accidental leakage of Telegram bot tokens in logs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

func httpStatusFromError(err error) int {
	if err == nil {
		return 0
	}

	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}

	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}

	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}

	msg := err.Error()
	lastOpen := strings.LastIndex(msg, "(")
	lastClose := strings.LastIndex(msg, ")")
	if lastOpen >= 0 && lastClose > lastOpen+1 {
		if code, convErr := strconv.Atoi(strings.TrimSpace(msg[lastOpen+1 : lastClose])); convErr == nil {
			return code
		}
	}

	return 0
}
