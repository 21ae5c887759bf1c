// sink.go: Background writer owning the rotating log files
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package filelog

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agilira/go-timecache"
	"github.com/pkg/errors"
)

// Sentinel errors
var (
	ErrMissingName     = errors.New("filelog: log name is required")
	ErrInvalidMaxBytes = errors.New("filelog: max bytes must not be negative")
	ErrInvalidMaxCount = errors.New("filelog: max count must not be negative")
	ErrInvalidLevel    = errors.New("filelog: invalid level")
	ErrInvalidColor    = errors.New("filelog: invalid color")
	ErrNilFormatter    = errors.New("filelog: state formatter is nil")
	ErrClosed          = errors.New("filelog: sink is closed")
	ErrWriterFailed    = errors.New("filelog: writer stopped after a write error")
)

// Operation names passed to Config.ErrorCallback.
const (
	opDirectoryCreation = "directory_creation"
	opFileOpen          = "file_open"
	opRotation          = "rotation"
	opWrite             = "write"
	opConsole           = "console"
	opClose             = "close"
)

type itemKind uint8

const (
	itemRecord itemKind = iota
	itemRotate
	itemSync
)

// queueItem carries either a record or a control request for the writer.
// Control requests travel through the queue so the writer stays the only
// goroutine touching the rotation state.
type queueItem struct {
	kind   itemKind
	record *Record
	done   chan error
}

// Sink serializes records from any number of goroutines into a ring of
// numbered files, optionally mirroring them to a console.
//
// Create one with New, obtain per-category handles with Logger or Default,
// and call Close on shutdown to flush everything still queued.
type Sink struct {
	cfg    Config
	render renderOptions
	style  consoleStyle

	queue *dispatchQueue[queueItem]
	rot   *rotationManager
	done  chan struct{}

	// mu serializes file writes, console writes and file swaps.
	mu      sync.Mutex
	console bytes.Buffer

	clock *timecache.TimeCache
	now   func() time.Time

	loggers sync.Map // lower-cased category -> *Logger

	failed        atomic.Bool
	consoleFailed atomic.Bool
	enqueued      atomic.Uint64
	written       atomic.Uint64
	dropped       atomic.Uint64
	rotations     atomic.Uint64
	bytesWritten  atomic.Uint64
	activeIndex   atomic.Int64
	activePath    atomic.Value // string

	closeOnce sync.Once
	closeErr  error
}

// New resolves the configuration, creates the log folder, runs the resume
// scan to pick the first slot and starts the background writer.
//
// Configuration and folder errors are returned here; the sink never starts
// in a degraded state.
//
// Example:
//
//	sink, err := filelog.New(filelog.Config{Name: "app", MaxBytes: 10 << 20})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer sink.Close()
//
//	sink.Default().Info("started")
func New(cfg Config) (*Sink, error) {
	resolved, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := resolved.validate(); err != nil {
		return nil, err
	}

	s := &Sink{
		cfg: resolved,
		render: renderOptions{
			useUTC:    resolved.UseUTC,
			indent:    resolved.IndentMultiline,
			formatter: resolved.Formatter,
		},
		style: consoleStyle{
			colors:    resolved.ConsoleColors,
			multiline: resolved.Multiline,
			indent:    resolved.IndentMultiline,
			palette:   resolved.Colors,
		},
		done: make(chan struct{}),
	}
	s.rot = newRotationManager(resolved, s.reportError)

	if err := s.rot.createLogDirectory(); err != nil {
		s.reportError(opDirectoryCreation, err)
		return nil, err
	}
	if err := s.rot.roll(); err != nil {
		s.reportError(opFileOpen, err)
		return nil, err
	}
	s.publishActive()

	s.clock = timecache.NewWithResolution(time.Millisecond)
	s.now = s.clock.CachedTime
	s.queue = newDispatchQueue[queueItem](resolved.QueueSize)

	go s.run()
	return s, nil
}

// Name returns the log family name.
func (s *Sink) Name() string { return s.cfg.Name }

// MinLevel returns the configured minimum level.
func (s *Sink) MinLevel() Level { return s.cfg.MinLevel }

// Enabled reports whether records at level pass the minimum level.
func (s *Sink) Enabled(level Level) bool {
	return level >= s.cfg.MinLevel
}

// run is the writer loop. It exits once the queue is closed and drained.
func (s *Sink) run() {
	defer close(s.done)
	for {
		item, ok := s.queue.Dequeue()
		if !ok {
			return
		}
		s.dispatch(item)
	}
}

func (s *Sink) dispatch(item queueItem) {
	switch item.kind {
	case itemRecord:
		s.writeRecord(item.record)
	case itemRotate:
		item.done <- s.rotate()
	case itemSync:
		var err error
		if s.failed.Load() {
			err = ErrWriterFailed
		}
		item.done <- err
	}
}

// writeRecord rolls the active slot if it is full, then writes the record to
// the file and the console. After a write error the writer stops touching
// the file and counts every further record as dropped.
func (s *Sink) writeRecord(r *Record) {
	if s.failed.Load() {
		s.dropped.Add(1)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rot.full() {
		if err := s.rollLocked(); err != nil {
			s.reportError(opRotation, err)
		}
	}

	n, err := s.rot.writeString(r.text(s.cfg.Multiline))
	if n > 0 {
		s.bytesWritten.Add(uint64(n)) // #nosec G115 -- n checked above
	}
	if err != nil {
		s.failed.Store(true)
		s.dropped.Add(1)
		s.reportError(opWrite, errors.Wrapf(err, "write %q", s.rot.path))
		return
	}
	s.written.Add(1)

	if s.cfg.Console {
		s.writeConsole(r)
	}
}

func (s *Sink) writeConsole(r *Record) {
	s.console.Reset()
	s.style.render(&s.console, r)
	if _, err := s.cfg.ConsoleWriter.Write(s.console.Bytes()); err != nil {
		if s.consoleFailed.CompareAndSwap(false, true) {
			s.reportError(opConsole, err)
		}
	}
}

func (s *Sink) rotate() error {
	if s.failed.Load() {
		return ErrWriterFailed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.rollLocked(); err != nil {
		s.reportError(opRotation, err)
		return err
	}
	return nil
}

func (s *Sink) rollLocked() error {
	if err := s.rot.roll(); err != nil {
		return err
	}
	s.rotations.Add(1)
	s.publishActive()
	return nil
}

func (s *Sink) publishActive() {
	s.activeIndex.Store(int64(s.rot.index))
	s.activePath.Store(s.rot.path)
}

// submit hands a record to the writer. It reports false when the sink is closed.
func (s *Sink) submit(r *Record) bool {
	if !s.queue.Enqueue(queueItem{kind: itemRecord, record: r}) {
		s.dropped.Add(1)
		return false
	}
	s.enqueued.Add(1)
	return true
}

// control sends a request through the queue and waits for the writer's answer.
func (s *Sink) control(ctx context.Context, kind itemKind) error {
	done := make(chan error, 1)
	if !s.queue.Enqueue(queueItem{kind: kind, done: done}) {
		return ErrClosed
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Rotate switches to the next slot in the ring, truncating it. The request
// is queued behind every record submitted before the call.
func (s *Sink) Rotate() error {
	return s.control(context.Background(), itemRotate)
}

// Sync waits until every record submitted before the call has been written.
// It returns ErrWriterFailed if the writer stopped after a write error.
func (s *Sink) Sync(ctx context.Context) error {
	return s.control(ctx, itemSync)
}

// Close stops accepting records, waits for the writer to drain the queue and
// closes the active file. Records logged after Close starts are dropped.
// Close is safe to call more than once.
func (s *Sink) Close() error {
	s.closeOnce.Do(func() {
		s.queue.Close()
		<-s.done

		s.mu.Lock()
		if err := s.rot.release(); err != nil {
			s.reportError(opClose, err)
			s.closeErr = err
		}
		s.mu.Unlock()

		if s.clock != nil {
			s.clock.Stop()
		}
	})
	return s.closeErr
}

// Stats is a point-in-time snapshot of the sink counters.
type Stats struct {
	Enqueued     uint64 `json:"enqueued"`      // Records accepted by the queue
	Written      uint64 `json:"written"`       // Records written to file
	Dropped      uint64 `json:"dropped"`       // Records refused after Close or after a write error
	Rotations    uint64 `json:"rotations"`     // Steady-state rolls, explicit ones included
	BytesWritten uint64 `json:"bytes_written"` // Bytes written to file since New
	ActiveIndex  int    `json:"active_index"`  // Slot currently written
	ActiveFile   string `json:"active_file"`   // Path of the active slot
	QueueDepth   int    `json:"queue_depth"`   // Items waiting for the writer
	QueueSize    int    `json:"queue_size"`    // Queue capacity
	Failed       bool   `json:"failed"`        // Writer stopped after a write error
}

// Stats returns current counters. Safe to call concurrently.
func (s *Sink) Stats() Stats {
	path, _ := s.activePath.Load().(string)
	return Stats{
		Enqueued:     s.enqueued.Load(),
		Written:      s.written.Load(),
		Dropped:      s.dropped.Load(),
		Rotations:    s.rotations.Load(),
		BytesWritten: s.bytesWritten.Load(),
		ActiveIndex:  int(s.activeIndex.Load()),
		ActiveFile:   path,
		QueueDepth:   s.queue.Len(),
		QueueSize:    s.queue.Cap(),
		Failed:       s.failed.Load(),
	}
}

// reportError invokes the error callback if set
func (s *Sink) reportError(operation string, err error) {
	if s.cfg.ErrorCallback != nil {
		s.cfg.ErrorCallback(operation, err)
	}
}
