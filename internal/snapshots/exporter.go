package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shortflix/backend/internal/models"
	"github.com/shortflix/backend/internal/videos"
)

// Status is the lifecycle state of a snapshot.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// ErrExporterClosed is returned when scheduling after Shutdown.
var ErrExporterClosed = errors.New("snapshot exporter closed")

// Snapshot describes one export of the catalog.
type Snapshot struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Location    string     `json:"location,omitempty"`
	Videos      int        `json:"videos"`
	Size        int64      `json:"size"`
	Error       string     `json:"error,omitempty"`
}

// Source lists the catalog contents to export.
type Source interface {
	List(ctx context.Context, opts videos.ListOptions) ([]models.Video, error)
}

// Uploader persists an encoded snapshot and returns its location.
type Uploader interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Observer is notified when an export finishes.
type Observer interface {
	SnapshotFinished(err error)
}

// DefaultRetain is how many snapshot records are kept when Config.Retain is unset.
const DefaultRetain = 100

// Config controls the concurrency characteristics of the exporter.
type Config struct {
	QueueSize int
	Workers   int
	// Timeout bounds a single export, listing and upload included.
	Timeout time.Duration
	// Retain caps the snapshot records kept in memory. The oldest finished
	// records are evicted first; pending records are never evicted.
	Retain int
}

// document is the JSON layout written to storage.
type document struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Count       int            `json:"count"`
	Videos      []models.Video `json:"videos"`
}

// Exporter asynchronously writes catalog snapshots with a pool of workers.
type Exporter struct {
	source   Source
	uploader Uploader
	observer Observer
	logger   *slog.Logger
	timeout  time.Duration
	retain   int
	now      func() time.Time

	mu        sync.RWMutex
	snapshots map[string]Snapshot

	// sendMu guards closed. Schedule holds it for reading while enqueueing so
	// Shutdown can wait out in-flight sends before abandoning the queue.
	sendMu sync.RWMutex
	closed bool

	jobs   chan string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewExporter constructs the exporter and starts its workers.
func NewExporter(source Source, uploader Uploader, observer Observer, cfg Config, logger *slog.Logger) *Exporter {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.Retain <= 0 {
		cfg.Retain = DefaultRetain
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	e := &Exporter{
		source:    source,
		uploader:  uploader,
		observer:  observer,
		logger:    logger,
		timeout:   cfg.Timeout,
		retain:    cfg.Retain,
		now:       time.Now,
		snapshots: make(map[string]Snapshot),
		jobs:      make(chan string, cfg.QueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	e.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go e.worker()
	}

	return e
}

// Schedule records a pending snapshot and queues it for export. It blocks
// while the queue is full until ctx is done.
func (e *Exporter) Schedule(ctx context.Context) (Snapshot, error) {
	e.sendMu.RLock()
	defer e.sendMu.RUnlock()
	if e.closed {
		return Snapshot{}, ErrExporterClosed
	}

	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-e.ctx.Done():
		return Snapshot{}, ErrExporterClosed
	default:
	}

	snap := Snapshot{
		ID:          uuid.NewString(),
		Status:      StatusPending,
		RequestedAt: e.now().UTC(),
	}
	e.store(snap)

	select {
	case <-ctx.Done():
		e.forget(snap.ID)
		return Snapshot{}, ctx.Err()
	case <-e.ctx.Done():
		e.forget(snap.ID)
		return Snapshot{}, ErrExporterClosed
	case e.jobs <- snap.ID:
		return snap, nil
	}
}

// List returns the known snapshots, newest first.
func (e *Exporter) List(context.Context) ([]Snapshot, error) {
	e.mu.RLock()
	out := make([]Snapshot, 0, len(e.snapshots))
	for _, s := range e.snapshots {
		out = append(out, s)
	}
	e.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RequestedAt.After(out[j].RequestedAt)
	})
	return out, nil
}

// Get returns the snapshot with the given id.
func (e *Exporter) Get(id string) (Snapshot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.snapshots[id]
	return s, ok
}

// Shutdown stops accepting work, marks queued snapshots failed and waits for
// in-progress exports to finish.
func (e *Exporter) Shutdown(ctx context.Context) error {
	e.once.Do(func() {
		e.cancel()
		e.sendMu.Lock()
		e.closed = true
		e.sendMu.Unlock()
		e.abandonQueued()
	})

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (e *Exporter) worker() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			return
		case id := <-e.jobs:
			if e.ctx.Err() != nil {
				e.finish(id, 0, "", 0, ErrExporterClosed)
				continue
			}
			e.export(id)
		}
	}
}

// abandonQueued fails every snapshot still waiting in the queue.
func (e *Exporter) abandonQueued() {
	for {
		select {
		case id := <-e.jobs:
			e.finish(id, 0, "", 0, ErrExporterClosed)
		default:
			return
		}
	}
}

func (e *Exporter) export(id string) {
	logger := e.logger.With(slog.String("snapshot_id", id))

	if e.source == nil || e.uploader == nil {
		logger.Error("snapshot exporter missing dependencies", "hasSource", e.source != nil, "hasUploader", e.uploader != nil)
		e.finish(id, 0, "", 0, errors.New("exporter not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	list, err := e.source.List(ctx, videos.ListOptions{})
	if err != nil {
		logger.Error("snapshot listing failed", "error", err)
		e.finish(id, 0, "", 0, fmt.Errorf("list catalog: %w", err))
		return
	}

	body, err := json.Marshal(document{ID: id, GeneratedAt: e.now().UTC(), Count: len(list), Videos: list})
	if err != nil {
		logger.Error("snapshot encoding failed", "error", err)
		e.finish(id, len(list), "", 0, fmt.Errorf("encode snapshot: %w", err))
		return
	}

	location, err := e.uploader.Save(ctx, id+".json", bytes.NewReader(body))
	if err != nil {
		logger.Error("snapshot upload failed", "error", err)
		e.finish(id, len(list), "", 0, err)
		return
	}

	logger.Info("snapshot exported", "location", location, "videos", len(list), "bytes", len(body))
	e.finish(id, len(list), location, int64(len(body)), nil)
}

func (e *Exporter) finish(id string, count int, location string, size int64, err error) {
	completed := e.now().UTC()

	if e.observer != nil {
		e.observer.SnapshotFinished(err)
	}

	e.mu.Lock()
	snap := e.snapshots[id]
	snap.ID = id
	snap.CompletedAt = &completed
	snap.Videos = count
	if err != nil {
		snap.Status = StatusFailed
		snap.Error = err.Error()
	} else {
		snap.Status = StatusReady
		snap.Location = location
		snap.Size = size
	}
	e.snapshots[id] = snap
	e.mu.Unlock()
}

func (e *Exporter) store(s Snapshot) {
	e.mu.Lock()
	e.snapshots[s.ID] = s
	e.pruneLocked()
	e.mu.Unlock()
}

// pruneLocked evicts the oldest finished records beyond the retention cap.
func (e *Exporter) pruneLocked() {
	excess := len(e.snapshots) - e.retain
	if excess <= 0 {
		return
	}

	finished := make([]Snapshot, 0, len(e.snapshots))
	for _, s := range e.snapshots {
		if s.Status != StatusPending {
			finished = append(finished, s)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].RequestedAt.Before(finished[j].RequestedAt)
	})

	for i := 0; i < excess && i < len(finished); i++ {
		delete(e.snapshots, finished[i].ID)
	}
}

func (e *Exporter) forget(id string) {
	e.mu.Lock()
	delete(e.snapshots, id)
	e.mu.Unlock()
}
