package registry

import (
	"context"
	"errors"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"finecron/internal/config"
	"finecron/pkg/logx"
)

// Manager keeps the registry in sync with the config file at path.
type Manager struct {
	path string
	log  logx.Logger

	// Reloads are capped so an editor writing in bursts cannot make the
	// daemon re-parse the file many times a second.
	limiter *rate.Limiter

	mu       sync.RWMutex
	cur      *Snapshot
	lastHash uint64

	// subsMu guards the subscriber list and ensures we never send on a
	// channel that is concurrently being closed in Unsubscribe().
	subsMu sync.Mutex
	subs   []chan *Snapshot
}

func NewManager(path string, log logx.Logger) *Manager {
	return &Manager{
		path:    path,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Load reads, compiles, and commits the config file.
func (m *Manager) Load() (*Snapshot, error) {
	snap, hash, err := m.read()
	if err != nil {
		return nil, err
	}
	m.commit(snap, hash)
	return snap, nil
}

// Current returns the last committed snapshot (nil before the first Load).
func (m *Manager) Current() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Subscribe returns a channel receiving every committed reload.
func (m *Manager) Subscribe(buffer int) chan *Snapshot {
	ch := make(chan *Snapshot, buffer)
	m.subsMu.Lock()
	m.subs = append(m.subs, ch)
	m.subsMu.Unlock()
	return ch
}

func (m *Manager) Unsubscribe(ch chan *Snapshot) {
	if ch == nil {
		return
	}
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for i, s := range m.subs {
		if s == ch {
			// swap-remove (order doesn't matter)
			last := len(m.subs) - 1
			m.subs[i] = m.subs[last]
			m.subs[last] = nil
			m.subs = m.subs[:last]
			close(ch)
			return
		}
	}
}

// Watch follows the config file until ctx is done. Events are coalesced,
// reloads are rate-limited, and a reload that fails to parse or compile
// keeps the previous snapshot.
func (m *Manager) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: editors often replace the file
	// (rename + create), which drops a direct file watch.
	dir := filepath.Dir(m.path)
	file := filepath.Base(m.path)
	if err := w.Add(dir); err != nil {
		return err
	}

	kick := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-kick:
			}
			if err := m.limiter.Wait(ctx); err != nil {
				return
			}
			m.reload()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if filepath.Base(ev.Name) != file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case kick <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			m.log.Warn("watch error", logx.Err(err))
		}
	}
}

func (m *Manager) read() (*Snapshot, uint64, error) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return nil, 0, err
	}
	cfg, err := config.Decode(m.path, b)
	if err != nil {
		return nil, 0, err
	}
	snap, err := Compile(cfg.Schedules)
	if err != nil {
		return nil, 0, err
	}
	return snap, hashBytes(b), nil
}

func (m *Manager) commit(snap *Snapshot, hash uint64) {
	m.mu.Lock()
	m.cur = snap
	m.lastHash = hash
	m.mu.Unlock()
}

func (m *Manager) reload() {
	snap, hash, err := m.read()
	if err != nil {
		m.log.Warn("config reload rejected; keeping previous schedules",
			logx.String("path", m.path), logx.Err(err))
		return
	}

	// Skip redundant reloads when file content is unchanged.
	m.mu.RLock()
	unchanged := hash == m.lastHash
	m.mu.RUnlock()
	if unchanged {
		m.log.Debug("config unchanged; skipping reload", logx.String("path", m.path))
		return
	}

	m.commit(snap, hash)
	m.publish(snap)
	m.log.Info("schedules reloaded",
		logx.String("path", m.path), logx.Int("count", snap.Len()))
}

func (m *Manager) publish(snap *Snapshot) {
	// Hold subsMu while sending to avoid send-on-closed panics.
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for _, ch := range m.subs {
		if ch == nil {
			continue
		}
		// If a subscriber is slow and its buffer is full, drop one
		// stale snapshot and push the newest.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
				m.log.Debug("snapshot dropped (subscriber slow)",
					logx.Int("queue_cap", cap(ch)))
			}
		}
	}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
