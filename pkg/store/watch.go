package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event reports that something under the store changed on disk.
type Event struct {
	// Bucket is "projects", "folders" or "settings". Empty means unknown.
	Bucket string
	// ID is the changed record, when it can be derived from the path.
	ID string
}

// Watch streams change events until ctx is cancelled. Bursts of writes are
// coalesced. The channel is closed when ctx is done or the watcher fails.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	for _, bucket := range []string{projectBucket, folderBucket, settingsBucket} {
		if err := os.MkdirAll(filepath.Join(s.basePath, bucket), 0o755); err != nil {
			return nil, fmt.Errorf("store: ensure %s: %w", bucket, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	for _, dir := range []string{projectBucket, folderBucket, settingsBucket} {
		if err := watcher.Add(filepath.Join(s.basePath, dir)); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	go func() {
		var mu sync.Mutex
		closed := false
		defer func() {
			mu.Lock()
			closed = true
			close(events)
			mu.Unlock()
		}()
		defer watcher.Close()

		send := func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// consumer is behind; it will catch up on the next event
			}
		}
		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("store watcher", "err", err)
				throttle.Enqueue(Event{}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				throttle.Enqueue(s.eventForPath(evt.Name), send)
			}
		}
	}()
	return events, nil
}

func (s *Store) eventForPath(path string) Event {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil {
		return Event{}
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || !strings.HasSuffix(parts[1], ".json") {
		return Event{}
	}
	return Event{Bucket: parts[0], ID: strings.TrimSuffix(parts[1], ".json")}
}

// eventThrottle coalesces change notifications so a burst of writes is
// reported once per record.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[ev] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
