// Package testutil provides deterministic fixtures for tests that exercise the
// shared spawner and zone registries.
package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ... It is
// safe for concurrent use.
func SequentialIDs(prefix string) func() string {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// FixedIDs returns a generator that yields ids in order and then repeats the
// last one forever. It is used to force key collisions.
//
// Precondition: ids must be non-empty.
func FixedIDs(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[min(i, len(ids)-1)]
		i++
		return id
	}
}

// SpawnEvent is one recorded spawner-created notification.
type SpawnEvent struct {
	Region    string
	SpawnerID string
	HomeX     int
	HomeY     int
}

// RecordingNotifier records spawner-created notifications. It is safe for
// concurrent use.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []SpawnEvent
}

// SpawnerCreated records the notification.
func (r *RecordingNotifier) SpawnerCreated(region, spawnerID string, homeX, homeY int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, SpawnEvent{Region: region, SpawnerID: spawnerID, HomeX: homeX, HomeY: homeY})
}

// Events returns a copy of the recorded notifications in arrival order.
func (r *RecordingNotifier) Events() []SpawnEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SpawnEvent(nil), r.events...)
}
