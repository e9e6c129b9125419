package world

import (
	"fmt"

	"github.com/cory-johannsen/realm/internal/testutil"
)

// stubSpawner records its construction parameters.
type stubSpawner struct {
	p SpawnerParams
}

func (s *stubSpawner) ID() string              { return s.p.ID }
func (s *stubSpawner) Region() RegionID        { return s.p.Region }
func (s *stubSpawner) Creatures() CreatureMask { return s.p.Creatures }
func (s *stubSpawner) Home() Point             { return Point{X: s.p.X, Y: s.p.Y} }
func (s *stubSpawner) Range() int              { return s.p.Range }
func (s *stubSpawner) Limit() int              { return s.p.Limit }
func (s *stubSpawner) Contains(p Point) bool   { return p == s.Home() }

func stubFactory(p SpawnerParams) Spawner { return &stubSpawner{p: p} }

// newTestRegistry returns a registry with sequential keys and a recording notifier.
func newTestRegistry() (*Registry, *testutil.RecordingNotifier) {
	rec := &testutil.RecordingNotifier{}
	return NewRegistry(stubFactory,
		WithIDGenerator(testutil.SequentialIDs("id")),
		WithNotifier(rec),
	), rec
}

// mustRegion unwraps a region constructor result in test setup.
func mustRegion(r *Region, err error) *Region {
	if err != nil {
		panic(fmt.Sprintf("building region: %v", err))
	}
	return r
}
