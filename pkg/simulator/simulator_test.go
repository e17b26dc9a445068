package simulator

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/audit"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

func sampleLinks() []graph.Link {
	return []graph.Link{
		{A: 1, B: 2, Cost: 1},
		{A: 2, B: 3, Cost: 2},
		{A: 1, B: 3, Cost: 4},
		{A: 3, B: 4, Cost: 1},
	}
}

func newSample(t *testing.T) *Simulator {
	t.Helper()
	sim := New()
	require.NoError(t, sim.SetTopology(4, sampleLinks()))
	return sim
}

func TestSimulator_NormalState(t *testing.T) {
	sim := newSample(t)
	assert.Equal(t, Normal, sim.State())

	res, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)

	assert.Equal(t, "normal", res.State)
	assert.Equal(t, graph.NoRouter, res.Failed)
	assert.Len(t, res.Packets, 4)
	assert.Len(t, res.Tables, 4)

	require.True(t, res.Path.Found())
	assert.Equal(t, []graph.RouterID{1, 2, 3, 4}, res.Path.Path)
	assert.Equal(t, spf.Finite(4), res.Path.Distance)

	rt, ok := res.Table(1)
	require.True(t, ok)
	route, ok := rt.Route(4)
	require.True(t, ok)
	assert.Equal(t, graph.RouterID(2), route.NextHop)
	assert.Equal(t, spf.Finite(4), route.Distance)

	self, _ := rt.Route(1)
	assert.Equal(t, graph.NoRouter, self.NextHop)
	assert.Equal(t, spf.Finite(0), self.Distance)
}

func TestSimulator_RouterDown(t *testing.T) {
	sim := newSample(t)
	require.NoError(t, sim.SetFailure(3))
	assert.Equal(t, RouterDown, sim.State())

	res, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)

	assert.Equal(t, "router-down", res.State)
	assert.Equal(t, graph.RouterID(3), res.Failed)
	assert.Len(t, res.Tables, 3)
	_, ok := res.Table(3)
	assert.False(t, ok, "failed router must not have a table")
	_, ok = res.Packet(3)
	assert.False(t, ok, "failed router must not have a packet")

	assert.False(t, res.Path.Found())
	assert.False(t, res.Path.Distance.Reachable())

	rt, _ := res.Table(1)
	for _, dst := range []graph.RouterID{3, 4} {
		route, _ := rt.Route(dst)
		assert.False(t, route.Distance.Reachable(), "route 1->%d", dst)
		assert.Equal(t, graph.NoRouter, route.NextHop, "route 1->%d", dst)
	}

	pkt, _ := res.Packet(4)
	assert.Empty(t, pkt.Entries, "router 4 only linked to the failed router")
	for _, p := range res.Packets {
		for _, e := range p.Entries {
			assert.NotEqual(t, graph.RouterID(3), e.Neighbor, "router %d still lists 3", p.Router)
		}
	}
}

func TestSimulator_FailureReplacesPrevious(t *testing.T) {
	sim := newSample(t)
	require.NoError(t, sim.SetFailure(3))
	require.NoError(t, sim.SetFailure(2))

	snap, _ := sim.Snapshot()
	assert.Equal(t, graph.RouterID(2), snap.Failed())

	res, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)
	// Router 3 is back, so 1->3->4 is the only way around router 2.
	assert.Equal(t, []graph.RouterID{1, 3, 4}, res.Path.Path)
	assert.Equal(t, spf.Finite(5), res.Path.Distance)
}

func TestSimulator_InvalidFailureKeepsState(t *testing.T) {
	sim := newSample(t)
	require.NoError(t, sim.SetFailure(3))
	before, _ := sim.Snapshot()

	for _, r := range []graph.RouterID{0, -1, 5} {
		err := sim.SetFailure(r)
		require.Error(t, err, "router %d", r)
		assert.True(t, util.IsInputError(err))

		var inputErr *util.InputError
		assert.True(t, errors.As(err, &inputErr))
	}

	after, _ := sim.Snapshot()
	assert.Equal(t, before.Fingerprint(), after.Fingerprint())
	assert.Equal(t, graph.RouterID(3), after.Failed())
}

func TestSimulator_ClearFailure(t *testing.T) {
	sim := newSample(t)
	require.NoError(t, sim.SetFailure(3))
	require.NoError(t, sim.ClearFailure())
	assert.Equal(t, Normal, sim.State())

	res, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)
	assert.Equal(t, []graph.RouterID{1, 2, 3, 4}, res.Path.Path)
}

func TestSimulator_NoTopology(t *testing.T) {
	sim := New()
	_, err := sim.Compute(Query{})
	assert.ErrorIs(t, err, util.ErrNoTopology)
	assert.ErrorIs(t, sim.SetFailure(1), util.ErrNoTopology)
	assert.ErrorIs(t, sim.ClearFailure(), util.ErrNoTopology)
}

func TestSimulator_SetTopologyResetsFailure(t *testing.T) {
	sim := newSample(t)
	require.NoError(t, sim.SetFailure(3))
	require.NoError(t, sim.SetTopology(2, []graph.Link{{A: 1, B: 2, Cost: 7}}))
	assert.Equal(t, Normal, sim.State())
}

func TestSimulator_InvalidTopologyKeepsPrevious(t *testing.T) {
	sim := newSample(t)
	err := sim.SetTopology(0, nil)
	require.Error(t, err)
	assert.True(t, util.IsInputError(err))

	snap, ok := sim.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 4, snap.Routers())
}

func TestSimulator_CachesPerSnapshot(t *testing.T) {
	sim := newSample(t)

	first, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)
	second, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, sim.SetFailure(3))
	third, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.NotEqual(t, first.Fingerprint, third.Fingerprint)
}

func TestSimulator_CacheReusedAcrossFailureFlips(t *testing.T) {
	sim := newSample(t)
	q := Query{Source: 1, Destination: 4}

	normal, err := sim.Compute(q)
	require.NoError(t, err)
	require.NoError(t, sim.SetFailure(3))
	down, err := sim.Compute(q)
	require.NoError(t, err)

	require.NoError(t, sim.ClearFailure())
	again, err := sim.Compute(q)
	require.NoError(t, err)
	assert.Same(t, normal, again)

	require.NoError(t, sim.SetFailure(3))
	downAgain, err := sim.Compute(q)
	require.NoError(t, err)
	assert.Same(t, down, downAgain)
}

func TestSimulator_CacheDisabled(t *testing.T) {
	sim := New(WithCacheTTL(0))
	require.NoError(t, sim.SetTopology(4, sampleLinks()))

	first, err := sim.Compute(Query{})
	require.NoError(t, err)
	second, err := sim.Compute(Query{})
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestSimulator_ConcurrentCompute(t *testing.T) {
	sim := newSample(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = sim.SetFailure(graph.RouterID(1 + i%4))
			}
			res, err := sim.Compute(Query{})
			if assert.NoError(t, err) {
				// Every table in one result comes from the same snapshot.
				want := 4
				if res.Failed != graph.NoRouter {
					want = 3
				}
				assert.Len(t, res.Tables, want)
			}
		}(i)
	}
	wg.Wait()
}

func TestSimulator_WritesAuditEvents(t *testing.T) {
	logger := &memLogger{}
	audit.SetDefaultLogger(logger)
	defer audit.SetDefaultLogger(nil)

	sim := New(WithCacheTTL(0))
	require.NoError(t, sim.SetTopology(4, sampleLinks()))
	require.Error(t, sim.SetFailure(9))
	require.NoError(t, sim.SetFailure(3))
	_, err := sim.Compute(Query{Source: 1, Destination: 4})
	require.NoError(t, err)

	events, err := logger.Query(audit.Filter{})
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, audit.OpTopologySet, events[0].Operation)
	assert.Equal(t, audit.OpFailureSet, events[1].Operation)
	assert.False(t, events[1].Success)
	assert.Equal(t, 9, events[1].Failed)
	assert.True(t, events[2].Success)
	assert.Equal(t, audit.OpCompute, events[3].Operation)
	assert.Equal(t, 3, events[3].Failed)
	assert.Equal(t, 1, events[3].Source)
	assert.Equal(t, 4, events[3].Destination)
}

// memLogger keeps audit events in memory.
type memLogger struct {
	mu     sync.Mutex
	events []*audit.Event
}

func (m *memLogger) Log(e *audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *memLogger) Query(audit.Filter) ([]*audit.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*audit.Event(nil), m.events...), nil
}

func (m *memLogger) Close() error { return nil }
