package spf_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
)

// fourRouters: 1-2 (1), 2-3 (2), 1-3 (4), 3-4 (1).
func fourRouters() *graph.Graph {
	return graph.Build(4, []graph.Link{
		{A: 1, B: 2, Cost: 1},
		{A: 2, B: 3, Cost: 2},
		{A: 1, B: 3, Cost: 4},
		{A: 3, B: 4, Cost: 1},
	})
}

func TestRun_SourceIsZero(t *testing.T) {
	g := fourRouters()
	for s := graph.RouterID(1); s <= 4; s++ {
		dist, pred := spf.Run(g, s, graph.NoRouter)
		require.Len(t, dist, 5)
		require.Len(t, pred, 5)
		assert.Equal(t, spf.Finite(0), dist.At(s), "distance[%d]", s)
		assert.Equal(t, graph.NoRouter, pred.At(s), "predecessor[%d]", s)
	}
}

func TestRun_FourRouterScenario(t *testing.T) {
	dist, pred := spf.Run(fourRouters(), 1, graph.NoRouter)

	want := map[graph.RouterID]int64{1: 0, 2: 1, 3: 3, 4: 4}
	for r, c := range want {
		got, ok := dist.At(r).Cost()
		require.True(t, ok, "router %d should be reachable", r)
		assert.Equal(t, c, got, "distance[%d]", r)
	}

	assert.Equal(t, []graph.RouterID{1, 2, 3, 4}, spf.ConstructPath(pred, 1, 4))
	assert.Equal(t, graph.RouterID(2), spf.NextHop(pred, 1, 4))
	assert.Equal(t, graph.RouterID(2), spf.NextHop(pred, 1, 3))
	assert.Equal(t, graph.RouterID(2), spf.NextHop(pred, 1, 2))
	assert.Equal(t, graph.NoRouter, spf.NextHop(pred, 1, 1))
}

func TestRun_FailureScenario(t *testing.T) {
	g := fourRouters()
	g.RemoveConnections(3)
	dist, pred := spf.Run(g, 1, 3)

	assert.False(t, dist.At(4).Reachable(), "router 4 only connects via 3")
	assert.False(t, dist.At(3).Reachable())
	assert.Nil(t, spf.ConstructPath(pred, 1, 4))
	assert.Equal(t, graph.NoRouter, spf.NextHop(pred, 1, 4))

	c, ok := dist.At(2).Cost()
	require.True(t, ok)
	assert.Equal(t, int64(1), c)
}

func TestRun_ExcludedWithoutRemoval(t *testing.T) {
	// Router 3 keeps its links but is still excluded from every relaxation.
	g := fourRouters()

	for s := graph.RouterID(1); s <= 4; s++ {
		if s == 3 {
			continue
		}
		dist, pred := spf.Run(g, s, 3)
		assert.False(t, dist.At(3).Reachable(), "router 3 reachable from %d", s)
		for d := graph.RouterID(1); d <= 4; d++ {
			for _, hop := range spf.ConstructPath(pred, s, d) {
				assert.NotEqual(t, graph.RouterID(3), hop, "path %d->%d crosses 3", s, d)
			}
		}
	}
}

func TestRun_ExcludedSourceReachesNothing(t *testing.T) {
	dist, _ := spf.Run(fourRouters(), 3, 3)
	assert.Equal(t, spf.Finite(0), dist.At(3))
	for _, r := range []graph.RouterID{1, 2, 4} {
		assert.False(t, dist.At(r).Reachable(), "router %d", r)
	}
}

func TestRun_IsolatedRouter(t *testing.T) {
	g := graph.Build(5, []graph.Link{{A: 1, B: 2, Cost: 1}, {A: 2, B: 3, Cost: 1}})

	for s := graph.RouterID(1); s <= 4; s++ {
		dist, pred := spf.Run(g, s, graph.NoRouter)
		assert.False(t, dist.At(5).Reachable(), "router 5 reachable from %d", s)
		assert.Nil(t, spf.ConstructPath(pred, s, 5))
	}
}

func TestRun_SourceOutOfRange(t *testing.T) {
	dist, pred := spf.Run(fourRouters(), 9, graph.NoRouter)
	require.Len(t, dist, 5)
	for r := graph.RouterID(1); r <= 4; r++ {
		assert.False(t, dist.At(r).Reachable())
		assert.Equal(t, graph.NoRouter, pred.At(r))
	}
}

func TestRun_ParallelEdgesUseCheapest(t *testing.T) {
	g := graph.New(2)
	g.AddEdge(1, 2, 9)
	g.AddEdge(1, 2, 2)

	dist, _ := spf.Run(g, 1, graph.NoRouter)
	assert.Equal(t, spf.Finite(2), dist.At(2))
}

func TestRun_SelfLoopIgnored(t *testing.T) {
	g := graph.Build(2, []graph.Link{{A: 1, B: 1, Cost: 1}, {A: 1, B: 2, Cost: 3}})

	dist, pred := spf.Run(g, 1, graph.NoRouter)
	assert.Equal(t, spf.Finite(0), dist.At(1))
	assert.Equal(t, spf.Finite(3), dist.At(2))
	assert.Equal(t, graph.NoRouter, pred.At(1))
}

func TestRun_HugeCostsDoNotOverflow(t *testing.T) {
	g := graph.Build(3, []graph.Link{
		{A: 1, B: 2, Cost: math.MaxInt64},
		{A: 2, B: 3, Cost: math.MaxInt64},
		{A: 1, B: 3, Cost: 5},
	})

	dist, pred := spf.Run(g, 1, graph.NoRouter)
	assert.Equal(t, spf.Finite(0), dist.At(1))
	assert.Equal(t, graph.NoRouter, pred.At(1))
	assert.Equal(t, spf.Finite(math.MaxInt64), dist.At(2))
	assert.Equal(t, graph.RouterID(1), pred.At(2))
	assert.Equal(t, spf.Finite(5), dist.At(3))
	assert.Equal(t, graph.RouterID(1), pred.At(3))

	assert.Equal(t, graph.RouterID(3), spf.NextHop(pred, 1, 3))
	assert.Equal(t, []graph.RouterID{1, 3}, spf.ConstructPath(pred, 1, 3))

	// 2 reaches 3 directly at MaxInt64; going through 1 would overflow.
	dist, pred = spf.Run(g, 2, graph.NoRouter)
	assert.Equal(t, spf.Finite(0), dist.At(2))
	assert.Equal(t, graph.NoRouter, pred.At(2))
	for r := graph.RouterID(1); r <= 3; r++ {
		c, ok := dist.At(r).Cost()
		require.True(t, ok, "router %d", r)
		assert.GreaterOrEqual(t, c, int64(0), "router %d", r)
	}
}

func TestRun_TriangleInequality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(12)
		var links []graph.Link
		for i := 0; i < n*2; i++ {
			links = append(links, graph.Link{
				A:    graph.RouterID(1 + rng.Intn(n)),
				B:    graph.RouterID(1 + rng.Intn(n)),
				Cost: int64(1 + rng.Intn(20)),
			})
		}
		g := graph.Build(n, links)
		excluded := graph.NoRouter
		if trial%2 == 1 {
			excluded = graph.RouterID(1 + rng.Intn(n))
		}

		for s := 1; s <= n; s++ {
			src := graph.RouterID(s)
			if src == excluded {
				continue
			}
			dist, pred := spf.Run(g, src, excluded)

			for _, l := range links {
				if l.Touches(excluded) {
					continue
				}
				checkEdge(t, dist, l.A, l.B, l.Cost)
				checkEdge(t, dist, l.B, l.A, l.Cost)
			}

			for d := 1; d <= n; d++ {
				dst := graph.RouterID(d)
				path := spf.ConstructPath(pred, src, dst)
				if !dist.At(dst).Reachable() {
					assert.Nil(t, path, "unreachable %d->%d has a path", s, d)
					continue
				}
				require.NotNil(t, path, "reachable %d->%d has no path", s, d)
				assert.Equal(t, src, path[0])
				assert.Equal(t, dst, path[len(path)-1])

				cost, ok := spf.PathCost(g, path)
				require.True(t, ok)
				want, _ := dist.At(dst).Cost()
				assert.Equal(t, want, cost, "path %v cost", path)
			}
		}
	}
}

func checkEdge(t *testing.T, dist spf.DistanceTable, u, v graph.RouterID, w int64) {
	t.Helper()
	du, ok := dist.At(u).Cost()
	if !ok {
		return
	}
	dv, ok := dist.At(v).Cost()
	require.True(t, ok, "router %d reachable but neighbour %d is not", u, v)
	assert.LessOrEqual(t, dv, du+w, "distance[%d] > distance[%d] + %d", v, u, w)
}

func TestRunAll(t *testing.T) {
	trees := spf.RunAll(fourRouters(), 3)
	require.Len(t, trees, 5)
	assert.Nil(t, trees[0])
	assert.Nil(t, trees[3])

	for _, s := range []graph.RouterID{1, 2, 4} {
		require.NotNil(t, trees[s])
		assert.Equal(t, s, trees[s].Source)
	}
	assert.True(t, trees[1].Distances.At(2).Reachable())
	assert.False(t, trees[1].Distances.At(4).Reachable())
}
