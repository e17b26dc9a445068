package simulator

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/audit"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// DefaultCacheTTL bounds how long a computed Result is reused.
const DefaultCacheTTL = 5 * time.Minute

// DefaultCacheCapacity bounds how many Results are kept.
const DefaultCacheCapacity = 64

type cacheKey struct {
	fingerprint string
	query       Query
}

// Simulator owns the current topology and failure designation. Every
// transition replaces the snapshot as a whole; Compute works on the
// snapshot current at the time of the call.
//
// Results are cached by topology fingerprint and query, which pays off for
// long-lived callers that flip between failure states or repeat queries. A
// caller that computes once can pass WithCacheTTL(0).
type Simulator struct {
	mu    sync.RWMutex
	snap  TopologySnapshot
	cache *ttlcache.Cache[cacheKey, *Result]
}

// Option configures a Simulator.
type Option func(*options)

type options struct {
	ttl      time.Duration
	capacity uint64
}

// WithCacheTTL sets how long computed results are reused. Zero disables
// the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithCacheCapacity sets the maximum number of cached results.
func WithCacheCapacity(n uint64) Option {
	return func(o *options) { o.capacity = n }
}

// New creates a Simulator with no topology.
func New(opts ...Option) *Simulator {
	o := options{ttl: DefaultCacheTTL, capacity: DefaultCacheCapacity}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Simulator{}
	if o.ttl > 0 {
		s.cache = ttlcache.New[cacheKey, *Result](
			ttlcache.WithTTL[cacheKey, *Result](o.ttl),
			ttlcache.WithCapacity[cacheKey, *Result](o.capacity),
			ttlcache.WithDisableTouchOnHit[cacheKey, *Result](),
		)
	}
	return s
}

// SetTopology replaces the topology and returns to the Normal state. On
// error the previous topology is kept.
func (s *Simulator) SetTopology(routers int, links []graph.Link) error {
	start := time.Now()
	event := audit.NewEvent(audit.OpTopologySet)

	snap, err := NewSnapshot(routers, links)
	if err != nil {
		logAudit(event.WithTopology("", routers, len(links)).Finish(start, err))
		return err
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	if s.cache != nil {
		s.cache.DeleteAll()
	}

	fp := snap.Fingerprint()
	util.WithTopology(fp).Infof("topology set: %d routers, %d links", routers, len(links))
	logAudit(event.WithTopology(fp, routers, len(links)).Finish(start, nil))
	return nil
}

// SetFailure marks r as the failed router. It moves Normal to RouterDown(r)
// and RouterDown(q) to RouterDown(r); the earlier failure is replaced, not
// added to. On error nothing changes.
func (s *Simulator) SetFailure(r graph.RouterID) error {
	start := time.Now()
	event := audit.NewEvent(audit.OpFailureSet).WithFailed(int(r))

	s.mu.Lock()
	if !s.snap.Defined() {
		s.mu.Unlock()
		logAudit(event.Finish(start, util.ErrNoTopology))
		return util.ErrNoTopology
	}
	next, err := s.snap.WithFailure(r)
	if err != nil {
		cur := s.snap
		s.mu.Unlock()
		logAudit(event.WithTopology(cur.Fingerprint(), cur.Routers(), len(cur.links)).Finish(start, err))
		return err
	}
	s.snap = next
	s.mu.Unlock()

	fp := next.Fingerprint()
	util.WithTopology(fp).WithField("failed", int(r)).Infof("router %d marked as failed", r)
	logAudit(event.WithTopology(fp, next.Routers(), len(next.links)).Finish(start, nil))
	return nil
}

// ClearFailure returns to the Normal state over the same topology.
func (s *Simulator) ClearFailure() error {
	start := time.Now()
	event := audit.NewEvent(audit.OpFailureClear)

	s.mu.Lock()
	if !s.snap.Defined() {
		s.mu.Unlock()
		logAudit(event.Finish(start, util.ErrNoTopology))
		return util.ErrNoTopology
	}
	prev := s.snap.Failed()
	s.snap = s.snap.WithoutFailure()
	next := s.snap
	s.mu.Unlock()

	if prev != graph.NoRouter {
		util.WithTopology(next.Fingerprint()).Infof("router %d restored", prev)
	}
	logAudit(event.WithTopology(next.Fingerprint(), next.Routers(), len(next.links)).WithFailed(int(prev)).Finish(start, nil))
	return nil
}

// Snapshot returns the current snapshot and whether a topology is defined.
func (s *Simulator) Snapshot() (TopologySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap.Defined()
}

// State returns Normal or RouterDown for the current snapshot.
func (s *Simulator) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.State()
}

// Compute produces the result for the current snapshot. Results are cached
// per topology version and query.
func (s *Simulator) Compute(q Query) (*Result, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return nil, util.ErrNoTopology
	}

	key := cacheKey{fingerprint: snap.Fingerprint(), query: q}
	if s.cache != nil {
		if item := s.cache.Get(key); item != nil {
			util.WithTopology(key.fingerprint).Debugf("reusing cached result")
			return item.Value(), nil
		}
	}

	start := time.Now()
	res, err := Compute(snap, q)
	logAudit(audit.NewEvent(audit.OpCompute).
		WithTopology(key.fingerprint, snap.Routers(), len(snap.links)).
		WithFailed(int(snap.Failed())).
		WithQuery(int(q.Source), int(q.Destination)).
		Finish(start, err))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(key, res, ttlcache.DefaultTTL)
	}
	return res, nil
}

func logAudit(event *audit.Event) {
	if err := audit.Log(event); err != nil {
		util.Warnf("audit: %v", err)
	}
}
