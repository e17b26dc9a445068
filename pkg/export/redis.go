// Package export publishes computed routing tables into Redis, laid out
// like an APP_DB ROUTE_TABLE so existing Redis tooling can read them.
//
// Key format: ROUTE_TABLE:<router>:<destination>, one hash per route with
// fields nexthop, cost and reachable. A summary hash TOPOLOGY_STATE records
// which topology version the routes were computed from.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

const (
	routeTable = "ROUTE_TABLE"
	stateKey   = "TOPOLOGY_STATE"
)

// Store is the subset of the Redis client used by the exporter.
type Store interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
}

// RouteEntry is one exported route as read back from Redis.
type RouteEntry struct {
	Router      graph.RouterID
	Destination graph.RouterID
	NextHop     string
	Cost        string
	Reachable   bool
}

// RouteExporter writes routing tables into a Redis database.
type RouteExporter struct {
	store Store
}

// NewRouteExporter connects lazily to the Redis server at addr.
func NewRouteExporter(addr string, db int) *RouteExporter {
	return NewRouteExporterWithStore(redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	}))
}

// NewRouteExporterWithStore uses an existing client.
func NewRouteExporterWithStore(store Store) *RouteExporter {
	return &RouteExporter{store: store}
}

// Connect tests the connection.
func (e *RouteExporter) Connect(ctx context.Context) error {
	if err := e.store.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	return nil
}

// Close closes the underlying client if it owns one.
func (e *RouteExporter) Close() error {
	if c, ok := e.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RouteKey returns the Redis key of one route.
func RouteKey(router, destination graph.RouterID) string {
	return fmt.Sprintf("%s:%d:%d", routeTable, router, destination)
}

// Export replaces the stored routes of every router 1..N with the tables in
// res. Routes of the failed router are removed. It returns the number of
// route hashes written.
func (e *RouteExporter) Export(ctx context.Context, res *simulator.Result) (int, error) {
	log := util.WithTopology(res.Fingerprint)

	for id := 1; id <= res.Routers; id++ {
		if err := e.clearRouter(ctx, graph.RouterID(id)); err != nil {
			return 0, err
		}
	}

	written := 0
	for _, rt := range res.Tables {
		for _, r := range rt.Routes {
			key := RouteKey(rt.Router, r.Destination)
			if err := e.store.HSet(ctx, key, routeFields(r)...).Err(); err != nil {
				return written, fmt.Errorf("writing %s: %w", key, err)
			}
			written++
		}
	}

	failed := ""
	if res.Failed != graph.NoRouter {
		failed = strconv.Itoa(int(res.Failed))
	}
	if err := e.store.HSet(ctx, stateKey,
		"fingerprint", res.Fingerprint,
		"state", res.State,
		"failed", failed,
		"routers", strconv.Itoa(res.Routers),
	).Err(); err != nil {
		return written, fmt.Errorf("writing %s: %w", stateKey, err)
	}

	log.Infof("exported %d routes for %d routers", written, len(res.Tables))
	return written, nil
}

func (e *RouteExporter) clearRouter(ctx context.Context, router graph.RouterID) error {
	pattern := fmt.Sprintf("%s:%d:*", routeTable, router)
	keys, err := e.store.Keys(ctx, pattern).Result()
	if err != nil {
		return fmt.Errorf("listing %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := e.store.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting stale routes of router %d: %w", router, err)
	}
	util.WithRouter(int(router)).Debugf("removed %d stale routes", len(keys))
	return nil
}

func routeFields(r simulator.Route) []interface{} {
	return []interface{}{
		"nexthop", r.NextHop.String(),
		"cost", r.Distance.String(),
		"reachable", strconv.FormatBool(r.Distance.Reachable()),
	}
}

// GetRoute reads one exported route. Returns nil (not error) if the key
// does not exist.
func (e *RouteExporter) GetRoute(ctx context.Context, router, destination graph.RouterID) (*RouteEntry, error) {
	key := RouteKey(router, destination)
	vals, err := e.store.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("reading route %s: %w", key, err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return &RouteEntry{
		Router:      router,
		Destination: destination,
		NextHop:     vals["nexthop"],
		Cost:        vals["cost"],
		Reachable:   vals["reachable"] == "true",
	}, nil
}
