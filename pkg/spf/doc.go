// Package spf computes shortest-path first results over a router graph.
//
// Run performs one single-source computation and returns a DistanceTable and
// a PredecessorTable. Every router's routing table comes from its own run, so
// producing a full set means N independent runs (see RunAll).
//
// Run relaxes edges from a min-priority queue keyed by tentative distance.
// Entries are never decreased in place; a cheaper path pushes a fresh entry
// and the outdated one is skipped when it surfaces.
//
// A router passed as excluded takes part in no relaxation, neither as the
// router being expanded nor as the target. It therefore stays unreachable
// from every other source even when its links are still in the graph.
//
// NextHop and ConstructPath derive forwarding data from a PredecessorTable.
// Unreachability is an ordinary result: Unreachable distances, NoRouter next
// hops and nil paths. None of the functions in this package return errors.
package spf
