package spf

import (
	"encoding/json"
	"math"
	"strconv"
)

// Distance is a path cost that is either finite or unreachable. The zero
// value is Unreachable.
type Distance struct {
	cost int64
	ok   bool
}

// Unreachable is the distance of a router no path leads to.
var Unreachable = Distance{}

// Finite returns a reachable distance of cost c.
func Finite(c int64) Distance {
	return Distance{cost: c, ok: true}
}

// Cost returns the numeric cost and whether the distance is reachable.
func (d Distance) Cost() (int64, bool) {
	return d.cost, d.ok
}

// Reachable reports whether d is finite.
func (d Distance) Reachable() bool {
	return d.ok
}

// Less orders finite distances before Unreachable.
func (d Distance) Less(o Distance) bool {
	switch {
	case !d.ok:
		return false
	case !o.ok:
		return true
	default:
		return d.cost < o.cost
	}
}

// Add extends a reachable distance by a non-negative w. Unreachable stays
// unreachable, and so does a sum that would overflow int64.
func (d Distance) Add(w int64) Distance {
	if !d.ok || w < 0 || w > math.MaxInt64-d.cost {
		return Unreachable
	}
	return Finite(d.cost + w)
}

func (d Distance) String() string {
	if !d.ok {
		return "Unreachable"
	}
	return strconv.FormatInt(d.cost, 10)
}

// MarshalJSON encodes a reachable distance as a number and Unreachable as null.
func (d Distance) MarshalJSON() ([]byte, error) {
	if !d.ok {
		return []byte("null"), nil
	}
	return json.Marshal(d.cost)
}

// UnmarshalJSON accepts a number or null.
func (d *Distance) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Unreachable
		return nil
	}
	var c int64
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	*d = Finite(c)
	return nil
}
