package render

import (
	"encoding/json"
	"io"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/simulator"
)

// JSON writes res as an indented JSON document. Unreachable costs are null.
func JSON(w io.Writer, res *simulator.Result) error {
	return WriteJSON(w, res)
}

// WriteJSON writes any value as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
