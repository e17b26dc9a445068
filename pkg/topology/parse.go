package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/graph"
	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/util"
)

// Options control how strictly a topology is validated.
type Options struct {
	// Lenient drops links with a non-positive endpoint or cost instead of
	// rejecting the file. Endpoints above the router count are still errors.
	Lenient bool
}

// LoadTopology reads, parses and validates a topology YAML file.
func LoadTopology(path string, opts Options) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}

	topo, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return topo, nil
}

// Parse parses and validates topology YAML.
func Parse(data []byte, opts Options) (*Topology, error) {
	var topo Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, util.NewInputError("topology YAML", firstLine(err.Error()), "could not be parsed")
	}

	if err := Validate(&topo, opts); err != nil {
		return nil, fmt.Errorf("validating topology: %w", err)
	}
	return &topo, nil
}

// Validate checks router and link counts, link endpoints and costs, and the
// optional source, destination and failed router. In lenient mode unusable
// links are dropped from topo before validation.
func Validate(topo *Topology, opts Options) error {
	if opts.Lenient {
		dropUnusableLinks(topo)
	}

	v := &util.ValidationBuilder{}
	v.Add(topo.Routers > 0, fmt.Sprintf("routers must be positive, got %d", topo.Routers))
	v.Add(len(topo.Links) > 0, "at least one link is required")
	if v.HasErrors() {
		return v.Build()
	}

	n := topo.Routers
	inRange := func(id int) bool { return id >= 1 && id <= n }
	maxCost := graph.MaxLinkCost(n)
	for i, l := range topo.Links {
		v.Add(inRange(l.From), fmt.Sprintf("link %d: from %d outside [1, %d]", i+1, l.From, n))
		v.Add(inRange(l.To), fmt.Sprintf("link %d: to %d outside [1, %d]", i+1, l.To, n))
		v.Add(l.Cost > 0, fmt.Sprintf("link %d: cost must be positive, got %d", i+1, l.Cost))
		v.Add(l.Cost <= maxCost, fmt.Sprintf("link %d: cost %d exceeds %d", i+1, l.Cost, maxCost))
	}
	if topo.Source != 0 {
		v.Add(inRange(topo.Source), fmt.Sprintf("source %d outside [1, %d]", topo.Source, n))
	}
	if topo.Destination != 0 {
		v.Add(inRange(topo.Destination), fmt.Sprintf("destination %d outside [1, %d]", topo.Destination, n))
	}
	if topo.Failed != 0 {
		v.Add(inRange(topo.Failed), fmt.Sprintf("failed router %d outside [1, %d]", topo.Failed, n))
	}
	return v.Build()
}

func dropUnusableLinks(topo *Topology) {
	kept := topo.Links[:0]
	for _, l := range topo.Links {
		if l.From > 0 && l.To > 0 && l.Cost > 0 {
			kept = append(kept, l)
			continue
		}
		util.Debugf("topology: dropping link %d-%d cost %d", l.From, l.To, l.Cost)
	}
	topo.Links = kept
}

// Save writes topo as YAML, creating parent directories.
func Save(topo *Topology, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating topology directory: %w", err)
	}
	data, err := yaml.Marshal(topo)
	if err != nil {
		return fmt.Errorf("encoding topology: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ParseLinkSpec parses a link written as "from-to:cost", e.g. "1-2:5".
func ParseLinkSpec(spec string) (LinkDef, error) {
	ends, costStr, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return LinkDef{}, util.NewInputError("link", spec, "expected from-to:cost")
	}
	fromStr, toStr, ok := strings.Cut(ends, "-")
	if !ok {
		return LinkDef{}, util.NewInputError("link", spec, "expected from-to:cost")
	}

	from, err := strconv.Atoi(strings.TrimSpace(fromStr))
	if err != nil {
		return LinkDef{}, util.NewInputError("link", spec, "start router is not a number")
	}
	to, err := strconv.Atoi(strings.TrimSpace(toStr))
	if err != nil {
		return LinkDef{}, util.NewInputError("link", spec, "end router is not a number")
	}
	cost, err := strconv.ParseInt(strings.TrimSpace(costStr), 10, 64)
	if err != nil {
		return LinkDef{}, util.NewInputError("link", spec, "cost is not a number")
	}
	return LinkDef{From: from, To: to, Cost: cost}, nil
}

// ParseRouterID parses a router id given on the command line. It does not
// check the upper bound; that needs the router count.
func ParseRouterID(field, s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, util.NewInputError(field, s, "not a number")
	}
	if id < 1 {
		return 0, util.NewInputError(field, s, "must be at least 1")
	}
	return id, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// Sample returns the four-router example network.
func Sample() *Topology {
	return &Topology{
		Name:    "sample",
		Routers: 4,
		Links: []LinkDef{
			{From: 1, To: 2, Cost: 1},
			{From: 2, To: 3, Cost: 2},
			{From: 1, To: 3, Cost: 4},
			{From: 3, To: 4, Cost: 1},
		},
		Source:      1,
		Destination: 4,
	}
}
