package spf_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pansalasamarth/SPT-Optimization-in-Link-State-Routing/pkg/spf"
)

func TestDistance(t *testing.T) {
	var zero spf.Distance
	assert.Equal(t, spf.Unreachable, zero)
	assert.False(t, zero.Reachable())
	assert.Equal(t, "Unreachable", zero.String())

	d := spf.Finite(7)
	c, ok := d.Cost()
	assert.True(t, ok)
	assert.Equal(t, int64(7), c)
	assert.Equal(t, "7", d.String())

	assert.True(t, spf.Finite(3).Less(spf.Finite(4)))
	assert.True(t, spf.Finite(1<<40).Less(spf.Unreachable))
	assert.False(t, spf.Unreachable.Less(spf.Finite(0)))
	assert.False(t, spf.Unreachable.Less(spf.Unreachable))

	assert.Equal(t, spf.Finite(9), spf.Finite(4).Add(5))
	assert.Equal(t, spf.Unreachable, spf.Unreachable.Add(5))
	assert.Equal(t, spf.Finite(math.MaxInt64), spf.Finite(0).Add(math.MaxInt64))
	assert.Equal(t, spf.Unreachable, spf.Finite(1).Add(math.MaxInt64))
}

func TestDistanceJSON(t *testing.T) {
	data, err := json.Marshal([]spf.Distance{spf.Finite(0), spf.Unreachable, spf.Finite(12)})
	require.NoError(t, err)
	assert.JSONEq(t, `[0, null, 12]`, string(data))

	var back []spf.Distance
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []spf.Distance{spf.Finite(0), spf.Unreachable, spf.Finite(12)}, back)
}
