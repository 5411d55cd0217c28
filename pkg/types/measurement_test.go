// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 4}, Span{4, 8}, false},
		{"adjacent reversed", Span{4, 8}, Span{0, 4}, false},
		{"one char shared", Span{0, 5}, Span{4, 8}, true},
		{"contained", Span{0, 10}, Span{3, 6}, true},
		{"identical", Span{2, 7}, Span{2, 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "Overlaps must be symmetric")
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{2, 10}

	assert.True(t, outer.Contains(Span{2, 10}))
	assert.True(t, outer.Contains(Span{4, 6}))
	assert.False(t, outer.Contains(Span{0, 5}))
	assert.False(t, outer.Contains(Span{8, 12}))
	assert.False(t, Span{4, 6}.Contains(outer))
}

func TestSpanLen(t *testing.T) {
	assert.Equal(t, 5, Span{3, 8}.Len())
	assert.Equal(t, 0, Span{3, 3}.Len())
}

func TestMeasurementJSONNilFields(t *testing.T) {
	// absent numeric fields serialize as null, not zero
	m := Measurement{
		Text:         "flu",
		Start:        10,
		End:          13,
		Condition:    CondEqual,
		MatchingTerm: "flu",
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"x", "y", "minValue", "maxValue"} {
		v, ok := decoded[key]
		require.True(t, ok, "field %s missing", key)
		assert.Nil(t, v, "field %s should be null", key)
	}
	assert.Equal(t, "EQUAL", decoded["condition"])
}

func TestFloat(t *testing.T) {
	p := Float(98.6)
	require.NotNil(t, p)
	assert.Equal(t, 98.6, *p)

	// zero is a real value, distinct from a nil field
	z := Float(0)
	require.NotNil(t, z)
	assert.Equal(t, 0.0, *z)
}
