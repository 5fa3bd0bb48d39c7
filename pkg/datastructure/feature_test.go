package datastructure

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("area")
	assert.Error(t, err)
	_, err = ParseKind("Node")
	assert.Error(t, err)
}

func TestRawFeatureBound(t *testing.T) {
	tests := []struct {
		name    string
		feature func() RawFeature
		want    orb.Bound
		wantOK  bool
	}{
		{
			name:    "nothing known",
			feature: func() RawFeature { return NewRawFeature(KindRelation, 1, nil) },
		},
		{
			name: "position only",
			feature: func() RawFeature {
				f := NewRawFeature(KindNode, 1, nil)
				f.Position = &Position{Lat: 10, Lon: 20}
				return f
			},
			want:   orb.Bound{Min: orb.Point{20, 10}, Max: orb.Point{20, 10}},
			wantOK: true,
		},
		{
			name: "geometry wins over position",
			feature: func() RawFeature {
				f := NewRawFeature(KindWay, 1, nil)
				f.Position = &Position{Lat: 0.5, Lon: 0.5}
				f.Geometry = orb.LineString{{0, 0}, {1, 2}}
				return f
			},
			want:   orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 2}},
			wantOK: true,
		},
		{
			name: "empty collection falls back to position",
			feature: func() RawFeature {
				f := NewRawFeature(KindRelation, 1, nil)
				f.Position = &Position{Lat: 3, Lon: 4}
				f.Geometry = orb.Collection{}
				return f
			},
			want:   orb.Bound{Min: orb.Point{4, 3}, Max: orb.Point{4, 3}},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.feature().Bound()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRawFeatureName(t *testing.T) {
	assert.Equal(t, "Cafe Luna", NewRawFeature(KindNode, 1, map[string]string{"name": "Cafe Luna"}).Name())
	assert.Empty(t, NewRawFeature(KindNode, 1, nil).Name())
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, FoldName("STRASSE"), FoldName("strasse"))
	assert.Equal(t, FoldName("Café"), FoldName("CAFÉ"))
}
