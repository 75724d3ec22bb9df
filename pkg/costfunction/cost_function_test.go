package costfunction

import (
	"testing"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCostFunction(t *testing.T) {
	e := datastructure.NewOutEdge(0, 1, 12.5, 250)

	testCases := []struct {
		weight  string
		want    float64
		wantErr bool
	}{
		{weight: LENGTH, want: 250},
		{weight: TRAVEL_TIME, want: 12.5},
		{weight: "fuel", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.weight, func(t *testing.T) {
			cf, err := NewCostFunction(tt.weight)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cf.GetWeight(e))
			assert.Equal(t, tt.weight, cf.Name())
		})
	}
}
