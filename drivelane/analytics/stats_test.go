package analytics

import (
	"testing"
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/database/models"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"unsorted input untouched", []float64{9, 1, 5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Median(tt.values))
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	require.Equal(t, []float64{3, 1, 2}, values)
}

func TestMeanAndMinMax(t *testing.T) {
	require.Equal(t, 0.0, Mean(nil))
	require.Equal(t, 2.0, Mean([]float64{1, 2, 3}))

	min, max := MinMax(nil)
	require.Equal(t, 0.0, min)
	require.Equal(t, 0.0, max)

	min, max = MinMax([]float64{7, 2, 9, 4})
	require.Equal(t, 2.0, min)
	require.Equal(t, 9.0, max)
}

func TestDispersion(t *testing.T) {
	require.Equal(t, 0.0, Dispersion(nil))
	require.Equal(t, 0.0, Dispersion([]float64{10}))
	require.Equal(t, 0.0, Dispersion([]float64{10, 10, 10}))

	// Wider spreads around the same mean score higher.
	tight := Dispersion([]float64{19000, 20000, 21000})
	wide := Dispersion([]float64{10000, 20000, 30000})
	require.Greater(t, wide, tight)
}

func TestBuildSnapshot(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prices := []float64{18000, 20000, 25000, 21000}
	sales := []*models.SaleRecord{
		{ListedAt: at.AddDate(0, 0, -20), SoldAt: at.AddDate(0, 0, -10)},
		{ListedAt: at.AddDate(0, 0, -34), SoldAt: at.AddDate(0, 0, -4)},
	}

	snapshot := buildSnapshot(at, comparison.CategorySedan, prices, sales)

	require.Equal(t, "Sedan", snapshot.Category)
	require.Equal(t, 4, snapshot.ActiveListings)
	require.Equal(t, 18000.0, snapshot.MinPrice)
	require.Equal(t, 25000.0, snapshot.MaxPrice)
	require.Equal(t, 21000.0, snapshot.AvgPrice)
	require.Equal(t, 20500.0, snapshot.MedianPrice)
	require.Greater(t, snapshot.PriceDispersion, 0.0)
	require.Equal(t, 2, snapshot.SalesVolume)
	require.InDelta(t, 20.0, snapshot.AvgDaysToSale, 0.001)
}

func TestBuildSnapshotSmallSampleSkipsMedian(t *testing.T) {
	at := time.Now()
	snapshot := buildSnapshot(at, comparison.CategoryCoupe, []float64{30000, 32000}, nil)

	require.Equal(t, 2, snapshot.ActiveListings)
	require.Equal(t, 30000.0, snapshot.MinPrice)
	require.Equal(t, 32000.0, snapshot.MaxPrice)
	require.Equal(t, 0.0, snapshot.MedianPrice)
	require.Equal(t, 0.0, snapshot.PriceDispersion)
	require.Equal(t, 0.0, snapshot.AvgDaysToSale)
}

func TestBuildSnapshotEmptyCategory(t *testing.T) {
	snapshot := buildSnapshot(time.Now(), comparison.CategoryMinivan, nil, nil)

	require.Equal(t, 0, snapshot.ActiveListings)
	require.Equal(t, 0.0, snapshot.MinPrice)
	require.Equal(t, 0.0, snapshot.AvgPrice)
	require.Equal(t, 0, snapshot.SalesVolume)
}
