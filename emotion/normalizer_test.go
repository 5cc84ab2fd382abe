package emotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRow(timeSec int, values [NumFeatures]float64) FeatureRow {
	row := FeatureRow{TimeSec: timeSec}
	row.setFeatureValues(values)
	return row
}

func TestNormalizeTableEndpoints(t *testing.T) {
	table := RawFeatureTable{
		makeRow(0, [NumFeatures]float64{0.1, 100.0, 50.0, 0.02, 0.3, 1.0, 0.4, 0.6, 0.2, 2.0}),
		makeRow(1, [NumFeatures]float64{0.3, 300.0, 150.0, 0.06, 0.5, 3.0, 0.6, 0.8, 0.5, 3.0}),
		makeRow(2, [NumFeatures]float64{0.2, 200.0, 100.0, 0.04, 0.4, 2.0, 0.5, 0.7, 0.35, 2.5}),
	}

	normalized := NormalizeTable(table)
	require.Len(t, normalized, 3)

	// Row holding a column's min maps to exactly 0, the max to exactly 1
	for col := 0; col < NumFeatures; col++ {
		low := normalized[0].featureValues()
		high := normalized[1].featureValues()
		mid := normalized[2].featureValues()
		assert.Equal(t, 0.0, low[col], "column %s", FeatureNames[col])
		assert.Equal(t, 1.0, high[col], "column %s", FeatureNames[col])
		assert.InDelta(t, 0.5, mid[col], 1e-9, "column %s", FeatureNames[col])
	}

	// TimeSec carries through untouched
	for i, row := range normalized {
		assert.Equal(t, i, row.TimeSec)
	}
}

func TestNormalizeTableConstantColumn(t *testing.T) {
	values := [NumFeatures]float64{0.25, 150.0, 80.0, 0.03, 0.4, 1.5, 0.5, 0.6, 0.3, 2.2}
	table := RawFeatureTable{
		makeRow(0, values),
		makeRow(1, values),
		makeRow(2, values),
	}

	normalized := NormalizeTable(table)

	for _, row := range normalized {
		for col, val := range row.featureValues() {
			assert.Equal(t, 0.5, val, "column %s", FeatureNames[col])
		}
	}
}

func TestNormalizeTableSingleRow(t *testing.T) {
	table := RawFeatureTable{
		makeRow(0, [NumFeatures]float64{0.1, 100.0, 50.0, 0.02, 0.3, 1.0, 0.4, 0.6, 0.2, 2.0}),
	}

	// One row means every column is constant
	normalized := NormalizeTable(table)
	require.Len(t, normalized, 1)
	for _, val := range normalized[0].featureValues() {
		assert.Equal(t, 0.5, val)
	}
}

func TestNormalizeTableEmpty(t *testing.T) {
	assert.Empty(t, NormalizeTable(RawFeatureTable{}))
	assert.Empty(t, NormalizeTable(nil))
}

func TestNormalizeTableBounds(t *testing.T) {
	table := RawFeatureTable{
		makeRow(0, [NumFeatures]float64{-5.0, 0.0, 1e6, -0.5, 0.0, 100.0, 0.0, 0.0, 0.0, 0.0}),
		makeRow(1, [NumFeatures]float64{5.0, 1.0, -1e6, 0.5, 1.0, -100.0, 1.0, 1.0, 1.0, 1.0}),
		makeRow(2, [NumFeatures]float64{0.0, 0.5, 0.0, 0.0, 0.5, 0.0, 0.5, 0.5, 0.5, 0.5}),
	}

	for _, row := range NormalizeTable(table) {
		for _, val := range row.featureValues() {
			assert.GreaterOrEqual(t, val, 0.0)
			assert.LessOrEqual(t, val, 1.0)
		}
	}
}
