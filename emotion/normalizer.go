package emotion

// NormalizeTable rescales each feature column independently to [0, 1]
// using the minimum and maximum observed within this table.
//
// Normalization is strictly local to the current track's analysis
// window, never a running or global statistic: repeated analysis of the
// same audio is reproducible, but values are not comparable in absolute
// terms across different snippet lengths. A constant column (e.g. on a
// silent track) normalizes to exactly 0.5 everywhere, a neutral
// midpoint that avoids both divide-by-zero and an arbitrary 0/1 bias.
func NormalizeTable(table RawFeatureTable) NormalizedFeatureTable {
	if len(table) == 0 {
		return NormalizedFeatureTable{}
	}

	var mins, maxs [NumFeatures]float64

	first := table[0].featureValues()
	mins = first
	maxs = first

	for _, row := range table[1:] {
		values := row.featureValues()
		for col := 0; col < NumFeatures; col++ {
			if values[col] < mins[col] {
				mins[col] = values[col]
			}
			if values[col] > maxs[col] {
				maxs[col] = values[col]
			}
		}
	}

	normalized := make(NormalizedFeatureTable, len(table))

	for i, row := range table {
		values := row.featureValues()

		var scaled [NumFeatures]float64
		for col := 0; col < NumFeatures; col++ {
			if maxs[col] == mins[col] {
				scaled[col] = 0.5
			} else {
				scaled[col] = (values[col] - mins[col]) / (maxs[col] - mins[col])
			}
		}

		normalized[i].TimeSec = row.TimeSec
		normalized[i].setFeatureValues(scaled)
	}

	return normalized
}
