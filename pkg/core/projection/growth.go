package projection

// GrowthVector builds the per-year revenue growth series for the explicit
// horizon. The first explicitYears entries hold baseRate; the remaining
// entries fade linearly toward terminalRate, with the final entry landing on
// terminalRate exactly. Pure function of its inputs, no randomness.
//
// Edge cases: explicitYears = 0 means the whole vector converges immediately
// (every entry is terminalRate); totalYears = 0 returns an empty slice.
func GrowthVector(baseRate, terminalRate float64, totalYears, explicitYears int) []float64 {
	if totalYears <= 0 {
		return []float64{}
	}
	if explicitYears > totalYears {
		explicitYears = totalYears
	}
	if explicitYears < 0 {
		explicitYears = 0
	}

	vec := make([]float64, totalYears)
	for i := 0; i < explicitYears; i++ {
		vec[i] = baseRate
	}

	fadeYears := totalYears - explicitYears
	if explicitYears == 0 {
		// No explicit period: terminal rate from year one.
		for i := range vec {
			vec[i] = terminalRate
		}
		return vec
	}
	for i := explicitYears; i < totalYears; i++ {
		// Linear fade: step 1/fadeYears per year, reaching terminalRate
		// in the final year.
		t := float64(i-explicitYears+1) / float64(fadeYears)
		vec[i] = baseRate + (terminalRate-baseRate)*t
	}
	return vec
}
