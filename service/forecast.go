package service

import "math"

// syntheticHistory derives a short monthly spending series from the last
// observed month. Month i is lastMonthSpend * (0.95 + 0.1*i), floored at 0.
func syntheticHistory(lastMonthSpend float64, months int) []float64 {
	history := make([]float64, months)
	for i := range history {
		history[i] = math.Max(0.0, lastMonthSpend*(0.95+0.1*float64(i)))
	}
	return history
}

// baselineForecast projects the series forward with an ordinary
// least-squares drift fit over the month index. Values are clamped at 0.
// Returns nil when the history carries no signal.
func baselineForecast(history []float64, months int) []float64 {
	if len(history) < 2 || months <= 0 {
		return nil
	}

	allZero := true
	for _, v := range history {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil
	}

	n := float64(len(history))
	var sumT, sumY, sumTT, sumTY float64
	for t, y := range history {
		ft := float64(t)
		sumT += ft
		sumY += y
		sumTT += ft * ft
		sumTY += ft * y
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return nil
	}
	slope := (n*sumTY - sumT*sumY) / denom
	intercept := (sumY - slope*sumT) / n

	forecast := make([]float64, months)
	for i := 0; i < months; i++ {
		t := float64(len(history) + i)
		forecast[i] = math.Max(0.0, intercept+slope*t)
	}
	return forecast
}

// Forecast builds the forecast mapping for an advisory result: a "baseline"
// series projected from the synthetic history. The map is empty (never nil)
// when no projection is possible.
func Forecast(lastMonthSpend float64) map[string][]float64 {
	preds := map[string][]float64{}
	history := syntheticHistory(lastMonthSpend, ForecastHistoryMonths)
	if baseline := baselineForecast(history, ForecastMonths); baseline != nil {
		preds["baseline"] = baseline
	}
	return preds
}
