// Package trend fits a straight line of closing price against elapsed days.
package trend

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"stockchat/internal/types"
)

// ElapsedDays counts whole days from epoch to t, flooring partial days so a
// target half a day before the epoch is day -1.
func ElapsedDays(t, epoch time.Time) float64 {
	return math.Floor(t.Sub(epoch).Hours() / 24)
}

// Fit performs ordinary least squares over (days since first bar, close).
// Bars must be ordered oldest first. When every bar falls on the same day the
// model is a flat line through the mean close.
func Fit(bars []types.Bar) (types.TrendModel, error) {
	if len(bars) == 0 {
		return types.TrendModel{}, fmt.Errorf("fit trend: %w: no bars", types.ErrInsufficientData)
	}

	epoch := bars[0].Time
	xs := make([]float64, len(bars))
	ys := make([]float64, len(bars))
	for i, b := range bars {
		xs[i] = ElapsedDays(b.Time, epoch)
		ys[i] = b.Close
	}

	model := types.TrendModel{Epoch: epoch}
	if len(bars) == 1 || stat.Variance(xs, nil) == 0 {
		model.Intercept = stat.Mean(ys, nil)
		return model, nil
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	model.Slope = beta
	model.Intercept = alpha
	return model, nil
}

// Predict evaluates the line at target.
func Predict(model types.TrendModel, target time.Time) float64 {
	return model.Slope*ElapsedDays(target, model.Epoch) + model.Intercept
}
