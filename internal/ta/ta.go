// Package ta computes trailing technical indicators over daily bars.
package ta

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"stockchat/internal/types"
)

const (
	SMAPeriod       = 20
	RSIPeriod       = 14
	BollingerPeriod = 20
	BollingerK      = 2.0
	ATRPeriod       = 14
)

// Summary holds the latest value of each indicator. A nil field means the
// series was too short for that indicator.
type Summary struct {
	SMA            *float64 `json:"sma_20,omitempty"`
	RSI            *float64 `json:"rsi_14,omitempty"`
	BollingerUpper *float64 `json:"bollinger_upper,omitempty"`
	BollingerLower *float64 `json:"bollinger_lower,omitempty"`
	ATR            *float64 `json:"atr_14,omitempty"`
}

func Summarize(bars []types.Bar) Summary {
	closes := Closes(bars)
	var s Summary
	s.SMA = valid(SMA(closes, SMAPeriod))
	s.RSI = valid(RSI(closes, RSIPeriod))
	if _, up, low := Bollinger(closes, BollingerPeriod, BollingerK); !math.IsNaN(up) {
		s.BollingerUpper, s.BollingerLower = &up, &low
	}
	s.ATR = valid(ATR(bars, ATRPeriod))
	return s
}

func Closes(bars []types.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

func valid(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// SMA is the mean of the last n closes.
func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	return stat.Mean(closes[len(closes)-n:], nil)
}

// RSI uses simple averages of gains and losses over the last period changes.
func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := gain / loss
	return 100.0 - (100.0 / (1.0 + rs))
}

func Bollinger(closes []float64, n int, k float64) (mid, up, low float64) {
	if len(closes) < n || n <= 0 {
		return math.NaN(), math.NaN(), math.NaN()
	}
	mid, sd := stat.PopMeanStdDev(closes[len(closes)-n:], nil)
	return mid, mid + k*sd, mid - k*sd
}

// ATR is the simple average true range over the last period bars.
func ATR(bars []types.Bar, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return math.NaN()
	}
	trs := make([]float64, 0, period)
	for i := len(bars) - period; i < len(bars); i++ {
		prev := bars[i-1].Close
		tr := math.Max(bars[i].High-bars[i].Low, math.Max(math.Abs(bars[i].High-prev), math.Abs(bars[i].Low-prev)))
		trs = append(trs, tr)
	}
	return stat.Mean(trs, nil)
}
