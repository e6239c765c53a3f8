package types

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Bar is a single OHLCV observation for one interval.
type Bar struct {
	Time                           time.Time
	Open, High, Low, Close, Volume float64
}

type BarSize int

const (
	OneDay BarSize = iota
	OneMinute
)

func (b BarSize) String() string {
	switch b {
	case OneMinute:
		return "1Min"
	default:
		return "1Day"
	}
}

// TimeframeSpec is the concrete (bar size, bar count) pair sent to a broker.
type TimeframeSpec struct {
	BarSize  BarSize
	BarCount int
}

// TrendModel is an ordinary-least-squares line of close price against
// whole days elapsed since Epoch.
type TrendModel struct {
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
	Epoch     time.Time `json:"epoch"`
}

// ResolvedSymbol holds the company/ticker pair derived from one message.
type ResolvedSymbol struct {
	CompanyName string
	Ticker      string
}

func (r ResolvedSymbol) Resolved() bool { return r.Ticker != "" }

// DisplayName is the company name with only its first letter capitalized,
// falling back to the ticker when no company was named.
func (r ResolvedSymbol) DisplayName() string {
	if r.CompanyName == "" {
		return r.Ticker
	}
	lower := strings.ToLower(r.CompanyName)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

type NewsArticle struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}
