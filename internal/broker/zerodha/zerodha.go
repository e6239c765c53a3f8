// Package zerodha serves historical candles from Kite Connect.
package zerodha

import (
	"context"
	"errors"
	"fmt"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/types"
)

type Params struct {
	APIKey      string
	AccessToken string
	Exchange    string
	BaseURL     string
	Timeout     time.Duration
}

// kiteAPI is the slice of the Kite Connect client used here
type kiteAPI interface {
	GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error)
	GetHistoricalData(instrumentToken int, interval string, fromDate time.Time, toDate time.Time, continuous bool, OI bool) ([]kiteconnect.HistoricalData, error)
}

type Zerodha struct {
	p           Params
	kc          kiteAPI
	instruments *instrumentMapper
	now         func() time.Time
}

var _ interfaces.Broker = (*Zerodha)(nil)

func NewZerodha(p Params) *Zerodha {
	if p.Exchange == "" {
		p.Exchange = "NSE"
	}
	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)
	if p.BaseURL != "" {
		kc.SetBaseURI(p.BaseURL)
	}
	if p.Timeout > 0 {
		kc.SetTimeout(p.Timeout)
	}
	return newWithAPI(p, kc)
}

func newWithAPI(p Params, kc kiteAPI) *Zerodha {
	return &Zerodha{
		p:           p,
		kc:          kc,
		instruments: newInstrumentMapper(),
		now:         time.Now,
	}
}

// Bars returns the last limit candles of symbol on the configured exchange.
func (z *Zerodha) Bars(ctx context.Context, symbol string, size types.BarSize, limit int) ([]types.Bar, error) {
	if z.p.APIKey == "" || z.p.AccessToken == "" {
		return nil, errors.New("missing API key/access token")
	}
	if limit <= 0 {
		limit = 1
	}

	token, err := z.instrumentToken(ctx, symbol)
	if err != nil {
		return nil, err
	}

	interval, from := z.window(size, limit)
	candles, err := z.kc.GetHistoricalData(token, interval, from, z.now(), false, false)
	if err != nil {
		return nil, fmt.Errorf("%w: kite historical %s: %v", types.ErrUpstreamUnavailable, symbol, err)
	}

	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	bars := make([]types.Bar, 0, len(candles))
	for _, c := range candles {
		bars = append(bars, types.Bar{
			Time:   c.Date.Time,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: float64(c.Volume),
		})
	}
	return bars, nil
}

// window picks the Kite interval name and a start date wide enough to cover
// limit bars across weekends and holidays.
func (z *Zerodha) window(size types.BarSize, limit int) (string, time.Time) {
	now := z.now()
	if size == types.OneMinute {
		return "minute", now.AddDate(0, 0, -5)
	}
	return "day", now.AddDate(0, 0, -(limit*7/5 + 10))
}

func (z *Zerodha) instrumentToken(ctx context.Context, symbol string) (int, error) {
	if token, ok := z.instruments.getToken(symbol); ok {
		return token, nil
	}
	if z.instruments.isLoaded() {
		return 0, fmt.Errorf("%w: %s not listed on %s", types.ErrNoData, symbol, z.p.Exchange)
	}

	list, err := z.kc.GetInstrumentsByExchange(z.p.Exchange)
	if err != nil {
		return 0, fmt.Errorf("%w: kite instruments: %v", types.ErrUpstreamUnavailable, err)
	}
	for _, inst := range list {
		z.instruments.addMapping(inst.Tradingsymbol, inst.InstrumentToken)
	}
	z.instruments.markLoaded()
	logger.Info(ctx, "Loaded Kite instruments", "exchange", z.p.Exchange, "count", len(list))

	token, ok := z.instruments.getToken(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %s not listed on %s", types.ErrNoData, symbol, z.p.Exchange)
	}
	return token, nil
}
