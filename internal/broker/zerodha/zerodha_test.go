package zerodha

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	kiteconnect "github.com/zerodha/gokiteconnect/v4"
	"github.com/zerodha/gokiteconnect/v4/models"

	"stockchat/internal/types"
)

type fakeKite struct {
	instrumentCalls int
	interval        string
	token           int
	candles         []kiteconnect.HistoricalData
	err             error
}

func (f *fakeKite) GetInstrumentsByExchange(exchange string) (kiteconnect.Instruments, error) {
	f.instrumentCalls++
	return kiteconnect.Instruments{
		{InstrumentToken: 738561, Tradingsymbol: "RELIANCE"},
		{InstrumentToken: 2953217, Tradingsymbol: "TCS"},
	}, nil
}

func (f *fakeKite) GetHistoricalData(token int, interval string, from, to time.Time, continuous, oi bool) ([]kiteconnect.HistoricalData, error) {
	f.token = token
	f.interval = interval
	return f.candles, f.err
}

func candle(day int, close float64) kiteconnect.HistoricalData {
	return kiteconnect.HistoricalData{
		Date:  models.Time{Time: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)},
		Close: close,
	}
}

func newTest(f *fakeKite) *Zerodha {
	return newWithAPI(Params{APIKey: "k", AccessToken: "t", Exchange: "NSE"}, f)
}

func TestBarsTakesLastN(t *testing.T) {
	f := &fakeKite{candles: []kiteconnect.HistoricalData{candle(1, 10), candle(2, 11), candle(3, 12)}}
	z := newTest(f)

	bars, err := z.Bars(context.Background(), "reliance", types.OneDay, 2)
	require.NoError(t, err)

	assert.Equal(t, 738561, f.token)
	assert.Equal(t, "day", f.interval)
	require.Len(t, bars, 2)
	assert.Equal(t, 11.0, bars[0].Close)
	assert.Equal(t, 12.0, bars[1].Close)
}

func TestBarsMinuteInterval(t *testing.T) {
	f := &fakeKite{candles: []kiteconnect.HistoricalData{candle(1, 10)}}
	_, err := newTest(f).Bars(context.Background(), "TCS", types.OneMinute, 1)
	require.NoError(t, err)
	assert.Equal(t, "minute", f.interval)
	assert.Equal(t, 2953217, f.token)
}

func TestInstrumentsLoadedOnce(t *testing.T) {
	f := &fakeKite{}
	z := newTest(f)

	_, _ = z.Bars(context.Background(), "TCS", types.OneDay, 1)
	_, err := z.Bars(context.Background(), "UNKNOWN", types.OneDay, 1)

	assert.True(t, errors.Is(err, types.ErrNoData))
	assert.Equal(t, 1, f.instrumentCalls)
}

func TestBarsUpstreamError(t *testing.T) {
	f := &fakeKite{err: errors.New("token expired")}
	_, err := newTest(f).Bars(context.Background(), "TCS", types.OneDay, 1)
	assert.True(t, errors.Is(err, types.ErrUpstreamUnavailable))
}

func TestBarsRequiresCredentials(t *testing.T) {
	z := newWithAPI(Params{}, &fakeKite{})
	_, err := z.Bars(context.Background(), "TCS", types.OneDay, 1)
	assert.EqualError(t, err, "missing API key/access token")
}

func TestInstrumentMapperCaseInsensitive(t *testing.T) {
	im := newInstrumentMapper()
	assert.False(t, im.isLoaded())

	im.addMapping("infy", 408065)

	token, ok := im.getToken("INFY")
	assert.True(t, ok)
	assert.Equal(t, 408065, token)
	_, ok = im.getToken("TCS")
	assert.False(t, ok)
}
