package zerodha

import (
	"strings"
	"sync"
)

// instrumentMapper maps trading symbols to Kite instrument tokens for one exchange.
type instrumentMapper struct {
	symbolToToken map[string]int
	loaded        bool
	mu            sync.RWMutex
}

func newInstrumentMapper() *instrumentMapper {
	return &instrumentMapper{
		symbolToToken: make(map[string]int),
	}
}

func (im *instrumentMapper) addMapping(symbol string, token int) {
	im.mu.Lock()
	defer im.mu.Unlock()

	symbol = strings.ToUpper(symbol)
	im.symbolToToken[symbol] = token
}

func (im *instrumentMapper) getToken(symbol string) (int, bool) {
	im.mu.RLock()
	defer im.mu.RUnlock()

	token, ok := im.symbolToToken[strings.ToUpper(symbol)]
	return token, ok
}

func (im *instrumentMapper) isLoaded() bool {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.loaded
}

func (im *instrumentMapper) markLoaded() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.loaded = true
}
