package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wonny/valuescreen/internal/contracts"
)

// MarketQuote is the price and share count of one ticker
type MarketQuote struct {
	Price  *float64 `yaml:"price"`
	Shares *float64 `yaml:"shares"` // as reported; values below 100,000 are millions
}

// MarketData maps upper-case tickers to quotes.
//
//	AAPL:
//	  price: 189.5
//	  shares: 15441
type MarketData map[string]MarketQuote

// LoadMarketData reads a market data YAML file. An empty path yields no quotes.
func LoadMarketData(path string) (MarketData, error) {
	if path == "" {
		return MarketData{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read market data: %w", err)
	}

	var raw map[string]MarketQuote
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode market data: %w", err)
	}

	market := make(MarketData, len(raw))
	for ticker, quote := range raw {
		market[strings.ToUpper(ticker)] = quote
	}
	return market, nil
}

// TickerFromPath derives the ticker from a payload file name: data/aapl.json -> AAPL
func TickerFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}

// ReadInputs loads financials payload files. Only I/O failures are errors;
// unreadable payloads are kept and surface as error rows when screened.
func ReadInputs(paths []string, market MarketData) ([]*contracts.StoredInput, error) {
	inputs := make([]*contracts.StoredInput, 0, len(paths))
	seen := make(map[string]string, len(paths))

	for _, path := range paths {
		ticker := TickerFromPath(path)
		if prev, dup := seen[ticker]; dup {
			return nil, fmt.Errorf("ticker %s given twice (%s, %s)", ticker, prev, path)
		}
		seen[ticker] = path

		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		quote := market[ticker]
		inputs = append(inputs, &contracts.StoredInput{
			Ticker:    ticker,
			Price:     quote.Price,
			Shares:    quote.Shares,
			Payload:   payload,
			UpdatedAt: time.Now().UTC(),
		})
	}

	return inputs, nil
}
