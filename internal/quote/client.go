// Package quote fetches single stock quotes from an Alpha Vantage style
// GLOBAL_QUOTE endpoint and normalizes them into display strings. Every
// failure mode is mapped to a user-facing message; nothing escapes the
// Fetch boundary as an error.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.alphavantage.co/query"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// globalQuoteResponse mirrors the provider payload: a "Global Quote" object
// with numeric-as-text fields, plus an optional throttling "Note".
type globalQuoteResponse struct {
	GlobalQuote struct {
		High          string `json:"03. high"`
		Low           string `json:"04. low"`
		Price         string `json:"05. price"`
		Volume        string `json:"06. volume"`
		Change        string `json:"09. change"`
		ChangePercent string `json:"10. change percent"`
	} `json:"Global Quote"`
	Note string `json:"Note"`
}

// Fetch returns the formatted quote for a symbol, or a descriptive error
// message. Timeouts, transport failures and malformed payloads each get a
// distinct message. The second return reports whether the text is a real
// quote; failure messages come back false so callers do not cache them.
func (c *Client) Fetch(ctx context.Context, symbol string) (string, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "Please enter a valid stock symbol.", false
	}

	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "API Error: could not build the quote request.", false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			slog.WarnContext(ctx, "Quote request timed out", "symbol", symbol)
			return "The request timed out. Please try again later.", false
		}
		slog.WarnContext(ctx, "Quote request failed", "symbol", symbol, "error", err)
		return "API Error: could not connect to the quote service.", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "Quote service returned bad status", "symbol", symbol, "status", resp.StatusCode)
		return fmt.Sprintf("API Error: quote service returned status %d.", resp.StatusCode), false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "API Error: could not read the quote response.", false
	}

	var payload globalQuoteResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.WarnContext(ctx, "Quote payload is not valid JSON", "symbol", symbol, "error", err)
		return fmt.Sprintf("Could not parse financial data for %s.", symbol), false
	}

	// A well-formed response without a price is a no-data condition, not a
	// transport failure.
	if payload.GlobalQuote.Price == "" {
		note := payload.Note
		if note == "" {
			note = "The API may have limitations. Try another symbol like 'IBM' or 'MSFT'."
		}
		return fmt.Sprintf("No data available for %s. %s", symbol, note), false
	}

	price, err1 := strconv.ParseFloat(payload.GlobalQuote.Price, 64)
	change, err2 := strconv.ParseFloat(payload.GlobalQuote.Change, 64)
	high, err3 := strconv.ParseFloat(payload.GlobalQuote.High, 64)
	low, err4 := strconv.ParseFloat(payload.GlobalQuote.Low, 64)
	volume, err5 := strconv.ParseInt(payload.GlobalQuote.Volume, 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return fmt.Sprintf("Could not parse financial data for %s.", symbol), false
	}
	changePercent := payload.GlobalQuote.ChangePercent
	if changePercent == "" {
		changePercent = "0%"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock Analysis: %s\n\n", symbol)
	fmt.Fprintf(&b, "Current Price: %.2f\n", price)
	fmt.Fprintf(&b, "Change: %.2f (%s)\n", change, changePercent)
	fmt.Fprintf(&b, "Volume: %d\n", volume)
	fmt.Fprintf(&b, "Day's High: %.2f\n", high)
	fmt.Fprintf(&b, "Day's Low: %.2f\n\n", low)
	b.WriteString("Real-time data from the quote provider.")
	return b.String(), true
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
