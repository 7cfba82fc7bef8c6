// Package backend is the typed HTTP client the bot uses to talk to the
// rate-storage and conversion services. HTTP statuses are translated into
// sentinel errors; calls carry no internal retry, a failed call is terminal
// for the workflow that issued it.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tajik-krasava/RPP/internal/logger"
)

// Currency mirrors one entry of the data service /currencies response.
type Currency struct {
	Name string  `json:"currency_name"`
	Rate float64 `json:"rate"`
}

// Conversion mirrors the data service /convert response.
type Conversion struct {
	OriginalAmount  float64 `json:"original_amount"`
	Currency        string  `json:"currency"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"converted_amount"`
}

// Client calls the two backend services.
type Client struct {
	currencyURL string
	dataURL     string
	http        *http.Client
}

// New constructs a backend client. timeout bounds a single call end to end.
func New(currencyURL, dataURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		currencyURL: strings.TrimRight(currencyURL, "/"),
		dataURL:     strings.TrimRight(dataURL, "/"),
		http:        &http.Client{Timeout: timeout},
	}
}

type loadPayload struct {
	CurrencyName string  `json:"currency_name"`
	Rate         float64 `json:"rate"`
}

// LoadCurrency stores a new currency. Returns ErrCurrencyExists on conflict.
func (c *Client) LoadCurrency(ctx context.Context, name string, rate float64) error {
	status, _, err := c.postJSON(ctx, c.currencyURL+"/load", loadPayload{
		CurrencyName: name,
		Rate:         rate,
	})
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusBadRequest:
		return ErrCurrencyExists
	default:
		return fmt.Errorf("%w: load status %d", ErrUnavailable, status)
	}
}

type updatePayload struct {
	CurrencyName string  `json:"currency_name"`
	NewRate      float64 `json:"new_rate"`
}

// UpdateCurrency changes a stored rate. Returns ErrCurrencyNotFound for an unknown name.
func (c *Client) UpdateCurrency(ctx context.Context, name string, newRate float64) error {
	status, _, err := c.postJSON(ctx, c.currencyURL+"/update_currency", updatePayload{
		CurrencyName: name,
		NewRate:      newRate,
	})
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrCurrencyNotFound
	default:
		return fmt.Errorf("%w: update status %d", ErrUnavailable, status)
	}
}

type deletePayload struct {
	CurrencyName string `json:"currency_name"`
}

// DeleteCurrency removes a stored currency. Returns ErrCurrencyNotFound for an unknown name.
func (c *Client) DeleteCurrency(ctx context.Context, name string) error {
	status, _, err := c.postJSON(ctx, c.currencyURL+"/delete", deletePayload{CurrencyName: name})
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrCurrencyNotFound
	default:
		return fmt.Errorf("%w: delete status %d", ErrUnavailable, status)
	}
}

type currenciesPayload struct {
	Currencies []Currency `json:"currencies"`
}

// Currencies lists all stored currencies.
func (c *Client) Currencies(ctx context.Context) ([]Currency, error) {
	status, body, err := c.get(ctx, c.dataURL+"/currencies", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: currencies status %d", ErrUnavailable, status)
	}
	var payload currenciesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode currencies: %v", ErrUnavailable, err)
	}
	return payload.Currencies, nil
}

// Convert asks the data service to convert an amount into rubles.
// Returns ErrCurrencyNotFound for an unknown currency.
func (c *Client) Convert(ctx context.Context, name string, amount float64) (Conversion, error) {
	query := url.Values{
		"currency": {name},
		"amount":   {strconv.FormatFloat(amount, 'f', -1, 64)},
	}
	status, body, err := c.get(ctx, c.dataURL+"/convert", query)
	if err != nil {
		return Conversion{}, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return Conversion{}, ErrCurrencyNotFound
	default:
		return Conversion{}, fmt.Errorf("%w: convert status %d", ErrUnavailable, status)
	}
	var conv Conversion
	if err := json.Unmarshal(body, &conv); err != nil {
		return Conversion{}, fmt.Errorf("%w: decode conversion: %v", ErrUnavailable, err)
	}
	return conv, nil
}

type ratePayload struct {
	Rate float64 `json:"rate"`
}

// Rate fetches the ruble rate of a single currency code.
// Returns ErrCurrencyNotFound for an unknown code.
func (c *Client) Rate(ctx context.Context, code string) (float64, error) {
	status, body, err := c.get(ctx, c.dataURL+"/rate", url.Values{"currency": {code}})
	if err != nil {
		return 0, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusBadRequest:
		return 0, ErrCurrencyNotFound
	default:
		return 0, fmt.Errorf("%w: rate status %d", ErrUnavailable, status)
	}
	var payload ratePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: decode rate: %v", ErrUnavailable, err)
	}
	return payload.Rate, nil
}

func (c *Client) postJSON(ctx context.Context, rawURL string, payload any) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.BE.Error("backend call failed",
			slog.String("event", "backend.call"),
			slog.String("url", req.URL.String()),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
			slog.String("err", err.Error()),
		)
		return 0, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	logger.BE.Debug("backend call",
		slog.String("event", "backend.call"),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return resp.StatusCode, body, nil
}
