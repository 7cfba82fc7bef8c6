package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/tajik-krasava/RPP/internal/logger"
	"github.com/tajik-krasava/RPP/internal/storage"
)

// RateStore is the slice of the currencies repository used by the
// conversion/data service.
type RateStore interface {
	List(ctx context.Context) ([]storage.Currency, error)
	Rate(ctx context.Context, name string) (float64, error)
}

// DataAPI serves the conversion endpoints: /currencies, /convert, /rate.
type DataAPI struct {
	store RateStore
}

// NewDataAPI constructs the conversion/data service handler set.
func NewDataAPI(store RateStore) *DataAPI {
	return &DataAPI{store: store}
}

// Handler builds the HTTP mux of the conversion/data service.
func (a *DataAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /currencies", a.handleCurrencies)
	mux.HandleFunc("GET /convert", a.handleConvert)
	mux.HandleFunc("GET /rate", a.handleRate)
	return WithRequestLog(mux)
}

type currenciesResponse struct {
	Currencies []storage.Currency `json:"currencies"`
}

func (a *DataAPI) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	list, err := a.store.List(r.Context())
	if err != nil {
		logger.HTTP.Error("list currencies failed",
			slog.String("event", "data.currencies"),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []storage.Currency{}
	}
	writeJSON(w, http.StatusOK, currenciesResponse{Currencies: list})
}

type convertResponse struct {
	OriginalAmount  float64 `json:"original_amount"`
	Currency        string  `json:"currency"`
	Rate            float64 `json:"rate"`
	ConvertedAmount float64 `json:"converted_amount"`
}

func (a *DataAPI) handleConvert(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("currency")
	rawAmount := r.URL.Query().Get("amount")
	if name == "" || rawAmount == "" {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency и amount")
		return
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Amount должен быть числом")
		return
	}

	rate, err := a.store.Rate(r.Context(), name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Валюта не найдена")
		return
	case err != nil:
		logger.HTTP.Error("convert failed",
			slog.String("event", "data.convert"),
			slog.String("currency", name),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		OriginalAmount:  amount,
		Currency:        name,
		Rate:            rate,
		ConvertedAmount: math.Round(amount*rate*100) / 100,
	})
}

type rateResponse struct {
	Rate float64 `json:"rate"`
}

func (a *DataAPI) handleRate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("currency")
	if name == "" {
		writeMessage(w, http.StatusBadRequest, "UNKNOWN CURRENCY")
		return
	}

	rate, err := a.store.Rate(r.Context(), name)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusBadRequest, "UNKNOWN CURRENCY")
	case err != nil:
		logger.HTTP.Error("rate lookup failed",
			slog.String("event", "data.rate"),
			slog.String("currency", name),
			slog.String("err", err.Error()),
		)
		writeMessage(w, http.StatusInternalServerError, "UNEXPECTED ERROR")
	default:
		writeJSON(w, http.StatusOK, rateResponse{Rate: rate})
	}
}
