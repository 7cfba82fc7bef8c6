package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tajik-krasava/RPP/internal/logger"
	"github.com/tajik-krasava/RPP/internal/storage"
)

// CurrencyStore is the slice of the currencies repository used by the
// rate-storage service.
type CurrencyStore interface {
	Insert(ctx context.Context, name string, rate float64) error
	UpdateRate(ctx context.Context, name string, rate float64) error
	Delete(ctx context.Context, name string) error
}

// CurrencyAPI serves the rate-storage endpoints: /load, /update_currency, /delete.
type CurrencyAPI struct {
	store CurrencyStore
}

// NewCurrencyAPI constructs the rate-storage service handler set.
func NewCurrencyAPI(store CurrencyStore) *CurrencyAPI {
	return &CurrencyAPI{store: store}
}

// Handler builds the HTTP mux of the rate-storage service.
func (a *CurrencyAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /load", a.handleLoad)
	mux.HandleFunc("POST /update_currency", a.handleUpdate)
	mux.HandleFunc("POST /delete", a.handleDelete)
	return WithRequestLog(mux)
}

type loadRequest struct {
	CurrencyName string  `json:"currency_name"`
	Rate         float64 `json:"rate"`
}

func (a *CurrencyAPI) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name и rate")
		return
	}
	if req.CurrencyName == "" || req.Rate <= 0 {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name и rate")
		return
	}

	err := a.store.Insert(r.Context(), req.CurrencyName, req.Rate)
	switch {
	case errors.Is(err, storage.ErrExists):
		writeError(w, http.StatusBadRequest, "Валюта уже существует")
	case err != nil:
		logger.HTTP.Error("load currency failed",
			slog.String("event", "currency.load"),
			slog.String("currency", req.CurrencyName),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeMessage(w, http.StatusOK, "Валюта успешно добавлена")
	}
}

type updateRequest struct {
	CurrencyName string  `json:"currency_name"`
	NewRate      float64 `json:"new_rate"`
}

func (a *CurrencyAPI) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name и new_rate")
		return
	}
	if req.CurrencyName == "" || req.NewRate <= 0 {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name и new_rate")
		return
	}

	err := a.store.UpdateRate(r.Context(), req.CurrencyName, req.NewRate)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Валюта не найдена")
	case err != nil:
		logger.HTTP.Error("update currency failed",
			slog.String("event", "currency.update"),
			slog.String("currency", req.CurrencyName),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeMessage(w, http.StatusOK, "Курс валюты успешно обновлен")
	}
}

type deleteRequest struct {
	CurrencyName string `json:"currency_name"`
}

func (a *CurrencyAPI) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name")
		return
	}
	if req.CurrencyName == "" {
		writeError(w, http.StatusBadRequest, "Необходимо указать currency_name")
		return
	}

	err := a.store.Delete(r.Context(), req.CurrencyName)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Валюта не найдена")
	case err != nil:
		logger.HTTP.Error("delete currency failed",
			slog.String("event", "currency.delete"),
			slog.String("currency", req.CurrencyName),
			slog.String("err", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeMessage(w, http.StatusOK, "Валюта успешно удалена")
	}
}
