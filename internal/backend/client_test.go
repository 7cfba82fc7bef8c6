package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoadCurrency(t *testing.T) {
	var got loadPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/load" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	if err := client.LoadCurrency(context.Background(), "USD", 90.5); err != nil {
		t.Fatalf("LoadCurrency: %v", err)
	}
	if got.CurrencyName != "USD" || got.Rate != 90.5 {
		t.Fatalf("payload = %+v", got)
	}
}

func TestLoadCurrencyConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Валюта уже существует"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	err := client.LoadCurrency(context.Background(), "USD", 90.5)
	if !errors.Is(err, ErrCurrencyExists) {
		t.Fatalf("expected ErrCurrencyExists, got %v", err)
	}
}

func TestUpdateCurrencyNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/update_currency" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	err := client.UpdateCurrency(context.Background(), "EUR", 100)
	if !errors.Is(err, ErrCurrencyNotFound) {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
}

func TestDeleteCurrency(t *testing.T) {
	var got deletePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/delete" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	if err := client.DeleteCurrency(context.Background(), "USD"); err != nil {
		t.Fatalf("DeleteCurrency: %v", err)
	}
	if got.CurrencyName != "USD" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestCurrencies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/currencies" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"currencies":[{"currency_name":"USD","rate":90.5},{"currency_name":"EUR","rate":100}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	list, err := client.Currencies(context.Background())
	if err != nil {
		t.Fatalf("Currencies: %v", err)
	}
	if len(list) != 2 || list[0].Name != "USD" || list[0].Rate != 90.5 {
		t.Fatalf("list = %+v", list)
	}
}

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/convert" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("currency") != "USD" || q.Get("amount") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"original_amount":100,"currency":"USD","rate":90.5,"converted_amount":9050}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	conv, err := client.Convert(context.Background(), "USD", 100)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if conv.ConvertedAmount != 9050 || conv.Rate != 90.5 {
		t.Fatalf("conversion = %+v", conv)
	}
}

func TestConvertNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Валюта не найдена"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	if _, err := client.Convert(context.Background(), "GBP", 1); !errors.Is(err, ErrCurrencyNotFound) {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
}

func TestRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("currency") != "USD" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"rate":90.5}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	rate, err := client.Rate(context.Background(), "USD")
	if err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if rate != 90.5 {
		t.Fatalf("rate = %v", rate)
	}
}

func TestRateUnknownCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"UNKNOWN CURRENCY"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)
	if _, err := client.Rate(context.Background(), "GBP"); !errors.Is(err, ErrCurrencyNotFound) {
		t.Fatalf("expected ErrCurrencyNotFound, got %v", err)
	}
}

func TestTransportErrorWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, srv.URL, time.Second)
	if err := client.LoadCurrency(context.Background(), "USD", 1); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := client.Currencies(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
