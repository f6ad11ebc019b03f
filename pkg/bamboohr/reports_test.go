package bamboohr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{Subdomain: "acme", Token: "tok123", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, srv
}

func TestGetCustomReportDecodesRecords(t *testing.T) {
	var gotBody customReportRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("Accept = %q", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Fatalf("format = %q", got)
		}
		if got := r.URL.Query().Get("onlyCurrent"); got != "true" {
			t.Fatalf("onlyCurrent = %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		w.Write([]byte(`{
			"title": "roster",
			"fields": [{"id":"firstName","type":"text","name":"First Name"}],
			"employees": [
				{"firstName":"Ada","jobTitle":"Engineer"},
				{"firstName":"Linus","jobTitle":null}
			]
		}`))
	})

	records, err := client.GetCustomReport(context.Background(), "roster", []string{"firstName", "jobTitle"})
	if err != nil {
		t.Fatalf("GetCustomReport: %v", err)
	}

	if gotBody.Title != "roster" {
		t.Fatalf("request title = %q", gotBody.Title)
	}
	if len(gotBody.Fields) != 2 || gotBody.Fields[0] != "firstName" || gotBody.Fields[1] != "jobTitle" {
		t.Fatalf("request fields = %v", gotBody.Fields)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if v := records[0]["firstName"]; v == nil || *v != "Ada" {
		t.Fatalf("records[0].firstName = %v", v)
	}
	if v, ok := records[1]["jobTitle"]; !ok || v != nil {
		t.Fatalf("expected null jobTitle to decode as nil pointer, got %v (present=%v)", v, ok)
	}
}

func TestGetCustomReportAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	})

	_, err := client.GetCustomReport(context.Background(), "roster", []string{"id"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", apiErr.StatusCode)
	}
	if len(apiErr.Body) == 0 {
		t.Fatalf("expected response body to be preserved")
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		t.Fatalf("401 must not surface as DecodeError")
	}
}

func TestGetCustomReportDecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.GetCustomReport(context.Background(), "roster", []string{"id"})

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestGetCustomReportValidatesInput(t *testing.T) {
	client, _ := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatalf("no request expected for invalid input")
	})

	if _, err := client.GetCustomReport(context.Background(), "  ", []string{"id"}); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := client.GetCustomReport(context.Background(), "roster", nil); err == nil {
		t.Fatalf("expected error for empty fields")
	}
}

func TestGetCustomReportRaw(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "csv" {
			t.Fatalf("format = %q", got)
		}
		if got := r.URL.Query().Get("onlyCurrent"); got != "false" {
			t.Fatalf("onlyCurrent = %q", got)
		}
		w.Write([]byte("firstName\nAda\n"))
	})

	body, err := client.GetCustomReportRaw(context.Background(), "roster", []string{"firstName"}, FormatCSV, false)
	if err != nil {
		t.Fatalf("GetCustomReportRaw: %v", err)
	}
	if string(body) != "firstName\nAda\n" {
		t.Fatalf("body = %q", body)
	}

	if _, err := client.GetCustomReportRaw(context.Background(), "roster", []string{"firstName"}, "docx", true); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
