package roadtax

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rkeulen/autokosten/internal/config"
)

const resultPage = `<html><body>
<table>
<tr><th>Provincie</th><th>Per maand</th></tr>
<tr><td>Utrecht</td><td>€ 98,00</td></tr>
<tr><td>Noord-Holland</td><td>€ 123,45</td></tr>
</table>
</body></html>`

func newTestClient(url string) *Client {
	return NewClient(config.RoadTaxConfig{
		URL:          url,
		Jurisdiction: "Noord-Holland",
		Timeout:      2 * time.Second,
	})
}

func TestLookup_JurisdictionRow(t *testing.T) {
	var gotPlate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPlate = r.FormValue("kenteken")
		w.Write([]byte(resultPage))
	}))
	defer srv.Close()

	tax, err := newTestClient(srv.URL).Lookup(context.Background(), "12-ab-34")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if gotPlate != "12AB34" {
		t.Errorf("expected normalized plate 12AB34, got %q", gotPlate)
	}
	if !tax.Found {
		t.Error("expected Found")
	}
	if tax.MonthlyAmount != 123.45 {
		t.Errorf("expected 123.45, got %v", tax.MonthlyAmount)
	}
}

func TestLookup_RowAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table><tr><td>Utrecht</td><td>€ 98,00</td></tr></table></body></html>`))
	}))
	defer srv.Close()

	tax, err := newTestClient(srv.URL).Lookup(context.Background(), "12AB34")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if tax.Found {
		t.Error("expected not found")
	}
	if tax.MonthlyAmount != 0 {
		t.Errorf("expected 0, got %v", tax.MonthlyAmount)
	}
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Lookup(context.Background(), "12AB34"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestLookup_UnparseableCell(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><table><tr><td>Noord-Holland</td><td>n.v.t.</td></tr></table></body></html>`))
	}))
	defer srv.Close()

	tax, err := newTestClient(srv.URL).Lookup(context.Background(), "12AB34")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !tax.Found {
		t.Error("expected Found even with unparseable amount")
	}
	if tax.MonthlyAmount != 0 {
		t.Errorf("expected 0 for unparseable amount, got %v", tax.MonthlyAmount)
	}
}
