// Package registry fetches vehicle records from the national vehicle
// registry's open-data API. A record is assembled from two datasets: the
// base attributes and the fuel type, queried independently and merged.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/models"
)

// ErrNotFound means the registry has no base record for the plate.
var ErrNotFound = errors.New("no registry record for plate")

const displayDateLayout = "02-01-2006"

type Client struct {
	baseURL string
	fuelURL string
	http    *http.Client
}

func NewClient(cfg config.RegistryConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		fuelURL: cfg.FuelURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// baseRecord mirrors the registry's base dataset. Every field comes back
// as a string, numeric or not.
type baseRecord struct {
	Kenteken             string `json:"kenteken"`
	Merk                 string `json:"merk"`
	Handelsbenaming      string `json:"handelsbenaming"`
	Catalogusprijs       string `json:"catalogusprijs"`
	MassaRijklaar        string `json:"massa_rijklaar"`
	EersteKleur          string `json:"eerste_kleur"`
	DatumEersteToelating string `json:"datum_eerste_toelating"`
	VervaldatumAPK       string `json:"vervaldatum_apk"`
}

// fuelRecord mirrors the registry's fuel dataset.
type fuelRecord struct {
	BrandstofOmschrijving    string `json:"brandstof_omschrijving"`
	CO2UitstootGecombineerd  string `json:"co2_uitstoot_gecombineerd"`
	VerbruikGecombineerd     string `json:"brandstofverbruik_gecombineerd"`
	VerbruikGecombineerdWLTP string `json:"brandstof_verbruik_gecombineerd_wltp"`
	ElektrischVerbruikWLTP   string `json:"elektrisch_verbruik_enkel_elektrisch_wltp"`
}

// Fetch retrieves and normalizes the record for one plate. The base
// dataset is authoritative: no base row means ErrNotFound. A failing fuel
// query is non-fatal and leaves the fuel type unknown.
func (c *Client) Fetch(ctx context.Context, plate string) (*models.VehicleRecord, error) {
	plate = models.NormalizePlate(plate)
	if plate == "" {
		return nil, ErrNotFound
	}

	var base []baseRecord
	if err := c.query(ctx, c.baseURL, plate, &base); err != nil {
		return nil, fmt.Errorf("registry base query: %w", err)
	}
	if len(base) == 0 {
		return nil, ErrNotFound
	}

	rec := &models.VehicleRecord{
		Plate:            plate,
		Brand:            base[0].Merk,
		Model:            base[0].Handelsbenaming,
		ListPrice:        parseFloat(base[0].Catalogusprijs),
		CurbWeightKG:     parseFloat(base[0].MassaRijklaar),
		Color:            base[0].EersteKleur,
		FuelType:         models.FuelTypeUnknown,
		FirstAdmission:   formatDate(base[0].DatumEersteToelating),
		InspectionExpiry: formatDate(base[0].VervaldatumAPK),
		BuildYear:        buildYear(base[0].DatumEersteToelating),
		FetchedAt:        time.Now(),
	}

	var fuel []fuelRecord
	if err := c.query(ctx, c.fuelURL, plate, &fuel); err != nil {
		log.WithField("plate", plate).WithError(err).Warn("fuel dataset query failed, fuel type unknown")
	} else if len(fuel) > 0 {
		// Fuel-dataset fields win over anything the base row carried.
		if fuel[0].BrandstofOmschrijving != "" {
			rec.FuelType = fuel[0].BrandstofOmschrijving
		}
		rec.CO2GramsPerKM = parseFloat(fuel[0].CO2UitstootGecombineerd)
		rec.WLTPFuelCombined = parseFloat(fuel[0].VerbruikGecombineerdWLTP)
		rec.WLTPElectric = parseFloat(fuel[0].ElektrischVerbruikWLTP)
		rec.LegacyFuelCombined = parseFloat(fuel[0].VerbruikGecombineerd)
	}

	return rec, nil
}

func (c *Client) query(ctx context.Context, endpoint, plate string, out interface{}) error {
	u := fmt.Sprintf("%s?kenteken=%s", endpoint, url.QueryEscape(plate))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// parseFloat coerces a registry string field to a number, accepting a
// comma decimal separator. Unparseable or empty values become nil.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// formatDate rewrites the registry's YYYYMMDD dates to the display
// format. Values that don't parse are passed through unchanged.
func formatDate(s string) string {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

func buildYear(s string) int {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return 0
	}
	return t.Year()
}
