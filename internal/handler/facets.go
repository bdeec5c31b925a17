package handler

import (
	"net/http"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

type rangeDefaultsJSON struct {
	YearMin       float64 `json:"year_min"`
	YearMax       float64 `json:"year_max"`
	KilometersMin float64 `json:"km_min"`
	KilometersMax float64 `json:"km_max"`
	PriceMin      float64 `json:"price_min"`
	PriceMax      float64 `json:"price_max"`
}

type facetsResponse struct {
	BodyTypes     []string `json:"body_types"`
	Makes         []string `json:"makes"`
	Models        []string `json:"models,omitempty"`
	Drivetrains   []string `json:"drivetrains"`
	Transmissions []string `json:"transmissions"`
	FuelTypes     []string `json:"fuel_types"`
	// ModelsOffered is false unless exactly one make was supplied.
	ModelsOffered bool              `json:"models_offered"`
	Defaults      rangeDefaultsJSON `json:"defaults"`
}

// GetFacets handles GET /facets.
// It lists the options for every multi-select filter and the defaults for
// the range inputs. Pass ?make= once to also get that make's models.
func (s *Server) GetFacets(w http.ResponseWriter, r *http.Request) {
	makes, err := bindStrings(r.URL.Query(), "make")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	f, err := s.dashboards.Facets(r.Context(), makes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, facetsToResponse(f))
}

func facetsToResponse(f domain.Facets) facetsResponse {
	return facetsResponse{
		BodyTypes:     nonNil(f.BodyTypes),
		Makes:         nonNil(f.Makes),
		Models:        f.Models,
		Drivetrains:   nonNil(f.Drivetrains),
		Transmissions: nonNil(f.Transmissions),
		FuelTypes:     nonNil(f.FuelTypes),
		ModelsOffered: f.Models != nil,
		Defaults: rangeDefaultsJSON{
			YearMin:       f.Defaults.YearMin,
			YearMax:       f.Defaults.YearMax,
			KilometersMin: f.Defaults.KilometersMin,
			KilometersMax: f.Defaults.KilometersMax,
			PriceMin:      f.Defaults.PriceMin,
			PriceMax:      f.Defaults.PriceMax,
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
