package handler

import (
	"net/http"
	"time"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

type listingJSON struct {
	Make         *string    `json:"make,omitempty"`
	Model        *string    `json:"model,omitempty"`
	Trim         *string    `json:"trim,omitempty"`
	Colour       *string    `json:"colour,omitempty"`
	BodyType     *string    `json:"body_type,omitempty"`
	Drivetrain   *string    `json:"drivetrain,omitempty"`
	Transmission *string    `json:"transmission,omitempty"`
	FuelType     *string    `json:"fuel_type,omitempty"`
	Year         *int       `json:"year,omitempty"`
	Kilometers   *int       `json:"kilometers,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Doors        *int       `json:"doors,omitempty"`
	Seats        *int       `json:"seats,omitempty"`
	DatePosted   *time.Time `json:"date_posted,omitempty"`
	LastSeen     *time.Time `json:"timestamp,omitempty"`
	// TimeOnMarketS is Time_On_Market in whole seconds.
	TimeOnMarketS *int64   `json:"time_on_market_s,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Sold          *bool    `json:"sold,omitempty"`
}

type paginationJSON struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type listingsResponse struct {
	Data       []listingJSON  `json:"data"`
	Pagination paginationJSON `json:"pagination"`
}

// GetListings handles GET /listings, the tabular view of the filtered data.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100)
// alongside the selection parameters.
func (s *Server) GetListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sels, err := parseSelections(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	params, err := parsePage(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	page, err := s.dashboards.Listings(r.Context(), sels, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]listingJSON, len(page.Listings))
	for i, l := range page.Listings {
		data[i] = listingToResponse(l)
	}
	writeJSON(w, http.StatusOK, listingsResponse{
		Data: data,
		Pagination: paginationJSON{
			Page:       page.Params.Page,
			Limit:      page.Params.Limit,
			Total:      page.Total,
			TotalPages: totalPages(page.Total, page.Params.Limit),
		},
	})
}

func listingToResponse(l domain.Listing) listingJSON {
	out := listingJSON{
		Make:         l.Make,
		Model:        l.Model,
		Trim:         l.Trim,
		Colour:       l.Colour,
		BodyType:     l.BodyType,
		Drivetrain:   l.Drivetrain,
		Transmission: l.Transmission,
		FuelType:     l.FuelType,
		Year:         l.Year,
		Kilometers:   l.Kilometers,
		Price:        l.Price,
		Doors:        l.Doors,
		Seats:        l.Seats,
		DatePosted:   l.DatePosted,
		LastSeen:     l.Timestamp,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Sold:         l.Sold,
	}
	if l.TimeOnMarket != nil {
		secs := int64(l.TimeOnMarket.Seconds())
		out.TimeOnMarketS = &secs
	}
	return out
}

func totalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
