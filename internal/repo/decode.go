package repo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// missingSentinels maps raw store values to the missing marker (nil), for
// every column regardless of kind. SQL NULL arrives as a nil interface and is
// always missing; these are the textual stand-ins the scraper wrote instead.
//
//	NULL    -> missing
//	"null"  -> missing
var missingSentinels = map[string]struct{}{
	"null": {},
}

// isMissing reports whether a raw driver value is a missing-value sentinel.
func isMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		_, ok := missingSentinels[t]
		return ok
	case []byte:
		_, ok := missingSentinels[string(t)]
		return ok
	}
	return false
}

// decodeListing converts one raw row, aligned with cols, into a Listing.
// Sentinels become nil, epoch columns become UTC times, Date_Posted_S keeps
// the raw Date_Posted seconds and Time_On_Market is Timestamp - Date_Posted.
func decodeListing(cols []domain.Column, values []any) (domain.Listing, error) {
	if len(values) != len(cols) {
		return domain.Listing{}, fmt.Errorf("%w: row has %d values for %d columns", domain.ErrQuery, len(values), len(cols))
	}

	var (
		l                      domain.Listing
		postedRaw, lastSeenRaw *int64
	)
	for i, c := range cols {
		raw := values[i]
		if isMissing(raw) {
			continue
		}
		kind, ok := c.Kind()
		if !ok {
			return domain.Listing{}, fmt.Errorf("%w: unknown column %q", domain.ErrQuery, c)
		}
		var err error
		switch kind {
		case domain.KindText:
			s := asText(raw)
			setText(&l, c, &s)
		case domain.KindInt:
			var f float64
			if f, err = asFloat(raw); err == nil {
				n := int(f)
				setInt(&l, c, &n)
			}
		case domain.KindFloat:
			var f float64
			if f, err = asFloat(raw); err == nil {
				setFloat(&l, c, &f)
			}
		case domain.KindEpoch:
			var secs int64
			if secs, err = asEpoch(raw); err == nil {
				if c == domain.ColumnDatePosted {
					postedRaw = &secs
				} else {
					lastSeenRaw = &secs
				}
			}
		case domain.KindBool:
			var b bool
			if b, err = asBool(raw); err == nil {
				l.Sold = &b
			}
		}
		if err != nil {
			return domain.Listing{}, fmt.Errorf("%w: column %s: %v", domain.ErrQuery, c, err)
		}
	}

	if postedRaw != nil {
		s := *postedRaw
		l.DatePostedS = &s
		t := time.Unix(s, 0).UTC()
		l.DatePosted = &t
	}
	if lastSeenRaw != nil {
		t := time.Unix(*lastSeenRaw, 0).UTC()
		l.Timestamp = &t
	}
	if l.DatePosted != nil && l.Timestamp != nil {
		d := l.Timestamp.Sub(*l.DatePosted)
		l.TimeOnMarket = &d
	}
	return l, nil
}

func setText(l *domain.Listing, c domain.Column, v *string) {
	switch c {
	case domain.ColumnMake:
		l.Make = v
	case domain.ColumnModel:
		l.Model = v
	case domain.ColumnTrim:
		l.Trim = v
	case domain.ColumnColour:
		l.Colour = v
	case domain.ColumnBodyType:
		l.BodyType = v
	case domain.ColumnDrivetrain:
		l.Drivetrain = v
	case domain.ColumnTransmission:
		l.Transmission = v
	case domain.ColumnFuelType:
		l.FuelType = v
	}
}

func setInt(l *domain.Listing, c domain.Column, v *int) {
	switch c {
	case domain.ColumnYear:
		l.Year = v
	case domain.ColumnKilometers:
		l.Kilometers = v
	case domain.ColumnDoors:
		l.Doors = v
	case domain.ColumnSeats:
		l.Seats = v
	}
}

func setFloat(l *domain.Listing, c domain.Column, v *float64) {
	switch c {
	case domain.ColumnPrice:
		l.Price = v
	case domain.ColumnLatitude:
		l.Latitude = v
	case domain.ColumnLongitude:
		l.Longitude = v
	}
}

func asText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	}
	return fmt.Sprint(v)
}

// asFloat accepts the numeric shapes pgx and go-sql-driver hand back:
// native ints and floats, pgtype.Numeric, and textual bytes.
func asFloat(v any) (float64, error) {
	switch t := v.(type) {
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case int:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil {
			return 0, err
		}
		if !f.Valid {
			return 0, fmt.Errorf("invalid numeric value")
		}
		return f.Float64, nil
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("unsupported numeric type %T", v)
}

func asEpoch(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case time.Time:
		return t.Unix(), nil
	case []byte:
		if n, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64); err == nil {
			return n, nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return n, nil
		}
	}
	f, err := asFloat(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int64:
		return t != 0, nil
	case int32:
		return t != 0, nil
	case []byte:
		return strconv.ParseBool(strings.TrimSpace(string(t)))
	case string:
		return strconv.ParseBool(strings.TrimSpace(t))
	}
	return false, fmt.Errorf("unsupported boolean type %T", v)
}
