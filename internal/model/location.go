package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// HoursNotAvailable is shown when either opening or closing time is missing.
const HoursNotAvailable = "Hours not available"

// Location is a restaurant location as returned by the location procedures.
// Opening and closing times are offsets from midnight.
type Location struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	ZipCode     string         `json:"zip_code"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	OpeningTime *time.Duration `json:"-"`
	ClosingTime *time.Duration `json:"-"`
	IsActive    bool           `json:"is_active"`
}

// FullAddress returns "Address, City, State Zip".
func (l Location) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", l.Address, l.City, l.State, l.ZipCode)
}

// FormattedHours returns "HH:MM - HH:MM", or HoursNotAvailable.
func (l Location) FormattedHours() string {
	if l.OpeningTime == nil || l.ClosingTime == nil {
		return HoursNotAvailable
	}
	return formatClock(*l.OpeningTime) + " - " + formatClock(*l.ClosingTime)
}

// formatClock renders a time of day. 24:00 wraps to 00:00.
func formatClock(d time.Duration) string {
	h := int(d/time.Hour) % 24
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// LocationsFromTable decodes rows into Locations. Columns are matched by
// name ignoring case and underscores, so both LocationId and location_id
// map to ID. Unknown columns are ignored.
func LocationsFromTable(t Table) ([]Location, error) {
	locations := make([]Location, 0, len(t.Rows))
	for i, row := range t.Rows {
		var loc Location
		for c, name := range t.Columns {
			if c >= len(row) {
				break
			}
			if err := loc.set(columnKey(name), row[c]); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i, name, err)
			}
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

func columnKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

func (l *Location) set(key string, v any) error {
	var err error
	switch key {
	case "locationid", "id":
		l.ID, err = asInt64(v)
	case "name":
		l.Name = asString(v)
	case "address":
		l.Address = asString(v)
	case "city":
		l.City = asString(v)
	case "state":
		l.State = asString(v)
	case "zipcode", "zip":
		l.ZipCode = asString(v)
	case "phone":
		l.Phone = asString(v)
	case "email":
		l.Email = asString(v)
	case "openingtime":
		l.OpeningTime, err = asClock(v)
	case "closingtime":
		l.ClosingTime, err = asClock(v)
	case "isactive":
		l.IsActive, err = asBool(v)
	}
	return err
}

func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func asInt64(v any) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int:
		return int64(val), nil
	case string:
		return strconv.ParseInt(val, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

func asBool(v any) (bool, error) {
	switch val := v.(type) {
	case nil:
		return false, nil
	case bool:
		return val, nil
	case string:
		return strconv.ParseBool(val)
	default:
		return false, fmt.Errorf("unsupported bool type %T", v)
	}
}

func asClock(v any) (*time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case nil:
		return nil, nil
	case pgtype.Time:
		if !val.Valid {
			return nil, nil
		}
		d = time.Duration(val.Microseconds) * time.Microsecond
	case time.Duration:
		d = val
	case time.Time:
		d = time.Duration(val.Hour())*time.Hour +
			time.Duration(val.Minute())*time.Minute +
			time.Duration(val.Second())*time.Second
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		parsed, err := parseClock(val)
		if err != nil {
			return nil, err
		}
		d = parsed
	default:
		return nil, fmt.Errorf("unsupported time type %T", v)
	}
	return &d, nil
}

func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}
