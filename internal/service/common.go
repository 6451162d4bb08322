package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemPayload is one line as sent by the client. Price is the line total,
// not a unit price; quantity is informational.
type ItemPayload struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// ItemResponse is one line as returned to the client
type ItemResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

const dateLayout = "2006-01-02"

// Bounds of the numeric(14,2) money and numeric(12,2) quantity columns.
var (
	moneyLimit    = decimal.New(1, 12)
	quantityLimit = decimal.New(1, 10)
)

// checkMoney rejects amounts the money columns would round or overflow.
func checkMoney(v decimal.Decimal, label string) error {
	return checkScale(v, moneyLimit, label)
}

func checkQuantity(v decimal.Decimal, label string) error {
	return checkScale(v, quantityLimit, label)
}

func checkScale(v, limit decimal.Decimal, label string) error {
	if !v.Equal(v.Truncate(2)) {
		return validationError("%s must have at most 2 decimal places", label)
	}
	if v.Abs().GreaterThanOrEqual(limit) {
		return validationError("%s must be less than %s", label, limit.String())
	}
	return nil
}

// parseID validates a path identifier
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validationError("invalid %s ID", what)
	}
	return id, nil
}

// parseDate accepts a calendar date (YYYY-MM-DD, local midnight) or an RFC 3339 timestamp.
// dateOnly reports whether the input carried no time of day.
func parseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
		return d, true, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, false, nil
	}
	return time.Time{}, false, validationError("invalid date %q: expected YYYY-MM-DD or RFC 3339", raw)
}

// dateOr parses raw or falls back to now when raw is empty.
func dateOr(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return now, nil
	}
	t, _, err := parseDate(raw)
	return t, err
}

// dateRange parses inclusive bounds. A date-only end bound covers the whole day.
func dateRange(start, end string) (time.Time, time.Time, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return time.Time{}, time.Time{}, validationError("Start date and end date are required")
	}
	from, _, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, dateOnly, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		to = endOfDay(to)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, validationError("end date must not be before start date")
	}
	return from, to, nil
}

// dayBounds returns [midnight, next midnight) of the local day containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}

func endOfDay(t time.Time) time.Time {
	_, next := dayBounds(t)
	return next.Add(-time.Nanosecond)
}

// newRecordNo builds a human-facing record number such as ORDER1718000000000A1B2C.
func newRecordNo(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:5])
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix
}
