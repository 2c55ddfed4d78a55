package domain

import (
	"time"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// DateTime is a UTC instant.
type DateTime struct {
	value time.Time
}

func Now() DateTime {
	return DateTime{value: time.Now().UTC()}
}

func DateTimeFrom(t time.Time) DateTime {
	return DateTime{value: t.UTC()}
}

func (d DateTime) Time() time.Time {
	return d.value
}

func (d DateTime) IsZero() bool {
	return d.value.IsZero()
}

func (d DateTime) String() string {
	return d.value.Format(dateTimeLayout)
}

// Date is a calendar day without a time component.
type Date struct {
	value time.Time
}

func Today() Date {
	now := time.Now().UTC()
	return Date{value: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate reads a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, apperrors.NewValidation("invalid-date", "Invalid date").
			WithArgs(map[string]string{"date": raw}).
			WithCause(err)
	}
	return Date{value: parsed}, nil
}

func (d Date) Time() time.Time {
	return d.value
}

func (d Date) String() string {
	return d.value.Format(dateLayout)
}
