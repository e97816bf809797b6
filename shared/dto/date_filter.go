package dto

import (
	"fmt"
	"net/http"
	"time"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jinzhu/now"
)

const (
	PeriodToday     = "today"
	PeriodThisWeek  = "this_week"
	PeriodThisMonth = "this_month"
)

var weekConfig = &now.Config{WeekStartDay: time.Monday}

// DateFilter narrows bookings to a single day or an inclusive range of days.
// The zero value matches everything.
type DateFilter struct {
	Date *time.Time `json:"date,omitempty"`
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// FromRequest reads date, from/to or period. A range without to covers the
// single day from.
func (f *DateFilter) FromRequest(r *http.Request) error {
	return f.fromQuery(r.URL.Query().Get, timezone.Now())
}

func (f *DateFilter) fromQuery(get func(string) string, reference time.Time) error {
	if period := get(constant.RequestParamPeriod); period != constant.Empty {
		return f.fromPeriod(period, reference)
	}

	if date := get(constant.RequestParamDate); date != constant.Empty {
		d, err := parseDay(constant.RequestParamDate, date)
		if err != nil {
			return err
		}

		f.Date = &d

		return nil
	}

	from := get(constant.RequestParamFrom)
	if from == constant.Empty {
		if get(constant.RequestParamTo) != constant.Empty {
			return failure.BadRequestFromString("from is required when to is set")
		}

		return nil
	}

	start, err := parseDay(constant.RequestParamFrom, from)
	if err != nil {
		return err
	}

	end := start

	if to := get(constant.RequestParamTo); to != constant.Empty {
		if end, err = parseDay(constant.RequestParamTo, to); err != nil {
			return err
		}
	}

	if end.Before(start) {
		return failure.BadRequestFromString("to must not be before from")
	}

	f.From, f.To = &start, &end

	return nil
}

func (f *DateFilter) fromPeriod(period string, reference time.Time) error {
	n := weekConfig.With(reference)

	switch period {
	case PeriodToday:
		d := timezone.DateOf(reference)
		f.Date = &d
	case PeriodThisWeek:
		start, end := timezone.DateOf(n.BeginningOfWeek()), timezone.DateOf(n.EndOfWeek())
		f.From, f.To = &start, &end
	case PeriodThisMonth:
		start, end := timezone.DateOf(n.BeginningOfMonth()), timezone.DateOf(n.EndOfMonth())
		f.From, f.To = &start, &end
	default:
		return failure.BadRequestFromString(fmt.Sprintf("period must be one of %s, %s, %s", PeriodToday, PeriodThisWeek, PeriodThisMonth))
	}

	return nil
}

func parseDay(name, value string) (time.Time, error) {
	d, err := timezone.ParseDate(value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(name + " must be a date in YYYY-MM-DD format")
	}

	return d, nil
}

func (f DateFilter) IsZero() bool {
	return f.Date == nil && f.From == nil
}

func (f DateFilter) IsSingleDate() bool {
	return f.Date != nil
}

// Window returns the inclusive first and last day covered by the filter.
func (f DateFilter) Window() (from, to time.Time) {
	if f.Date != nil {
		return *f.Date, *f.Date
	}

	if f.From == nil {
		return time.Time{}, time.Time{}
	}

	if f.To == nil {
		return *f.From, *f.From
	}

	return *f.From, *f.To
}

// OverlapFilter matches stays [checkIn, checkOut) that intersect the window.
// It is empty for the zero filter.
func (f DateFilter) OverlapFilter(table, checkInField, checkOutField string) FilterGroup {
	if f.IsZero() {
		return FilterGroup{}
	}

	from, to := f.Window()

	return FilterGroup{
		Filters: []any{
			Filter{ArgName: "window_to", Field: checkInField, Value: to, Operator: FilterOperatorLessEq, Table: table},
			Filter{ArgName: "window_from", Field: checkOutField, Value: from, Operator: FilterOperatorGreater, Table: table},
		},
	}
}
