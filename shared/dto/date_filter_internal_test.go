package dto

import (
	"net/http"
	"testing"
	"time"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDateFilter_fromQuery(t *testing.T) {
	// Wednesday
	reference := time.Date(2025, 5, 14, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    map[string]string
		wantFrom time.Time
		wantTo   time.Time
		single   bool
		zero     bool
		wantErr  bool
	}{
		{name: "no filter", query: map[string]string{}, zero: true},
		{name: "single date", query: map[string]string{"date": "2025-06-04"}, wantFrom: day(2025, 6, 4), wantTo: day(2025, 6, 4), single: true},
		{name: "range", query: map[string]string{"from": "2025-05-14", "to": "2025-05-20"}, wantFrom: day(2025, 5, 14), wantTo: day(2025, 5, 20)},
		{name: "range without to", query: map[string]string{"from": "2025-05-14"}, wantFrom: day(2025, 5, 14), wantTo: day(2025, 5, 14)},
		{name: "today", query: map[string]string{"period": "today"}, wantFrom: day(2025, 5, 14), wantTo: day(2025, 5, 14), single: true},
		{name: "this week starts monday", query: map[string]string{"period": "this_week"}, wantFrom: day(2025, 5, 12), wantTo: day(2025, 5, 18)},
		{name: "this month", query: map[string]string{"period": "this_month"}, wantFrom: day(2025, 5, 1), wantTo: day(2025, 5, 31)},
		{name: "unknown period", query: map[string]string{"period": "fortnight"}, wantErr: true},
		{name: "bad date", query: map[string]string{"date": "14/05/2025"}, wantErr: true},
		{name: "to before from", query: map[string]string{"from": "2025-05-20", "to": "2025-05-14"}, wantErr: true},
		{name: "to without from", query: map[string]string{"to": "2025-05-20"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DateFilter{}

			err := f.fromQuery(func(key string) string { return tt.query[key] }, reference)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.zero, f.IsZero())
			assert.Equal(t, tt.single, f.IsSingleDate())

			if tt.zero {
				return
			}

			from, to := f.Window()
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestDateFilter_OverlapFilter(t *testing.T) {
	from, to := day(2025, 5, 14), day(2025, 5, 20)
	f := DateFilter{From: &from, To: &to}

	group := f.OverlapFilter("bookings", "check_in_date", "check_out_date")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.check_in_date <= :window_to AND bookings.check_out_date > :window_from)", where)
	assert.Equal(t, map[string]any{"window_to": to, "window_from": from}, args)

	empty := DateFilter{}.OverlapFilter("bookings", "check_in_date", "check_out_date")
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
