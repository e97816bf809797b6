// Package timezone keeps the hotel's wall clock.
//
// Timestamps (created_at, checked_in_at, ...) are produced by Now and rendered
// by Format in the zone configured by APP_TIMEZONE. Calendar days such as
// check-in dates carry no zone: DateOf, Today and ParseDate normalize them to
// UTC midnight so two days compare with Before/After/Equal.
//
//	now := timezone.Now()
//	day, err := timezone.ParseDate("2025-05-14")
//	if timezone.Today().After(day) { ... }
package timezone
