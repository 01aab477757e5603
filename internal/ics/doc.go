// Package ics renders Shabbat results as iCalendar (RFC 5545) data.
//
// Timed items such as candle lighting and havdalah become zero-length
// events in UTC; date-only items such as the weekly parashah become
// all-day events. Event UIDs are name-based UUIDs derived from the
// location, the date and the item title, so re-exporting the same week
// produces the same UIDs and calendar clients update events in place
// instead of duplicating them.
package ics
