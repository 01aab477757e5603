// Package shabbat_tools provides MCP (Model Context Protocol) tools for the
// hebcal.com Shabbat times API.
//
// hebcal_shabbat_times returns candle-lighting, parashah and havdalah
// times for a location as JSON or text. hebcal_shabbat_ics returns the
// same items as an iCalendar document. Both tools are read-only and accept
// the location as a geonameid, a zip code, a legacy city identifier or
// coordinates.
package shabbat_tools
