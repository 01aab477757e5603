// Package hebcal is a typed client for the hebcal.com REST API.
//
// The Shabbat times API returns candle-lighting, havdalah and parashat
// items for one week at one location. Requests are assembled with a
// chained builder and sent exactly once per Send:
//
//	client, err := hebcal.NewClient(hebcal.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	result, err := client.Shabbat().
//		Zip("90210").
//		Havdalah(50).
//		Send(ctx)
//
// # Location
//
// A request names its location in one of four ways: a GeoNames.org id, a
// US zip code, a legacy city identifier or coordinates (latitude,
// longitude and tzid). The most recently assigned location field selects
// the method and only that method's fields are sent, so
//
//	client.Shabbat().Zip("90210").Latitude(31.77).Longitude(35.21)
//
// is a coordinates request and the zip is not transmitted.
//
// # Errors
//
// Send returns one of *TransportError, *ServiceError, *DecodeError or
// *UnknownError. Kind classifies any of them:
//
//	if hebcal.Kind(err) == hebcal.KindTransport {
//		// retry
//	}
package hebcal
