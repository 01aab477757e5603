// Package config loads the optional YAML profile of the hebcal CLI.
//
// The profile stores a default location, display preferences and the
// settings of the ICS export, so that the common invocation needs no
// flags:
//
//	location:
//	  zip: "90210"
//	preferences:
//	  havdalah: 50
//	  transliteration: sephardic
//	  leyning: "off"
//	export:
//	  path: ~/shabbat.ics
//	  schedule: "0 6 * * 5"
//
// The profile is read from --config or $XDG_CONFIG_HOME/hebcal/config.yaml.
// A missing file is not an error. Command-line flags are applied after the
// profile and override it.
package config
