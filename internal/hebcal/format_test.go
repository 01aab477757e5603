package hebcal

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShabbatText(t *testing.T) {
	var s Shabbat
	require.NoError(t, json.Unmarshal(loadFixture(t, "shabbat_zip.json"), &s))

	text := s.Text()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	assert.Equal(t, "Hebcal Beverly Hills March 2024", lines[0])
	assert.Equal(t, "Beverly Hills, CA 90210 (America/Los_Angeles)", lines[1])
	assert.Contains(t, text, "Fri Mar 8 2024   Candle lighting: 5:39pm")
	assert.Contains(t, text, "Sat Mar 9 2024   Havdalah (50 min): 7:24pm")
	assert.Contains(t, text, "Shabbat before Rosh Chodesh Adar")
	// the candle-lighting memo repeats the parashah and is not rendered
	assert.Equal(t, 1, strings.Count(text, "Parashat Vayakhel"))
}

func TestShabbatTextNoItems(t *testing.T) {
	s := Shabbat{Location: Location{Title: "Jerusalem", TZID: "Asia/Jerusalem"}, Items: []Item{}}
	assert.Equal(t, "Jerusalem (Asia/Jerusalem)\n\nNo items.\n", s.Text())
}
