package hebcal

import (
	"fmt"
	"strings"
)

const itemDateLayout = "Mon Jan 2 2006"

// Text renders a result for a terminal: a header with the resolved
// location followed by one line per item.
func (s *Shabbat) Text() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s (%s)\n", s.Location.Title, s.Location.TZID)

	if len(s.Items) == 0 {
		b.WriteString("\nNo items.\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, item := range s.Items {
		fmt.Fprintf(&b, "%-15s  %s\n", item.Date.Format(itemDateLayout), item.Title)
		if item.Memo != "" && item.Category != CategoryCandles {
			fmt.Fprintf(&b, "%-15s  %s\n", "", item.Memo)
		}
	}
	return b.String()
}
