package sakhanews

import (
	"fmt"
	"time"
)

// dateLayout is the site's timestamp shape: ISO-like date-time with a
// numeric UTC offset.
const dateLayout = "2006-01-02T15:04:05-07:00"

// siteUTCOffset is the fixed offset baked into every timestamp the site
// publishes (Yakutsk, UTC+9). Anything else is a format violation, not a
// timezone to be inferred.
const siteUTCOffset = 9 * 60 * 60

// FormatError reports a timestamp string that does not match the site's
// fixed pattern.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("date %q does not match format %s with +09:00 offset", e.Input, dateLayout)
}

// NormalizeDate parses a site timestamp into a time value. The input must
// match the fixed pattern exactly, fixed +09:00 offset included; there is no
// partial or lenient parsing. On mismatch it returns a *FormatError.
func NormalizeDate(text string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, &FormatError{Input: text}
	}

	if _, offset := parsed.Zone(); offset != siteUTCOffset {
		return time.Time{}, &FormatError{Input: text}
	}

	return parsed, nil
}
