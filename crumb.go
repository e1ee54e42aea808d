package yahoofinance

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// The crumb is embedded in a JSON blob inside the quote page's inline
// bootstrap script. The surrounding page layout changes frequently; only
// this snippet has been stable across redesigns. If extraction starts
// failing with ErrDecode, this pattern is the place to look.
var crumbPattern = regexp.MustCompile(`"CrumbStore":\{"crumb":"(.*?)"\}`)

// extractCrumb scans the quote page HTML for the session crumb that must
// accompany historical-data requests.
func extractCrumb(html []byte) (string, error) {
	m := crumbPattern.FindSubmatch(html)
	if m == nil {
		return "", fmt.Errorf("crumb not found in page: %w", ErrDecode)
	}
	// The crumb is a JSON string fragment and may contain escapes
	// such as /. Decode it the same way a browser would.
	var crumb string
	if err := json.Unmarshal([]byte(`"`+string(m[1])+`"`), &crumb); err != nil {
		return "", fmt.Errorf("crumb %q not decodable: %w", m[1], ErrDecode)
	}
	if crumb == "" {
		return "", fmt.Errorf("crumb empty in page: %w", ErrDecode)
	}
	return crumb, nil
}
