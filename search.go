package yahoofinance

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
)

// Search queries the symbol suggestion endpoint for a free-text term.
// No crumb or cookies are involved.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	query := url.Values{}
	query.Set("query", term)
	query.Set("region", c.searchRegion)
	query.Set("lang", c.searchLang)

	body, err := c.get(ctx, c.plain, fmt.Sprintf("%s/aq/autoc?%s", c.searchBaseURL, query.Encode()))
	if err != nil {
		return nil, err
	}
	return transformSearchResult(body)
}

// transformSearchResult decodes the suggestion payload. The accessor path
// ResultSet.Result is fixed by the upstream contract.
func transformSearchResult(body []byte) ([]SearchResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decoding search response: not valid json: %w", ErrDecode)
	}
	list := gjson.GetBytes(body, "ResultSet.Result")
	if !list.Exists() || !list.IsArray() {
		return nil, fmt.Errorf("search response missing ResultSet.Result: %w", ErrDecode)
	}

	var results []SearchResult
	for _, r := range list.Array() {
		results = append(results, SearchResult{
			Symbol:          r.Get("symbol").String(),
			Name:            r.Get("name").String(),
			Exchange:        r.Get("exch").String(),
			ExchangeDisplay: r.Get("exchDisp").String(),
			Type:            r.Get("type").String(),
			TypeDisplay:     r.Get("typeDisp").String(),
		})
	}
	return results, nil
}
