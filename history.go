package yahoofinance

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Event filters understood by the legacy download endpoint.
const (
	eventsHistory   = "history"
	eventsDividends = "div"
	eventsSplits    = "split"
)

// GetHistoricalQuoteData fetches an OHLCV series for symbol between start
// and end. Intraday intervals are served by the chart endpoint, daily and
// coarser intervals by the legacy download endpoint; anything else is a
// validation error. The series is sorted ascending by date.
func (c *Client) GetHistoricalQuoteData(ctx context.Context, symbol string, interval Interval, start, end time.Time) ([]HistoricalData, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	var (
		rows []HistoricalData
		err  error
	)
	switch classifyInterval(interval) {
	case intervalIntraday:
		var body []byte
		body, err = c.fetchAuthenticated(ctx, chartURL, symbol, interval, start, end, eventsHistory)
		if err == nil {
			rows, err = transformChartResult(body)
		}
	case intervalDaily:
		var body []byte
		body, err = c.fetchAuthenticated(ctx, downloadURL, symbol, interval, start, end, eventsHistory)
		if err == nil {
			rows, err = transformHistoricalDataResult(body)
		}
	default:
		return nil, errUnsupportedInterval(interval)
	}
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

// GetHistoricalDividendData fetches dividend events between start and end,
// sorted ascending by date.
func (c *Client) GetHistoricalDividendData(ctx context.Context, symbol string, start, end time.Time) ([]DividendData, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	body, err := c.fetchAuthenticated(ctx, downloadURL, symbol, Interval1mo, start, end, eventsDividends)
	if err != nil {
		return nil, err
	}
	rows, err := transformDividendDataResult(body)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

// GetHistoricalSplitData fetches stock split events between start and end,
// sorted ascending by date.
func (c *Client) GetHistoricalSplitData(ctx context.Context, symbol string, start, end time.Time) ([]SplitData, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	body, err := c.fetchAuthenticated(ctx, downloadURL, symbol, Interval1mo, start, end, eventsSplits)
	if err != nil {
		return nil, err
	}
	rows, err := transformSplitDataResult(body)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func validateRange(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s: %w",
			start.Format(dayFormat), end.Format(dayFormat), ErrValidation)
	}
	return nil
}

// endpointURL builds the data URL for the second step of an authenticated
// fetch.
type endpointURL func(baseURL, symbol, query string) string

func chartURL(baseURL, symbol, query string) string {
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", baseURL, url.PathEscape(symbol), query)
}

func downloadURL(baseURL, symbol, query string) string {
	return fmt.Sprintf("%s/v7/finance/download/%s?%s", baseURL, url.PathEscape(symbol), query)
}

// fetchAuthenticated runs the two-step flow shared by all historical
// paths: prime a fresh cookie session against the quote page, scrape the
// crumb out of it, then hit the data endpoint with crumb and cookies
// attached. A failed crumb extraction aborts before the second request.
func (c *Client) fetchAuthenticated(ctx context.Context, endpoint endpointURL, symbol string, interval Interval, start, end time.Time, events string) ([]byte, error) {
	session, err := c.newSession()
	if err != nil {
		return nil, err
	}

	page := fmt.Sprintf("%s/quote/%s/history?p=%s",
		c.pageBaseURL, url.PathEscape(symbol), url.QueryEscape(symbol))
	html, err := c.get(ctx, session, page)
	if err != nil {
		return nil, err
	}
	crumb, err := extractCrumb(html)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("period1", strconv.FormatInt(start.Unix(), 10))
	query.Set("period2", strconv.FormatInt(end.Unix(), 10))
	query.Set("interval", string(interval))
	query.Set("events", events)
	query.Set("crumb", crumb)

	return c.get(ctx, session, endpoint(c.queryBaseURL, symbol, query.Encode()))
}

// chartResponse is the typed shape of the chart endpoint payload. Nullable
// positions are pointers so that missing data stays distinguishable from
// zero while decoding.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []*int64 `json:"timestamp"`
	Indicators struct {
		Quote    []chartQuote    `json:"quote"`
		AdjClose []chartAdjClose `json:"adjclose"`
	} `json:"indicators"`
}

type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

type chartAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

// transformChartResult decodes a chart payload into rows. A missing
// chart.result or a non-empty chart.error is fatal; rows with any null
// value are dropped whole.
func transformChartResult(body []byte) ([]HistoricalData, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding chart response: %v: %w", err, ErrDecode)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s: %w",
			resp.Chart.Error.Code, resp.Chart.Error.Description, ErrDecode)
	}
	if resp.Chart.Result == nil {
		return nil, fmt.Errorf("chart response missing chart.result: %w", ErrDecode)
	}

	var rows []HistoricalData
	for _, result := range resp.Chart.Result {
		if len(result.Indicators.Quote) == 0 {
			return nil, fmt.Errorf("chart result missing indicators.quote: %w", ErrDecode)
		}
		quote := result.Indicators.Quote[0]
		var adjClose []*float64
		if len(result.Indicators.AdjClose) > 0 {
			adjClose = result.Indicators.AdjClose[0].AdjClose
		}

		for i, ts := range result.Timestamp {
			row := [7]any{
				deref(ts),
				deref(at(quote.Open, i)),
				deref(at(quote.High, i)),
				deref(at(quote.Low, i)),
				deref(at(quote.Close, i)),
				// The adjclose block is optional; fall back to the raw close.
				deref(firstNonNil(at(adjClose, i), at(quote.Close, i))),
				deref(at(quote.Volume, i)),
			}
			data, ok, err := createHistoricalData(row)
			if err != nil {
				return nil, err
			}
			if ok {
				rows = append(rows, data)
			}
		}
	}
	return rows, nil
}

// createHistoricalData builds one row from the fixed 7-tuple
// [timestamp, open, high, low, close, adjclose, volume]. It reports
// ok=false when any position is null; such rows are placeholders for
// intervals without trading and are dropped silently.
func createHistoricalData(row [7]any) (HistoricalData, bool, error) {
	for _, v := range row {
		if v == nil {
			return HistoricalData{}, false, nil
		}
	}

	date, err := mapDate(row[0])
	if err != nil {
		return HistoricalData{}, false, fmt.Errorf("historical row date: %v: %w", err, ErrDecode)
	}
	values := make([]*float64, 4)
	for i, key := range []int{1, 2, 3, 4} {
		v, err := mapFloat(row[key])
		if err != nil {
			return HistoricalData{}, false, fmt.Errorf("historical row value %d: %v: %w", key, err, ErrDecode)
		}
		values[i] = v
	}
	adjClose, err := mapFloat(row[5])
	if err != nil {
		return HistoricalData{}, false, fmt.Errorf("historical row adjclose: %v: %w", err, ErrDecode)
	}
	volume, err := mapInt(row[6])
	if err != nil {
		return HistoricalData{}, false, fmt.Errorf("historical row volume: %v: %w", err, ErrDecode)
	}

	// Coercion can still produce nil from empty strings on the CSV path.
	if date == nil || adjClose == nil || volume == nil ||
		values[0] == nil || values[1] == nil || values[2] == nil || values[3] == nil {
		return HistoricalData{}, false, nil
	}

	return HistoricalData{
		Date:     *date,
		Open:     *values[0],
		High:     *values[1],
		Low:      *values[2],
		Close:    *values[3],
		AdjClose: *adjClose,
		Volume:   *volume,
	}, true, nil
}

// transformHistoricalDataResult decodes the legacy tabular body
// (Date,Open,High,Low,Close,Adj Close,Volume). Rows with null values are
// dropped.
func transformHistoricalDataResult(body []byte) ([]HistoricalData, error) {
	records, err := readTabular(body, 7)
	if err != nil {
		return nil, err
	}

	var rows []HistoricalData
	for _, rec := range records {
		row := [7]any{
			tabularValue(rec[0]), tabularValue(rec[1]), tabularValue(rec[2]), tabularValue(rec[3]),
			tabularValue(rec[4]), tabularValue(rec[5]), tabularValue(rec[6]),
		}
		data, ok, err := createHistoricalData(row)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, data)
		}
	}
	return rows, nil
}

// transformDividendDataResult decodes the 2-column (Date,Dividends) body.
// The amount stays nil when the upstream reports "null".
func transformDividendDataResult(body []byte) ([]DividendData, error) {
	records, err := readTabular(body, 2)
	if err != nil {
		return nil, err
	}

	var rows []DividendData
	for _, rec := range records {
		date, err := mapDate(tabularValue(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("dividend row date: %v: %w", err, ErrDecode)
		}
		if date == nil {
			continue
		}
		amount, err := mapFloat(tabularValue(rec[1]))
		if err != nil {
			return nil, fmt.Errorf("dividend row amount: %v: %w", err, ErrDecode)
		}
		rows = append(rows, DividendData{Date: *date, Dividend: amount})
	}
	return rows, nil
}

// transformSplitDataResult decodes the 2-column (Date,Stock Splits) body.
func transformSplitDataResult(body []byte) ([]SplitData, error) {
	records, err := readTabular(body, 2)
	if err != nil {
		return nil, err
	}

	var rows []SplitData
	for _, rec := range records {
		date, err := mapDate(tabularValue(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("split row date: %v: %w", err, ErrDecode)
		}
		if date == nil {
			continue
		}
		s := SplitData{Date: *date, Ratio: rec[1]}
		s.Numerator, s.Denominator = parseSplitRatio(rec[1])
		rows = append(rows, s)
	}
	return rows, nil
}

// parseSplitRatio splits a "4:1" or "4/1" ratio into its parts. An
// unrecognized spelling leaves both parts nil; the raw string is kept on
// the record either way.
func parseSplitRatio(ratio string) (num, den *float64) {
	sep := strings.IndexAny(ratio, ":/")
	if sep < 0 {
		return nil, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(ratio[:sep]), 64)
	if err != nil {
		return nil, nil
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(ratio[sep+1:]), 64)
	if err != nil {
		return nil, nil
	}
	return &n, &d
}

// readTabular parses a CSV body, checks the header, and returns the data
// records. The header row is identified by its leading "Date" column.
func readTabular(body []byte, columns int) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = columns
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding tabular response: %v: %w", err, ErrDecode)
	}
	if len(records) == 0 || records[0][0] != "Date" {
		return nil, fmt.Errorf("tabular response missing header row: %w", ErrDecode)
	}
	return records[1:], nil
}

// tabularValue normalizes the download endpoint's "null" placeholder to a
// real null before coercion.
func tabularValue(s string) any {
	if s == "null" {
		return nil
	}
	return s
}

func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

func firstNonNil[T any](vs ...*T) *T {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
