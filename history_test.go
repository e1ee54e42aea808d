package yahoofinance_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"yahoofinance"
)

var (
	testStart = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
)

func TestGetHistoricalQuoteData_Download(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)

	page := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "finance.yahoo.com", req.URL.Host)
			require.Equal(t, "/quote/AAPL/history", req.URL.Path)
			require.Equal(t, "AAPL", req.URL.Query().Get("p"))
			return historyPageResponse(t), nil
		})
	data := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "query1.finance.yahoo.com", req.URL.Host)
			require.Equal(t, "/v7/finance/download/AAPL", req.URL.Path)
			q := req.URL.Query()
			require.Equal(t, "1714521600", q.Get("period1"))
			require.Equal(t, "1717113600", q.Get("period2"))
			require.Equal(t, "1d", q.Get("interval"))
			require.Equal(t, "history", q.Get("events"))
			// Crumb comes unescaped from the scraped page.
			require.Equal(t, "AbCd/Ef9.x", q.Get("crumb"))
			// The session cookie set by the page request rides along.
			require.Contains(t, req.Header.Get("Cookie"), "B=fixture-session")

			body := []byte("Date,Open,High,Low,Close,Adj Close,Volume\n" +
				"2024-05-03,172.30,173.00,171.90,172.80,172.50,47615400\n" +
				"2024-05-01,170.10,171.50,169.80,171.20,170.90,48201500\n" +
				"2024-05-02,null,null,null,null,null,null\n")
			return response(http.StatusOK, body), nil
		})
	gomock.InOrder(page, data)

	client := newTestClient(t, rt)

	rows, err := client.GetHistoricalQuoteData(context.Background(), "AAPL", yahoofinance.Interval1d, testStart, testEnd)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Upstream order is unspecified; the result is sorted ascending and
	// the all-null placeholder row is gone.
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), rows[1].Date)
	assert.InEpsilon(t, 170.9, rows[0].AdjClose, 1e-9)
}

func TestGetHistoricalQuoteData_Chart(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)

	page := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "finance.yahoo.com", req.URL.Host)
			return historyPageResponse(t), nil
		})
	data := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "query1.finance.yahoo.com", req.URL.Host)
			require.Equal(t, "/v8/finance/chart/AAPL", req.URL.Path)
			require.Equal(t, "5m", req.URL.Query().Get("interval"))
			require.Equal(t, "AbCd/Ef9.x", req.URL.Query().Get("crumb"))
			return fixtureResponse(t, "chart.json"), nil
		})
	gomock.InOrder(page, data)

	client := newTestClient(t, rt)

	rows, err := client.GetHistoricalQuoteData(context.Background(), "AAPL", yahoofinance.Interval5m, testStart, testEnd)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, time.Unix(1714521600, 0).UTC(), rows[0].Date)
	assert.Equal(t, time.Unix(1714694400, 0).UTC(), rows[1].Date)
}

func TestGetHistoricalQuoteData_InvalidInterval(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)
	rt.EXPECT().RoundTrip(gomock.Any()).Times(0)

	client := newTestClient(t, rt)

	_, err := client.GetHistoricalQuoteData(context.Background(), "AAPL", "2d", testStart, testEnd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, yahoofinance.ErrValidation))
	assert.Contains(t, err.Error(), "1wk")
	assert.Contains(t, err.Error(), "90m")
}

func TestGetHistoricalQuoteData_StartAfterEnd(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)
	rt.EXPECT().RoundTrip(gomock.Any()).Times(0)

	client := newTestClient(t, rt)

	_, err := client.GetHistoricalQuoteData(context.Background(), "AAPL", yahoofinance.Interval1d, testEnd, testStart)
	require.Error(t, err)
	assert.True(t, errors.Is(err, yahoofinance.ErrValidation))
}

func TestGetHistoricalQuoteData_CrumbMissing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)
	// Step one serves a page without the crumb; step two must never run.
	rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return response(http.StatusOK, []byte("<html><body>consent required</body></html>")), nil
		}).
		Times(1)

	client := newTestClient(t, rt)

	_, err := client.GetHistoricalQuoteData(context.Background(), "AAPL", yahoofinance.Interval1d, testStart, testEnd)
	require.Error(t, err)
	assert.True(t, errors.Is(err, yahoofinance.ErrDecode))
}

func TestGetHistoricalDividendData_Sorted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)

	page := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return historyPageResponse(t), nil
		})
	data := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			require.Equal(t, "div", q.Get("events"))
			require.Equal(t, "1mo", q.Get("interval"))

			body := []byte("Date,Dividends\n2024-05-10,0.25\n2023-11-10,0.24\n2024-02-09,0.24\n")
			return response(http.StatusOK, body), nil
		})
	gomock.InOrder(page, data)

	client := newTestClient(t, rt)

	rows, err := client.GetHistoricalDividendData(context.Background(), "AAPL",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), testEnd)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].Date.Before(rows[i-1].Date), "dividends must be sorted ascending")
	}
	assert.Equal(t, time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC), rows[0].Date)
}

func TestGetHistoricalSplitData_Sorted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	rt := NewMockRoundTripper(ctrl)

	page := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return historyPageResponse(t), nil
		})
	data := rt.EXPECT().
		RoundTrip(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "split", req.URL.Query().Get("events"))
			body := []byte("Date,Stock Splits\n2020-08-31,4:1\n2014-06-09,7:1\n")
			return response(http.StatusOK, body), nil
		})
	gomock.InOrder(page, data)

	client := newTestClient(t, rt)

	rows, err := client.GetHistoricalSplitData(context.Background(), "AAPL",
		time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC), testEnd)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, time.Date(2014, 6, 9, 0, 0, 0, 0, time.UTC), rows[0].Date)
	assert.Equal(t, "7:1", rows[0].Ratio)
	require.NotNil(t, rows[1].Numerator)
	assert.InEpsilon(t, 4.0, *rows[1].Numerator, 1e-9)
}
