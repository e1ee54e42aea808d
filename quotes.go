package yahoofinance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// currencySuffix marks a synthetic currency-pair symbol, e.g. "USDGBP=X".
const currencySuffix = "=X"

// GetQuotes fetches current quotes for the given symbols in one request.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	query := url.Values{}
	query.Set("symbols", strings.Join(symbols, ","))

	body, err := c.get(ctx, c.plain, fmt.Sprintf("%s/v7/finance/quote?%s", c.queryBaseURL, query.Encode()))
	if err != nil {
		return nil, err
	}
	return transformQuotes(body)
}

// GetQuote fetches the quote for a single symbol. It returns nil when the
// upstream knows nothing about the symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	quotes, err := c.GetQuotes(ctx, []string{symbol})
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, nil
	}
	return &quotes[0], nil
}

// CurrencyPairSymbol builds the pseudo-symbol the upstream uses for an
// exchange rate, e.g. ("USD","GBP") -> "USDGBP=X".
func CurrencyPairSymbol(from, to string) string {
	return strings.ToUpper(from) + strings.ToUpper(to) + currencySuffix
}

// GetExchangeRate fetches the exchange rate between two currencies as a
// quote of the synthetic pair symbol.
func (c *Client) GetExchangeRate(ctx context.Context, from, to string) (*Quote, error) {
	return c.GetQuote(ctx, CurrencyPairSymbol(from, to))
}

// GetExchangeRates fetches several currency pairs in one request.
func (c *Client) GetExchangeRates(ctx context.Context, pairs [][2]string) ([]Quote, error) {
	symbols := make([]string, len(pairs))
	for i, p := range pairs {
		symbols[i] = CurrencyPairSymbol(p[0], p[1])
	}
	return c.GetQuotes(ctx, symbols)
}

// transformQuotes decodes the bulk quote payload. The envelope is
// quoteResponse.result; a body without it does not come from the quote
// endpoint we know.
func transformQuotes(body []byte) ([]Quote, error) {
	var resp struct {
		QuoteResponse *struct {
			Result []map[string]any `json:"result"`
			Error  any              `json:"error"`
		} `json:"quoteResponse"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding quote response: %v: %w", err, ErrDecode)
	}
	if resp.QuoteResponse == nil {
		return nil, fmt.Errorf("quote response missing quoteResponse: %w", ErrDecode)
	}

	quotes := make([]Quote, 0, len(resp.QuoteResponse.Result))
	for _, raw := range resp.QuoteResponse.Result {
		q, err := decodeQuote(raw)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// decodeQuote maps one raw quote object field by field. Unknown extra
// fields are ignored; known fields with unusable values are decode errors.
func decodeQuote(raw map[string]any) (Quote, error) {
	var q Quote
	var err error

	fl := func(key string) *float64 {
		if err != nil {
			return nil
		}
		v, e := mapFloat(raw[key])
		if e != nil {
			err = fmt.Errorf("quote field %s: %v: %w", key, e, ErrDecode)
		}
		return v
	}
	in := func(key string) *int64 {
		if err != nil {
			return nil
		}
		v, e := mapInt(raw[key])
		if e != nil {
			err = fmt.Errorf("quote field %s: %v: %w", key, e, ErrDecode)
		}
		return v
	}
	st := func(key string) *string {
		if err != nil {
			return nil
		}
		v, e := mapString(raw[key])
		if e != nil {
			err = fmt.Errorf("quote field %s: %v: %w", key, e, ErrDecode)
		}
		return v
	}
	bl := func(key string) *bool {
		if err != nil {
			return nil
		}
		v, e := mapBool(raw[key])
		if e != nil {
			err = fmt.Errorf("quote field %s: %v: %w", key, e, ErrDecode)
		}
		return v
	}
	dt := func(key string) *time.Time {
		if err != nil {
			return nil
		}
		v, e := mapDate(raw[key])
		if e != nil {
			err = fmt.Errorf("quote field %s: %v: %w", key, e, ErrDecode)
		}
		return v
	}

	if s := st("symbol"); s != nil {
		q.Symbol = *s
	}

	q.Ask = fl("ask")
	q.AskSize = in("askSize")
	q.AverageDailyVolume10Day = in("averageDailyVolume10Day")
	q.AverageDailyVolume3Month = in("averageDailyVolume3Month")
	q.Bid = fl("bid")
	q.BidSize = in("bidSize")
	q.BookValue = fl("bookValue")
	q.Currency = st("currency")
	q.DividendDate = dt("dividendDate")
	q.EarningsTimestamp = dt("earningsTimestamp")
	q.EpsForward = fl("epsForward")
	q.EpsTrailingTwelveMonths = fl("epsTrailingTwelveMonths")
	q.Exchange = st("exchange")
	q.ExchangeDataDelayedBy = in("exchangeDataDelayedBy")
	q.ExchangeTimezoneName = st("exchangeTimezoneName")
	q.ExchangeTimezoneShortName = st("exchangeTimezoneShortName")
	q.FiftyDayAverage = fl("fiftyDayAverage")
	q.FiftyDayAverageChange = fl("fiftyDayAverageChange")
	q.FiftyDayAverageChangePct = fl("fiftyDayAverageChangePercent")
	q.FiftyTwoWeekHigh = fl("fiftyTwoWeekHigh")
	q.FiftyTwoWeekHighChange = fl("fiftyTwoWeekHighChange")
	q.FiftyTwoWeekHighChangePct = fl("fiftyTwoWeekHighChangePercent")
	q.FiftyTwoWeekLow = fl("fiftyTwoWeekLow")
	q.FiftyTwoWeekLowChange = fl("fiftyTwoWeekLowChange")
	q.FiftyTwoWeekLowChangePct = fl("fiftyTwoWeekLowChangePercent")
	q.FinancialCurrency = st("financialCurrency")
	q.ForwardPE = fl("forwardPE")
	q.FullExchangeName = st("fullExchangeName")
	q.Language = st("language")
	q.LongName = st("longName")
	q.Market = st("market")
	q.MarketCap = in("marketCap")
	q.MarketState = st("marketState")
	q.PostMarketChange = fl("postMarketChange")
	q.PostMarketChangePct = fl("postMarketChangePercent")
	q.PostMarketPrice = fl("postMarketPrice")
	q.PostMarketTime = dt("postMarketTime")
	q.PreMarketChange = fl("preMarketChange")
	q.PreMarketChangePct = fl("preMarketChangePercent")
	q.PreMarketPrice = fl("preMarketPrice")
	q.PreMarketTime = dt("preMarketTime")
	q.PriceHint = in("priceHint")
	q.PriceToBook = fl("priceToBook")
	q.QuoteSourceName = st("quoteSourceName")
	q.QuoteType = st("quoteType")
	q.RegularMarketChange = fl("regularMarketChange")
	q.RegularMarketChangePct = fl("regularMarketChangePercent")
	q.RegularMarketDayHigh = fl("regularMarketDayHigh")
	q.RegularMarketDayLow = fl("regularMarketDayLow")
	q.RegularMarketOpen = fl("regularMarketOpen")
	q.RegularMarketPreviousClose = fl("regularMarketPreviousClose")
	q.RegularMarketPrice = fl("regularMarketPrice")
	q.RegularMarketTime = dt("regularMarketTime")
	q.RegularMarketVolume = in("regularMarketVolume")
	q.SharesOutstanding = in("sharesOutstanding")
	q.ShortName = st("shortName")
	q.SourceInterval = in("sourceInterval")
	q.Tradeable = bl("tradeable")
	q.TrailingAnnualDividendRate = fl("trailingAnnualDividendRate")
	q.TrailingAnnualDividendYld = fl("trailingAnnualDividendYield")
	q.TrailingPE = fl("trailingPE")
	q.TwoHundredDayAverage = fl("twoHundredDayAverage")
	q.TwoHundredDayAvgChange = fl("twoHundredDayAverageChange")
	q.TwoHundredDayAvgChangePct = fl("twoHundredDayAverageChangePercent")

	if err != nil {
		return Quote{}, err
	}
	return q, nil
}
