package yahoofinance

import "time"

// Quote is a snapshot of a single security from the bulk quote endpoint.
// The upstream omits fields freely depending on quote type and market
// state, so everything beyond the symbol is a pointer: a nil field means
// the payload did not carry a value, never that the value was zero.
type Quote struct {
	Symbol string `json:"symbol"`

	Ask                        *float64   `json:"ask"`
	AskSize                    *int64     `json:"askSize"`
	AverageDailyVolume10Day    *int64     `json:"averageDailyVolume10Day"`
	AverageDailyVolume3Month   *int64     `json:"averageDailyVolume3Month"`
	Bid                        *float64   `json:"bid"`
	BidSize                    *int64     `json:"bidSize"`
	BookValue                  *float64   `json:"bookValue"`
	Currency                   *string    `json:"currency"`
	DividendDate               *time.Time `json:"dividendDate"`
	EarningsTimestamp          *time.Time `json:"earningsTimestamp"`
	EpsForward                 *float64   `json:"epsForward"`
	EpsTrailingTwelveMonths    *float64   `json:"epsTrailingTwelveMonths"`
	Exchange                   *string    `json:"exchange"`
	ExchangeDataDelayedBy      *int64     `json:"exchangeDataDelayedBy"`
	ExchangeTimezoneName       *string    `json:"exchangeTimezoneName"`
	ExchangeTimezoneShortName  *string    `json:"exchangeTimezoneShortName"`
	FiftyDayAverage            *float64   `json:"fiftyDayAverage"`
	FiftyDayAverageChange      *float64   `json:"fiftyDayAverageChange"`
	FiftyDayAverageChangePct   *float64   `json:"fiftyDayAverageChangePercent"`
	FiftyTwoWeekHigh           *float64   `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekHighChange     *float64   `json:"fiftyTwoWeekHighChange"`
	FiftyTwoWeekHighChangePct  *float64   `json:"fiftyTwoWeekHighChangePercent"`
	FiftyTwoWeekLow            *float64   `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekLowChange      *float64   `json:"fiftyTwoWeekLowChange"`
	FiftyTwoWeekLowChangePct   *float64   `json:"fiftyTwoWeekLowChangePercent"`
	FinancialCurrency          *string    `json:"financialCurrency"`
	ForwardPE                  *float64   `json:"forwardPE"`
	FullExchangeName           *string    `json:"fullExchangeName"`
	Language                   *string    `json:"language"`
	LongName                   *string    `json:"longName"`
	Market                     *string    `json:"market"`
	MarketCap                  *int64     `json:"marketCap"`
	MarketState                *string    `json:"marketState"`
	PostMarketChange           *float64   `json:"postMarketChange"`
	PostMarketChangePct        *float64   `json:"postMarketChangePercent"`
	PostMarketPrice            *float64   `json:"postMarketPrice"`
	PostMarketTime             *time.Time `json:"postMarketTime"`
	PreMarketChange            *float64   `json:"preMarketChange"`
	PreMarketChangePct         *float64   `json:"preMarketChangePercent"`
	PreMarketPrice             *float64   `json:"preMarketPrice"`
	PreMarketTime              *time.Time `json:"preMarketTime"`
	PriceHint                  *int64     `json:"priceHint"`
	PriceToBook                *float64   `json:"priceToBook"`
	QuoteSourceName            *string    `json:"quoteSourceName"`
	QuoteType                  *string    `json:"quoteType"`
	RegularMarketChange        *float64   `json:"regularMarketChange"`
	RegularMarketChangePct     *float64   `json:"regularMarketChangePercent"`
	RegularMarketDayHigh       *float64   `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64   `json:"regularMarketDayLow"`
	RegularMarketOpen          *float64   `json:"regularMarketOpen"`
	RegularMarketPreviousClose *float64   `json:"regularMarketPreviousClose"`
	RegularMarketPrice         *float64   `json:"regularMarketPrice"`
	RegularMarketTime          *time.Time `json:"regularMarketTime"`
	RegularMarketVolume        *int64     `json:"regularMarketVolume"`
	SharesOutstanding          *int64     `json:"sharesOutstanding"`
	ShortName                  *string    `json:"shortName"`
	SourceInterval             *int64     `json:"sourceInterval"`
	Tradeable                  *bool      `json:"tradeable"`
	TrailingAnnualDividendRate *float64   `json:"trailingAnnualDividendRate"`
	TrailingAnnualDividendYld  *float64   `json:"trailingAnnualDividendYield"`
	TrailingPE                 *float64   `json:"trailingPE"`
	TwoHundredDayAverage       *float64   `json:"twoHundredDayAverage"`
	TwoHundredDayAvgChange     *float64   `json:"twoHundredDayAverageChange"`
	TwoHundredDayAvgChangePct  *float64   `json:"twoHundredDayAverageChangePercent"`
}

// HistoricalData is one OHLCV row of a historical series. Rows with any
// missing numeric value are dropped during decoding, so all fields are
// concrete. Date is the trading day at UTC midnight for daily and coarser
// intervals, or the bucket instant for intraday intervals.
type HistoricalData struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjClose"`
	Volume   int64     `json:"volume"`
}

// DividendData is one dividend event. The amount is nil when the upstream
// reports the event without a value.
type DividendData struct {
	Date     time.Time `json:"date"`
	Dividend *float64  `json:"dividend"`
}

// SplitData is one stock split event. Ratio keeps the upstream spelling
// (e.g. "4:1"); Numerator and Denominator are parsed from it when possible.
type SplitData struct {
	Date        time.Time `json:"date"`
	Ratio       string    `json:"ratio"`
	Numerator   *float64  `json:"numerator"`
	Denominator *float64  `json:"denominator"`
}

// SearchResult is one symbol suggestion from the search endpoint.
type SearchResult struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name"`
	Exchange        string `json:"exchange"`
	ExchangeDisplay string `json:"exchangeDisplay"`
	Type            string `json:"type"`
	TypeDisplay     string `json:"typeDisplay"`
}
