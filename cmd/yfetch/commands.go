package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"yahoofinance"
	"yahoofinance/internal/config"
)

// common carries the flags every subcommand shares.
type common struct {
	configPath string
	timeout    int
}

func (c *common) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json (optional)")
	f.IntVar(&c.timeout, "timeout", 0, "request timeout seconds (overrides config)")
}

func (c *common) client() (*yahoofinance.Client, context.Context, context.CancelFunc, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if c.timeout > 0 {
		cfg.RequestTimeoutSec = c.timeout
	}

	options := []yahoofinance.Option{
		yahoofinance.WithQueryBaseURL(cfg.QueryBaseURL),
		yahoofinance.WithPageBaseURL(cfg.PageBaseURL),
		yahoofinance.WithSearchBaseURL(cfg.SearchBaseURL),
		yahoofinance.WithSearchLocale(cfg.SearchRegion, cfg.SearchLang),
	}
	if cfg.UserAgent != "" {
		options = append(options, yahoofinance.WithUserAgent(cfg.UserAgent))
	}
	client, err := yahoofinance.New(options...)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RequestTimeoutSec)*time.Second)
	return client, ctx, cancel, nil
}

func printJSON(v any) subcommands.ExitStatus {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("encode: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(b))
	return subcommands.ExitSuccess
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// quoteCmd fetches current quotes for one or more symbols.
type quoteCmd struct {
	common
	symbols string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch current quotes for one or more symbols" }
func (*quoteCmd) Usage() string {
	return `yfetch quote -symbols AAPL,MSFT

  Fetches current quotes and prints them as JSON.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.symbols, "symbols", "", "comma-separated symbols")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.symbols == "" {
		log.Print("quote: -symbols is required")
		return subcommands.ExitUsageError
	}
	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("quote: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	quotes, err := client.GetQuotes(ctx, strings.Split(c.symbols, ","))
	if err != nil {
		log.Printf("quote: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(quotes)
}

// historyCmd fetches a historical OHLCV series.
type historyCmd struct {
	common
	symbol   string
	interval string
	start    string
	end      string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "fetch a historical OHLCV series" }
func (*historyCmd) Usage() string {
	return `yfetch history -symbol AAPL -interval 1d -start 2024-01-01 -end 2024-06-30

  Fetches historical price rows and prints them as JSON.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.symbol, "symbol", "", "symbol")
	f.StringVar(&c.interval, "interval", "1d", "interval (1m..1h,6mo for chart; 1d,1wk,1mo for download)")
	f.StringVar(&c.start, "start", "", "start date YYYY-MM-DD")
	f.StringVar(&c.end, "end", "", "end date YYYY-MM-DD (defaults to today)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	start, end, ok := c.parseRange()
	if !ok {
		return subcommands.ExitUsageError
	}
	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("history: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	rows, err := client.GetHistoricalQuoteData(ctx, c.symbol, yahoofinance.Interval(c.interval), start, end)
	if err != nil {
		log.Printf("history: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(rows)
}

func (c *historyCmd) parseRange() (start, end time.Time, ok bool) {
	if c.symbol == "" || c.start == "" {
		log.Print("history: -symbol and -start are required")
		return start, end, false
	}
	start, err := parseDay(c.start)
	if err != nil {
		log.Printf("history: bad -start: %v", err)
		return start, end, false
	}
	end = time.Now().UTC()
	if c.end != "" {
		end, err = parseDay(c.end)
		if err != nil {
			log.Printf("history: bad -end: %v", err)
			return start, end, false
		}
	}
	return start, end, true
}

// dividendsCmd fetches dividend events.
type dividendsCmd struct {
	historyCmd
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "fetch dividend events" }
func (*dividendsCmd) Usage() string {
	return `yfetch dividends -symbol AAPL -start 2020-01-01 [-end 2024-12-31]

  Fetches dividend events and prints them as JSON.
`
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	start, end, ok := c.parseRange()
	if !ok {
		return subcommands.ExitUsageError
	}
	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("dividends: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	rows, err := client.GetHistoricalDividendData(ctx, c.symbol, start, end)
	if err != nil {
		log.Printf("dividends: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(rows)
}

// splitsCmd fetches stock split events.
type splitsCmd struct {
	historyCmd
}

func (*splitsCmd) Name() string     { return "splits" }
func (*splitsCmd) Synopsis() string { return "fetch stock split events" }
func (*splitsCmd) Usage() string {
	return `yfetch splits -symbol AAPL -start 2000-01-01 [-end 2024-12-31]

  Fetches stock split events and prints them as JSON.
`
}

func (c *splitsCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	start, end, ok := c.parseRange()
	if !ok {
		return subcommands.ExitUsageError
	}
	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("splits: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	rows, err := client.GetHistoricalSplitData(ctx, c.symbol, start, end)
	if err != nil {
		log.Printf("splits: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(rows)
}

// searchCmd looks up symbols by free text.
type searchCmd struct {
	common
	term string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search for symbols by name" }
func (*searchCmd) Usage() string {
	return `yfetch search -term "apple"

  Looks up symbol suggestions and prints them as JSON.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.term, "term", "", "search term")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.term == "" {
		log.Print("search: -term is required")
		return subcommands.ExitUsageError
	}
	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("search: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	results, err := client.Search(ctx, c.term)
	if err != nil {
		log.Printf("search: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(results)
}

// fxCmd fetches currency exchange rates.
type fxCmd struct {
	common
	pairs string
}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "fetch currency exchange rates" }
func (*fxCmd) Usage() string {
	return `yfetch fx -pairs USD/GBP,EUR/USD

  Fetches exchange rates for currency pairs and prints them as JSON.
`
}

func (c *fxCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.pairs, "pairs", "", "comma-separated currency pairs, e.g. USD/GBP,EUR/USD")
}

func (c *fxCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.pairs == "" {
		log.Print("fx: -pairs is required")
		return subcommands.ExitUsageError
	}
	var pairs [][2]string
	for _, p := range strings.Split(c.pairs, ",") {
		from, to, found := strings.Cut(p, "/")
		if !found {
			log.Printf("fx: bad pair %q, want FROM/TO", p)
			return subcommands.ExitUsageError
		}
		pairs = append(pairs, [2]string{from, to})
	}

	client, ctx, cancel, err := c.client()
	if err != nil {
		log.Printf("fx: %v", err)
		return subcommands.ExitFailure
	}
	defer cancel()

	quotes, err := client.GetExchangeRates(ctx, pairs)
	if err != nil {
		log.Printf("fx: %v", err)
		return subcommands.ExitFailure
	}
	return printJSON(quotes)
}
