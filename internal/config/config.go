package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type Config struct {
	// QueryBaseURL hosts the quote, chart and download endpoints.
	QueryBaseURL string `json:"query_base_url"`
	// PageBaseURL hosts the quote page the crumb is scraped from.
	PageBaseURL string `json:"page_base_url"`
	// SearchBaseURL hosts the symbol suggestion endpoint.
	SearchBaseURL string `json:"search_base_url"`

	SearchRegion string `json:"search_region"`
	SearchLang   string `json:"search_lang"`

	RequestTimeoutSec int    `json:"request_timeout_sec"`
	UserAgent         string `json:"user_agent"`
}

func Default() Config {
	return Config{
		QueryBaseURL:      "https://query1.finance.yahoo.com",
		PageBaseURL:       "https://finance.yahoo.com",
		SearchBaseURL:     "https://s.yimg.com",
		SearchRegion:      "US",
		SearchLang:        "en-US",
		RequestTimeoutSec: 15,
	}
}

// Load reads JSON config from path. If path is empty or the file does not
// exist, it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("YF_QUERY_BASE_URL"); v != "" {
		cfg.QueryBaseURL = v
	}
	if v := os.Getenv("YF_PAGE_BASE_URL"); v != "" {
		cfg.PageBaseURL = v
	}
	if v := os.Getenv("YF_SEARCH_BASE_URL"); v != "" {
		cfg.SearchBaseURL = v
	}
	if v := os.Getenv("YF_SEARCH_REGION"); v != "" {
		cfg.SearchRegion = v
	}
	if v := os.Getenv("YF_SEARCH_LANG"); v != "" {
		cfg.SearchLang = v
	}
	if v := os.Getenv("YF_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("YF_REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.RequestTimeoutSec = x
		}
	}
}
