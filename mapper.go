package yahoofinance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dayFormat is the date layout used by the tabular download endpoint.
const dayFormat = "2006-01-02"

// mapFloat coerces a raw JSON/CSV value into a float. A nil value or an
// empty string maps to nil rather than zero.
func mapFloat(v any) (*float64, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return &x, nil
	case int:
		f := float64(x)
		return &f, nil
	case int64:
		f := float64(x)
		return &f, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("not a float: %q", x.String())
		}
		return &f, nil
	case string:
		if x == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, fmt.Errorf("not a float: %q", x)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("not a float: unexpected type %T", v)
	}
}

// mapInt coerces a raw value into an integer. Whole-valued floats are
// accepted because the upstream encodes counts as JSON numbers.
func mapInt(v any) (*int64, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		n := int64(x)
		return &n, nil
	case int64:
		return &x, nil
	case float64:
		n := int64(x)
		return &n, nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			// Upstream sometimes serializes large counts with an exponent.
			f, ferr := x.Float64()
			if ferr != nil {
				return nil, fmt.Errorf("not an integer: %q", x.String())
			}
			n = int64(f)
		}
		return &n, nil
	case string:
		if x == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", x)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("not an integer: unexpected type %T", v)
	}
}

// mapBool coerces boolean-looking input: native bools, "true"/"false" and 1/0.
func mapBool(v any) (*bool, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &x, nil
	case float64:
		return boolFromInt(int64(x))
	case int:
		return boolFromInt(int64(x))
	case int64:
		return boolFromInt(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return nil, fmt.Errorf("not a bool: %q", x.String())
		}
		return boolFromInt(n)
	case string:
		switch strings.ToLower(x) {
		case "":
			return nil, nil
		case "true", "1":
			b := true
			return &b, nil
		case "false", "0":
			b := false
			return &b, nil
		}
		return nil, fmt.Errorf("not a bool: %q", x)
	default:
		return nil, fmt.Errorf("not a bool: unexpected type %T", v)
	}
}

func boolFromInt(n int64) (*bool, error) {
	switch n {
	case 0:
		b := false
		return &b, nil
	case 1:
		b := true
		return &b, nil
	}
	return nil, fmt.Errorf("not a bool: %d", n)
}

// mapString coerces a raw value into text.
func mapString(v any) (*string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if x == "" {
			return nil, nil
		}
		return &x, nil
	case json.Number:
		s := x.String()
		return &s, nil
	case bool:
		s := strconv.FormatBool(x)
		return &s, nil
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		return &s, nil
	default:
		return nil, fmt.Errorf("not a string: unexpected type %T", v)
	}
}

// mapDate coerces a raw value into a UTC point in time. Unix timestamps
// (numbers or numeric strings) map to the given instant; day-formatted
// strings map to UTC midnight of that day.
func mapDate(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		t := time.Unix(int64(x), 0).UTC()
		return &t, nil
	case int:
		t := time.Unix(int64(x), 0).UTC()
		return &t, nil
	case int64:
		t := time.Unix(x, 0).UTC()
		return &t, nil
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return nil, fmt.Errorf("not a date: %q", x.String())
		}
		t := time.Unix(n, 0).UTC()
		return &t, nil
	case string:
		if x == "" {
			return nil, nil
		}
		if n, err := strconv.ParseInt(x, 10, 64); err == nil {
			t := time.Unix(n, 0).UTC()
			return &t, nil
		}
		t, err := time.ParseInLocation(dayFormat, x, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("not a date: %q", x)
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("not a date: unexpected type %T", v)
	}
}
