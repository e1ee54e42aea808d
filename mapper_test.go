package yahoofinance

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    *float64
		wantErr bool
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty string", in: "", want: nil},
		{name: "float", in: 1.5, want: ptr(1.5)},
		{name: "number", in: json.Number("189.84"), want: ptr(189.84)},
		{name: "numeric string", in: "42.5", want: ptr(42.5)},
		{name: "garbage string", in: "abc", wantErr: true},
		{name: "wrong type", in: []string{"x"}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mapFloat(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    *int64
		wantErr bool
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty string", in: "", want: nil},
		{name: "number", in: json.Number("53164400"), want: ptr(int64(53164400))},
		{name: "exponent number", in: json.Number("2.91326e+12"), want: ptr(int64(2913260000000))},
		{name: "numeric string", in: "12", want: ptr(int64(12))},
		{name: "float value", in: 3.0, want: ptr(int64(3))},
		{name: "garbage string", in: "abc", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mapInt(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    *bool
		wantErr bool
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty string", in: "", want: nil},
		{name: "native true", in: true, want: ptr(true)},
		{name: "native false", in: false, want: ptr(false)},
		{name: "string true", in: "true", want: ptr(true)},
		{name: "string false", in: "false", want: ptr(false)},
		{name: "one", in: json.Number("1"), want: ptr(true)},
		{name: "zero", in: json.Number("0"), want: ptr(false)},
		{name: "other number", in: json.Number("2"), wantErr: true},
		{name: "garbage string", in: "yes", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mapBool(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMapString(t *testing.T) {
	t.Parallel()

	got, err := mapString("USD")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "USD", *got)

	got, err = mapString(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = mapString("")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Numbers coerce to their textual form.
	got, err = mapString(json.Number("42"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "42", *got)
}

func TestMapDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      any
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{name: "nil", in: nil, wantNil: true},
		{name: "empty string", in: "", wantNil: true},
		{name: "unix number", in: json.Number("1714744800"), want: time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)},
		{name: "unix string", in: "1714744800", want: time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)},
		{name: "day string", in: "2024-05-03", want: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)},
		{name: "garbage string", in: "yesterday", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := mapDate(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func ptr[T any](v T) *T { return &v }
