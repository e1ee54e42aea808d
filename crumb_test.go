package yahoofinance

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCrumb_Fixture(t *testing.T) {
	t.Parallel()

	html, err := os.ReadFile("fixtures/history_page.html")
	require.NoError(t, err)

	crumb, err := extractCrumb(html)
	require.NoError(t, err)
	// The fixture stores the crumb with an escaped slash (/).
	assert.Equal(t, "AbCd/Ef9.x", crumb)
}

func TestExtractCrumb_Plain(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><script>{"CrumbStore":{"crumb":"nq5PVTm0dcT"}}</script></html>`)
	crumb, err := extractCrumb(body)
	require.NoError(t, err)
	assert.Equal(t, "nq5PVTm0dcT", crumb)
}

func TestExtractCrumb_NotFound(t *testing.T) {
	t.Parallel()

	_, err := extractCrumb([]byte("<html><body>maintenance page</body></html>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode), "missing crumb must be a decode error, got %v", err)
}

func TestExtractCrumb_Empty(t *testing.T) {
	t.Parallel()

	_, err := extractCrumb([]byte(`{"CrumbStore":{"crumb":""}}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
}
