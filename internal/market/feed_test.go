package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdca/dcasim/internal/domain"
)

// stooqBody renders a stooq-style daily CSV for the given dates.
func stooqBody(dates []string, px float64) string {
	var sb strings.Builder
	sb.WriteString("Date,Open,High,Low,Close,Volume\n")
	for i, d := range dates {
		c := px + float64(i)
		fmt.Fprintf(&sb, "%s,%.2f,%.2f,%.2f,%.2f,1000\n", d, c, c, c, c)
	}
	return sb.String()
}

func TestStooqFeedFetch(t *testing.T) {
	dates := weekdays(t, "2024-01-01", 40)

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		fmt.Fprint(w, stooqBody(dates, 100))
	}))
	defer srv.Close()

	feed := &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()}
	quotes, err := feed.Fetch(context.Background(), "VTI", dates[0], dates[len(dates)-1])
	require.NoError(t, err)
	assert.Len(t, quotes, 40)
	assert.Equal(t, dates[0], quotes[0].Date)
	assert.Contains(t, gotPath, "s=vti.us")

	// Range filtering keeps only rows inside [start, end].
	sub, err := feed.Fetch(context.Background(), "VTI", dates[5], dates[38])
	require.NoError(t, err)
	assert.Len(t, sub, 34)
	assert.Equal(t, dates[5], sub[0].Date)
	assert.Equal(t, dates[38], sub[len(sub)-1].Date)
}

func TestStooqFeedTooFewRows(t *testing.T) {
	dates := weekdays(t, "2024-01-01", MinQuotesPerTicker-1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, stooqBody(dates, 100))
	}))
	defer srv.Close()

	feed := &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()}
	_, err := feed.Fetch(context.Background(), "VTI", dates[0], dates[len(dates)-1])
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
}

func TestStooqFeedHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	feed := &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()}
	_, err := feed.Fetch(context.Background(), "VTI", "2024-01-01", "2024-06-01")
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
}

func TestStooqFeedSkipsMalformedRows(t *testing.T) {
	dates := weekdays(t, "2024-01-01", 35)
	body := stooqBody(dates, 100) +
		"2024-09-01,bad,bad,bad,not-a-price,0\n" +
		"2024-09-02,1,1,1,-5,0\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	feed := &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()}
	quotes, err := feed.Fetch(context.Background(), "VTI", "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Len(t, quotes, 35)
}

func TestFallbackFeedSubstitutesSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	feed := &FallbackFeed{
		Primary:  &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()},
		Fallback: SyntheticFeed{},
		Log:      zerolog.Nop(),
	}
	quotes, err := feed.Fetch(context.Background(), "VTI", "2024-01-01", "2024-06-30")
	require.NoError(t, err)
	assert.NotEmpty(t, quotes)

	want, err := SyntheticFeed{}.Fetch(context.Background(), "VTI", "2024-01-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, want, quotes)
}

func TestFallbackFeedHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	feed := &FallbackFeed{
		Primary:  &StooqFeed{Client: srv.Client(), BaseURL: srv.URL, Log: zerolog.Nop()},
		Fallback: SyntheticFeed{},
		Log:      zerolog.Nop(),
	}
	_, err := feed.Fetch(ctx, "VTI", "2024-01-01", "2024-06-30")
	assert.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	series, err := LoadAll(context.Background(), SyntheticFeed{}, []string{"VTI", "QQQ"}, "2023-01-02", "2023-12-29")
	require.NoError(t, err)
	assert.Len(t, series, 2)
	assert.NotEmpty(t, series["VTI"])
	assert.NotEmpty(t, series["QQQ"])
}
