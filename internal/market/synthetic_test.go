package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microdca/dcasim/internal/domain"
	"github.com/microdca/dcasim/pkg/dateutil"
)

func TestSyntheticFeedDeterministic(t *testing.T) {
	feed := SyntheticFeed{}
	a, err := feed.Fetch(context.Background(), "VTI", "2023-01-02", "2023-06-30")
	require.NoError(t, err)
	b, err := feed.Fetch(context.Background(), "VTI", "2023-01-02", "2023-06-30")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestSyntheticFeedTickerAndSaltChangeSeries(t *testing.T) {
	base, err := SyntheticFeed{}.Fetch(context.Background(), "VTI", "2023-01-02", "2023-03-31")
	require.NoError(t, err)

	other, err := SyntheticFeed{}.Fetch(context.Background(), "QQQ", "2023-01-02", "2023-03-31")
	require.NoError(t, err)
	assert.NotEqual(t, base, other)

	salted, err := SyntheticFeed{Salt: "x"}.Fetch(context.Background(), "VTI", "2023-01-02", "2023-03-31")
	require.NoError(t, err)
	assert.NotEqual(t, base, salted)
}

func TestSyntheticFeedWeekdaysOnly(t *testing.T) {
	quotes, err := SyntheticFeed{}.Fetch(context.Background(), "VTI", "2024-01-01", "2024-02-29")
	require.NoError(t, err)
	for _, q := range quotes {
		d, err := dateutil.ParseDay(q.Date)
		require.NoError(t, err)
		assert.True(t, dateutil.IsWeekday(d), "weekend quote at %s", q.Date)
		assert.GreaterOrEqual(t, q.Close, 1.0)
	}
}

func TestSyntheticFeedRejectsInvertedRange(t *testing.T) {
	_, err := SyntheticFeed{}.Fetch(context.Background(), "VTI", "2024-06-01", "2024-06-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = SyntheticFeed{}.Fetch(context.Background(), "VTI", "2024-06-02", "2024-06-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = SyntheticFeed{}.Fetch(context.Background(), "VTI", "garbage", "2024-06-01")
	assert.Error(t, err)
}
