// FilePath: internal/aggregation/aggregation_test.go
package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Nakib00/IoT-project-Server/internal/models"
)

func series(base time.Time, step time.Duration, values ...float64) []models.DataPoint {
	points := make([]models.DataPoint, len(values))
	for i, v := range values {
		points[i] = models.DataPoint{Datetime: base.Add(time.Duration(i) * step), Value: v}
	}
	return points
}

func TestValidAndRequiresValue(t *testing.T) {
	require.True(t, Valid(FilterRealtime))
	require.True(t, Valid(FilterCount))
	require.True(t, Valid(FilterToday))
	require.True(t, Valid(FilterDays))
	require.False(t, Valid("weekly"))

	require.True(t, RequiresValue(FilterCount))
	require.True(t, RequiresValue(FilterDays))
	require.False(t, RequiresValue(FilterRealtime))
	require.False(t, RequiresValue(FilterToday))
}

func TestSelectWindowRealtime(t *testing.T) {
	now := time.Now()
	points := series(now.Add(-time.Hour), time.Minute, 1, 2, 3)

	got := SelectWindow(points, FilterRealtime, 0, now)
	require.Len(t, got, 1)
	require.Equal(t, float64(3), got[0].Value)
}

func TestSelectWindowCount(t *testing.T) {
	now := time.Now()
	points := series(now.Add(-time.Hour), time.Minute, 1, 2, 3, 4, 5)

	got := SelectWindow(points, FilterCount, 3, now)
	require.Len(t, got, 3)
	require.Equal(t, float64(3), got[0].Value)
	require.Equal(t, float64(5), got[2].Value)

	// Asking for more than exists returns everything.
	require.Len(t, SelectWindow(points, FilterCount, 10, now), 5)
}

func TestSelectWindowToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	yesterday := models.DataPoint{Datetime: now.Add(-20 * time.Hour), Value: 99}
	thisMorning := models.DataPoint{Datetime: now.Add(-3 * time.Hour), Value: 1}
	justNow := models.DataPoint{Datetime: now.Add(-time.Minute), Value: 2}

	got := SelectWindow([]models.DataPoint{yesterday, thisMorning, justNow}, FilterToday, 0, now)
	require.Len(t, got, 2)
	require.Equal(t, float64(1), got[0].Value)
}

func TestSelectWindowDays(t *testing.T) {
	now := time.Now()
	old := models.DataPoint{Datetime: now.Add(-72 * time.Hour), Value: 10}
	recent := models.DataPoint{Datetime: now.Add(-12 * time.Hour), Value: 20}

	got := SelectWindow([]models.DataPoint{old, recent}, FilterDays, 2, now)
	require.Len(t, got, 1)
	require.Equal(t, float64(20), got[0].Value)

	// Fractional day windows are honored.
	got = SelectWindow([]models.DataPoint{old, recent}, FilterDays, 0.25, now)
	require.Empty(t, got)
}

func TestWindowBounds(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := series(base, time.Hour, 1, 2, 3, 4)

	got := Window(points, base.Add(time.Hour), base.Add(2*time.Hour))
	require.Len(t, got, 2)
	require.Equal(t, float64(2), got[0].Value)
	require.Equal(t, float64(3), got[1].Value)

	// Zero bounds are open-ended.
	require.Len(t, Window(points, time.Time{}, time.Time{}), 4)
	require.Len(t, Window(points, base.Add(2*time.Hour), time.Time{}), 2)
	require.Len(t, Window(points, time.Time{}, base), 1)
}

func TestMeanRoundsToTwoDecimals(t *testing.T) {
	points := series(time.Now(), time.Second, 1, 2, 2)
	require.Equal(t, 1.67, Mean(points))

	require.Equal(t, float64(0), Mean(nil))
	require.Equal(t, 2.5, Mean(series(time.Now(), time.Second, 2, 3)))
}

func TestRound2(t *testing.T) {
	require.Equal(t, 3.33, Round2(10.0/3.0))
	require.Equal(t, 0.1, Round2(0.1))
	require.Equal(t, -1.67, Round2(-5.0/3.0))
}

func TestTail(t *testing.T) {
	points := series(time.Now(), time.Second, 1, 2, 3)
	require.Empty(t, Tail(points, 0))
	require.Empty(t, Tail(points, -1))
	require.Len(t, Tail(points, 2), 2)
	require.Len(t, Tail(points, 5), 3)
}
