package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intMetric is a minimal Metrics[M] implementation: count of items.
type intMetric int

func (m intMetric) Add(other intMetric) intMetric { return m + other }

const markerEven MarkerVariant = 1

// testItem wraps an int and reports itself "even" for marker tests.
type testItem int

func (i testItem) Measure() intMetric { return 1 }
func (i testItem) IsEmpty() bool      { return false }
func (i testItem) Markers() []MarkerVariant {
	if i%2 == 0 {
		return []MarkerVariant{markerEven}
	}
	return nil
}

func seqItems(n int) []testItem {
	items := make([]testItem, n)
	for i := range items {
		items[i] = testItem(i)
	}
	return items
}

func TestFromSliceRoundTrips(t *testing.T) {
	items := seqItems(37)
	tr := FromSlice[testItem, intMetric](items)
	require.Equal(t, len(items), tr.Len())
	got := tr.ToSlice()
	require.Equal(t, items, got)
}

func TestInsertAndDeletePreserveOrder(t *testing.T) {
	tr := FromSlice[testItem, intMetric](seqItems(20))
	tr.Insert(0, testItem(-1))
	tr.Insert(tr.Len(), testItem(999))
	tr.Insert(10, testItem(500))

	assert.Equal(t, testItem(-1), tr.At(0))
	assert.Equal(t, testItem(999), tr.At(tr.Len()-1))
	assert.Equal(t, testItem(500), tr.At(10))

	before := tr.Len()
	tr.Delete(10)
	require.Equal(t, before-1, tr.Len())
	assert.NotEqual(t, testItem(500), tr.At(10), "expected 500 to be removed")
}

func TestInsertManyMaintainsAggregates(t *testing.T) {
	tr := FromSlice[testItem, intMetric](nil)
	for i := 0; i < 200; i++ {
		tr.Append(testItem(i))
	}
	require.Equal(t, 200, int(tr.Measure()))
	for i := 0; i < 200; i++ {
		require.Equal(t, testItem(i), tr.At(i))
	}
}

func TestMarkerCountAndGetMarker(t *testing.T) {
	tr := FromSlice[testItem, intMetric](seqItems(50))
	wantEvens := 25
	require.Equal(t, wantEvens, tr.MarkerCount(markerEven))

	idx, ok := tr.GetMarker(markerEven, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = tr.GetMarker(markerEven, 5)
	assert.True(t, ok)
	assert.Equal(t, 10, idx)

	_, ok = tr.GetMarker(markerEven, wantEvens)
	assert.False(t, ok, "GetMarker out of range should return ok=false")
}

func TestFindByMetricMonotoneDescent(t *testing.T) {
	tr := FromSlice[testItem, intMetric](seqItems(100))
	idx, _ := tr.FindByMetric(func(cum intMetric) bool { return cum >= 42 })
	require.Equal(t, 41, idx)
}

func TestDeleteAcrossManySplitsStillBalances(t *testing.T) {
	tr := FromSlice[testItem, intMetric](seqItems(500))
	for tr.Len() > 0 {
		tr.Delete(tr.Len() / 2)
	}
	require.Equal(t, 0, tr.Len())
}
