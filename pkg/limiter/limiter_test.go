package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testContext(uri string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", uri, nil)
	return c
}

func TestMethodLimiterKeyStripsQuery(t *testing.T) {
	l := NewMethodLimiter()
	require.Equal(t, "/api/items", l.Key(testContext("/api/items?spaceId=1")))
	require.Equal(t, "/api/items", l.Key(testContext("/api/items")))
}

func TestMethodLimiterBucketByPrefix(t *testing.T) {
	l := NewMethodLimiter().AddBuckets(BucketRule{
		Key:          "/api/items",
		FillInterval: time.Hour,
		Capacity:     2,
		Quantum:      2,
	})

	bucket, ok := l.GetBucket("/api/items/42")
	require.True(t, ok)
	require.EqualValues(t, 1, bucket.TakeAvailable(1))
	require.EqualValues(t, 1, bucket.TakeAvailable(1))
	// Bucket drained; nothing refills within the hour.
	require.EqualValues(t, 0, bucket.TakeAvailable(1))

	_, ok = l.GetBucket("/other")
	require.False(t, ok)
}
