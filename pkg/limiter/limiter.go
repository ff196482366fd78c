// Package limiter provides token-bucket rate limiting keyed by request
// attributes.
package limiter

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face is the limiter contract used by the rate limit middleware.
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule describes one token bucket.
type BucketRule struct {
	// Key selects the requests the bucket applies to.
	Key string
	// FillInterval is the time between token refills.
	FillInterval time.Duration
	// Capacity is the bucket size.
	Capacity int64
	// Quantum is the number of tokens added per refill.
	Quantum int64
}

// MethodLimiter keys buckets by URI path prefix.
type MethodLimiter struct {
	buckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{buckets: make(map[string]*ratelimit.Bucket)}
}

func (l *MethodLimiter) Key(c *gin.Context) string {
	uri := c.Request.RequestURI
	if index := strings.Index(uri, "?"); index >= 0 {
		return uri[:index]
	}
	return uri
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	for prefix, bucket := range l.buckets {
		if strings.HasPrefix(key, prefix) {
			return bucket, true
		}
	}
	return nil, false
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	for _, rule := range rules {
		if _, ok := l.buckets[rule.Key]; !ok {
			l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
		}
	}
	return l
}
