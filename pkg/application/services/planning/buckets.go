package planning

import (
	"fmt"
	"time"
)

// GenerateBuckets returns the start dates of consecutive bucketDays-long
// buckets covering horizonDays from start. The last bucket may extend past
// the horizon.
func GenerateBuckets(start time.Time, bucketDays, horizonDays int) ([]time.Time, error) {
	if bucketDays <= 0 {
		return nil, fmt.Errorf("bucket length must be positive, got %d", bucketDays)
	}
	if horizonDays < 0 {
		return nil, fmt.Errorf("planning horizon cannot be negative, got %d", horizonDays)
	}

	count := (horizonDays + bucketDays - 1) / bucketDays
	buckets := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		buckets = append(buckets, start.AddDate(0, 0, i*bucketDays))
	}
	return buckets, nil
}

// bucketIndex returns the bucket a date falls into. Dates before the first
// bucket count as past due and land in bucket 0; dates at or after the end of
// the last bucket return -1.
func bucketIndex(buckets []time.Time, bucketDays int, date time.Time) int {
	if len(buckets) == 0 {
		return -1
	}
	end := buckets[len(buckets)-1].AddDate(0, 0, bucketDays)
	if !date.Before(end) {
		return -1
	}
	for i := len(buckets) - 1; i > 0; i-- {
		if !date.Before(buckets[i]) {
			return i
		}
	}
	return 0
}
