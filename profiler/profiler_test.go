package profiler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackRecordsDuration(t *testing.T) {
	tr := New()
	tr.Track("filter", func() {
		time.Sleep(5 * time.Millisecond)
	})

	assert.GreaterOrEqual(t, tr.Stage("filter"), 5*time.Millisecond)
	assert.Equal(t, time.Duration(0), tr.Stage("unknown"), "unrecorded stages report zero")
}

func TestRecordAggregates(t *testing.T) {
	tr := New()
	tr.Record("decode", 10*time.Millisecond)
	tr.Record("decode", 30*time.Millisecond)

	assert.Equal(t, 40*time.Millisecond, tr.Stage("decode"))

	report := tr.Report()
	require.Contains(t, report, "decode")
	assert.Contains(t, report, "count=2")
}

func TestTrackerConcurrentUse(t *testing.T) {
	tr := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.Record("stage", time.Microsecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800*time.Microsecond, tr.Stage("stage"))
}
