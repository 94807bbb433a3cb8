package route

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krouter-io/krouter/internal/ops"
)

func TestRecordingReportOrder(t *testing.T) {
	rec := NewRecording()
	rec.Report("10.0.0.1:11211")
	rec.Report("10.0.0.2:11211")
	rec.Report("10.0.0.1:11211") // duplicates are preserved

	assert.Equal(t, []string{"10.0.0.1:11211", "10.0.0.2:11211", "10.0.0.1:11211"}, rec.Destinations())
}

func TestRecordingConcurrentReports(t *testing.T) {
	rec := NewRecording()
	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec.Report(fmt.Sprintf("host-%d", i))
		}(i)
	}
	wg.Wait()
	assert.Len(t, rec.Destinations(), n)
}

func TestRecordingFinishIdempotent(t *testing.T) {
	rec := NewRecording()
	rec.Finish()
	rec.Finish() // second call must not panic on the closed channel
	rec.Wait()
	rec.Wait() // Wait after completion returns immediately
}

func TestRecordingWaitBlocksUntilFinish(t *testing.T) {
	rec := NewRecording()
	released := make(chan struct{})
	go func() {
		rec.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("Wait returned before Finish")
	default:
	}

	rec.Finish()
	<-released
}

func TestRecordingIDsDistinct(t *testing.T) {
	a, b := NewRecording(), NewRecording()
	require.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestDestinationsReturnsCopy(t *testing.T) {
	rec := NewRecording()
	rec.Report("x")
	got := rec.Destinations()
	got[0] = "mutated"
	assert.Equal(t, []string{"x"}, rec.Destinations())
}

func TestDryRunWalkCollectsDestinations(t *testing.T) {
	x, err := NewDestinationNode("x:11211", nil)
	require.NoError(t, err)
	y, err := NewDestinationNode("y:11211", nil)
	require.NoError(t, err)
	fan, err := NewAllSyncNode([]Node{x, y})
	require.NoError(t, err)

	rec := NewRecording()
	req := NewRecordingRequest(rec, "widget")
	reply := fan.Route(context.Background(), req, ops.Get)
	rec.Finish()
	rec.Wait()

	assert.False(t, reply.IsError())
	assert.Equal(t, []string{"x:11211", "y:11211"}, rec.Destinations())
}
