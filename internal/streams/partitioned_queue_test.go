package streams

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionedQueue_SameKeySameLane(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](4, 16)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, queue.Publish(ctx, "invocation-a", i))
	}

	lane := queue.Partition(partitionIndex("invocation-a", 4))
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, <-lane)
	}
}

func TestPartitionedQueue_Defaults(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[string](0, 0)
	assert.Equal(t, defaultNumPartitions, queue.PartitionCount())
	assert.Equal(t, defaultBuffer, cap(queue.partitions[0]))
}

func TestPartitionedQueue_Publish_FullLaneHonoursContext(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[int](1, 1)
	require.NoError(t, queue.Publish(context.Background(), "k", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := queue.Publish(ctx, "k", 2)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPartitionIndex_Stable(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "a", "3f6c2a0e-5d1b-4a51-9a43-0c2f8b7a1e90"} {
		idx := partitionIndex(key, 8)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 8)
		assert.Equal(t, idx, partitionIndex(key, 8))
	}
}
