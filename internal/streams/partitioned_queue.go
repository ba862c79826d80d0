package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
)

// PartitionedQueue routes messages onto a fixed set of buffered lanes by key. Messages
// sharing a key always land on the same lane and keep their publish order.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultNumPartitions = 8
	defaultBuffer        = 1024
)

// NewPartitionedQueue builds a queue; non-positive arguments fall back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition exposes lane i for its single consumer.
func (queue *PartitionedQueue[T]) Partition(i int) <-chan T { return queue.partitions[i] }

// Publish blocks while the lane is full, until ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case queue.partitions[idx] <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
