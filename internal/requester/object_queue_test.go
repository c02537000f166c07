package requester

import (
	"testing"
	"time"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueHash(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func TestObjectQueueCursorFairness(t *testing.T) {
	// given
	q := newObjectQueue()
	for i := byte(1); i <= 6; i++ {
		q.add(queueHash(i))
	}

	// when drained in bounded slices
	first := q.next(2)
	second := q.next(2)
	third := q.next(2)

	// then each pass resumes where the previous stopped
	require.Equal(t, []chainhash.Hash{queueHash(1), queueHash(2)}, first)
	require.Equal(t, []chainhash.Hash{queueHash(3), queueHash(4)}, second)
	require.Equal(t, []chainhash.Hash{queueHash(5), queueHash(6)}, third)

	// and the cursor wraps around
	require.Equal(t, []chainhash.Hash{queueHash(1), queueHash(2)}, q.next(2))
}

func TestObjectQueueRemove(t *testing.T) {
	// given
	q := newObjectQueue()
	for i := byte(1); i <= 4; i++ {
		q.add(queueHash(i))
	}

	// when
	q.remove(queueHash(2))
	q.add(queueHash(2)) // re-adding goes to the back

	// then removed entries are skipped
	require.Equal(t, []chainhash.Hash{queueHash(1), queueHash(3), queueHash(4), queueHash(2)}, q.next(10))
	require.Equal(t, 4, q.len())
}

func TestObjectQueueDuplicateAdd(t *testing.T) {
	q := newObjectQueue()
	q.add(queueHash(1))
	q.add(queueHash(1))

	require.Equal(t, 1, q.len())
	require.Equal(t, []chainhash.Hash{queueHash(1)}, q.next(10))
}

func TestObjectQueueCompaction(t *testing.T) {
	// given a queue dominated by tombstones
	q := newObjectQueue()
	for i := byte(1); i <= 10; i++ {
		q.add(queueHash(i))
	}
	for i := byte(1); i <= 8; i++ {
		q.remove(queueHash(i))
	}

	// then live entries survive compaction in order
	require.Equal(t, 2, q.len())
	require.Equal(t, []chainhash.Hash{queueHash(9), queueHash(10)}, q.next(10))
}

func TestObjectQueueEmpty(t *testing.T) {
	q := newObjectQueue()

	assert.Nil(t, q.next(5))

	q.add(queueHash(1))
	q.clear()
	assert.Nil(t, q.next(5))
	assert.Equal(t, 0, q.len())
}

func TestLeakyBucket(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("burst drains the bucket", func(t *testing.T) {
		b := newLeakyBucket(3, 1, start)

		require.True(t, b.try(1, start))
		require.True(t, b.try(1, start))
		require.True(t, b.try(1, start))
		require.False(t, b.try(1, start))
	})

	t.Run("refills over time up to the cap", func(t *testing.T) {
		b := newLeakyBucket(3, 1, start)
		for i := 0; i < 3; i++ {
			require.True(t, b.try(1, start))
		}

		// one token per second
		require.True(t, b.try(1, start.Add(time.Second)))
		require.False(t, b.try(1, start.Add(time.Second)))

		// a long idle period refills to the cap, not beyond
		later := start.Add(time.Hour)
		for i := 0; i < 3; i++ {
			require.True(t, b.try(1, later))
		}
		require.False(t, b.try(1, later))
	})

	t.Run("reset restores the full burst", func(t *testing.T) {
		b := newLeakyBucket(2, 1, start)
		require.True(t, b.try(2, start))
		require.False(t, b.try(1, start))

		b.reset(start)
		require.True(t, b.try(2, start))
	})
}
