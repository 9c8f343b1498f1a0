package expiry

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

type item struct {
	id        uuid.UUID
	expiresAt time.Time
}

// expiryHeap implements heap.Interface ordered by expiresAt, then id.
type expiryHeap []item

func (h expiryHeap) Len() int { return len(h) }

func (h expiryHeap) Less(i, j int) bool {
	if !h[i].expiresAt.Equal(h[j].expiresAt) {
		return h[i].expiresAt.Before(h[j].expiresAt)
	}
	return bytes.Compare(h[i].id[:], h[j].id[:]) < 0
}

func (h expiryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *expiryHeap) Push(x any) { *h = append(*h, x.(item)) }

func (h *expiryHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func (h expiryHeap) peek() (item, bool) {
	if len(h) == 0 {
		return item{}, false
	}
	return h[0], true
}
