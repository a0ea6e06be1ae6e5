package domain

// Queue is a bounded FIFO of board indices owned by one player.
type Queue struct {
	Cells [MaxPoofMarks]int
	Len   int
}

func (q Queue) Items() []int {
	items := make([]int, q.Len)
	copy(items, q.Cells[:q.Len])
	return items
}

func (q Queue) Full() bool {
	return q.Len == MaxPoofMarks
}

// Oldest returns the index that disappears next.
func (q Queue) Oldest() (int, bool) {
	if q.Len == 0 {
		return NoMove, false
	}
	return q.Cells[0], true
}

func (q Queue) Contains(index int) bool {
	for _, v := range q.Cells[:q.Len] {
		if v == index {
			return true
		}
	}
	return false
}

// Push appends index, evicting the oldest entry when the queue is already full.
func (q Queue) Push(index int) (next Queue, evicted int) {
	evicted = NoMove
	if q.Full() {
		evicted = q.Cells[0]
		copy(q.Cells[:], q.Cells[1:])
		q.Len--
	}
	q.Cells[q.Len] = index
	q.Len++
	return q, evicted
}

// History holds the poof move queues, one per player.
type History struct {
	First  Queue
	Second Queue
}

func (h History) Of(p Player) Queue {
	if p == Second {
		return h.Second
	}
	return h.First
}

func (h History) With(p Player, q Queue) History {
	if p == Second {
		h.Second = q
	} else {
		h.First = q
	}
	return h
}
