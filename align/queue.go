// Package align keeps lyric lines in step with the chord line above them.
//
// While a chord line is rendered, every chord that grew wider than the spaces
// after it could absorb pushes an Adjustment. The next lyric line pops them in
// the same order, left to right, inserting filler at each recorded column.
package align

import (
	"github.com/jsphweid/chordshift/util"
)

// Adjustment asks for Length filler runes before lyric column Start.
type Adjustment struct {
	Start  int
	Length int
}

type Queue struct {
	items []Adjustment
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(start, length int) {
	if length <= 0 {
		return
	}
	q.items = append(q.items, Adjustment{Start: start, Length: length})
}

func (q *Queue) Peek() (Adjustment, bool) {
	if len(q.items) == 0 {
		return Adjustment{}, false
	}
	return q.items[0], true
}

func (q *Queue) Pop() (Adjustment, bool) {
	a, ok := q.Peek()
	if ok {
		q.items = q.items[1:]
	}
	return a, ok
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Pending is the number of filler runes still owed.
func (q *Queue) Pending() uint64 {
	lengths := make([]int, 0, len(q.items))
	for _, a := range q.items {
		lengths = append(lengths, a.Length)
	}
	return util.Sum(lengths)
}

// Reset drops whatever was not drained and returns how many adjustments that
// was.
func (q *Queue) Reset() int {
	n := len(q.items)
	q.items = q.items[:0]
	return n
}

// Fill appends the head adjustment's filler to dst when it is due at lyric
// column col, and returns the advanced column. It is called once per lyric
// rune, so at most one adjustment fires per rune. The filler is a space when
// prev, the rune emitted just before, is a space (or 0 for none) and a hyphen
// otherwise, since then the filler splits a word.
func (q *Queue) Fill(dst []rune, col int, prev rune) ([]rune, int) {
	a, ok := q.Peek()
	if !ok || a.Start > col {
		return dst, col
	}
	filler := '-'
	if prev == ' ' || prev == 0 {
		filler = ' '
	}
	for i := 0; i < a.Length; i++ {
		dst = append(dst, filler)
	}
	q.Pop()
	return dst, col + a.Length
}
