package progress

import "github.com/alexanderramin/learntrail/internal/domain"

// Position locates the current activity in a sequence. Index is -1 when the
// current activity is not part of the sequence; nil Prev/Next mean that
// direction is disabled.
type Position struct {
	Index int
	Prev  *ActivityRef
	Next  *ActivityRef
}

// Found reports whether the current activity was located.
func (p Position) Found() bool { return p.Index >= 0 }

// Locate finds currentActivityUUID (prefixed or clean) in seq. The first exact
// match wins.
func Locate(seq Sequence, currentActivityUUID string) Position {
	pos := Position{Index: -1}
	want := domain.CleanActivityUUID(currentActivityUUID)
	if want == "" {
		return pos
	}
	for i, ref := range seq {
		if ref.CleanUUID == want {
			pos.Index = i
			break
		}
	}
	if pos.Index < 0 {
		return pos
	}
	pos.Prev = seq.At(pos.Index - 1)
	pos.Next = seq.At(pos.Index + 1)
	return pos
}
