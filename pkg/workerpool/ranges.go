package workerpool

// Range is an inclusive span [From, To] of a numeric search space.
type Range struct {
	Index int
	From  uint64
	To    uint64
}

// Ranges splits count consecutive values starting at start into spans of at most
// size values each, in ascending order. The caller guarantees start+count-1 does
// not overflow.
func Ranges(start, count, size uint64) []Range {
	if count == 0 || size == 0 {
		return nil
	}
	out := make([]Range, 0, count/size+1)
	for consumed := uint64(0); consumed < count; {
		n := size
		if left := count - consumed; left < n {
			n = left
		}
		from := start + consumed
		out = append(out, Range{Index: len(out), From: from, To: from + n - 1})
		consumed += n
	}
	return out
}
