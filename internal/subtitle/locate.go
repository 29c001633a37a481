package subtitle

// Locate returns the index of the cue active at t, or -1 when none is.
// last is the previously resolved index and acts as a locality hint:
// the hinted cue is checked first, then its neighbours in the direction
// playback moved, and only then the whole sequence is binary searched.
// cues must be sorted by start time. When cues overlap, the first match
// in that search order wins.
func Locate(t float64, cues []Cue, last int) int {
	if last >= 0 && last < len(cues) {
		cur := cues[last]
		if cur.Contains(t) {
			return last
		}

		if t > cur.End {
			for i := last + 1; i < len(cues) && cues[i].Start <= t; i++ {
				if cues[i].Contains(t) {
					return i
				}
			}
		} else if t < cur.Start {
			for i := last - 1; i >= 0 && cues[i].End >= t; i-- {
				if cues[i].Contains(t) {
					return i
				}
			}
		}
	}

	return search(t, cues)
}

// binary search using range containment as the predicate
func search(t float64, cues []Cue) int {
	low, high := 0, len(cues)-1
	for low <= high {
		mid := int(uint(low+high) >> 1)
		cue := cues[mid]
		switch {
		case t < cue.Start:
			high = mid - 1
		case t > cue.End:
			low = mid + 1
		default:
			return mid
		}
	}
	return -1
}
