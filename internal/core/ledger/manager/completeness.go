package manager

import (
	"fmt"
	"sort"
	"strings"
)

// SeqRange is an inclusive range of snapshot sequence numbers.
type SeqRange struct {
	Start, End uint32
}

// Contains checks if a sequence number is within this range.
func (r SeqRange) Contains(seq uint32) bool {
	return seq >= r.Start && seq <= r.End
}

// String returns a string representation of the range.
func (r SeqRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// SnapshotSet tracks which ledger sequences have persisted snapshots, as a
// sorted list of non-overlapping ranges.
type SnapshotSet struct {
	ranges []SeqRange
}

// NewSnapshotSet creates an empty tracker.
func NewSnapshotSet() *SnapshotSet {
	return &SnapshotSet{ranges: make([]SeqRange, 0)}
}

// Add marks one sequence as persisted.
func (s *SnapshotSet) Add(seq uint32) {
	s.AddRange(seq, seq)
}

// AddRange marks an inclusive range of sequences as persisted.
func (s *SnapshotSet) AddRange(start, end uint32) {
	if start > end {
		return
	}
	s.ranges = mergeRange(s.ranges, SeqRange{Start: start, End: end})
}

// Contains checks whether a sequence has a persisted snapshot.
func (s *SnapshotSet) Contains(seq uint32) bool {
	idx := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].End >= seq
	})
	return idx < len(s.ranges) && s.ranges[idx].Contains(seq)
}

// Range returns the overall min and max persisted sequences.
func (s *SnapshotSet) Range() (min, max uint32, hasAny bool) {
	if len(s.ranges) == 0 {
		return 0, 0, false
	}
	return s.ranges[0].Start, s.ranges[len(s.ranges)-1].End, true
}

// String renders the persisted ranges, "1-40,42" style.
func (s *SnapshotSet) String() string {
	if len(s.ranges) == 0 {
		return "empty"
	}
	parts := make([]string, 0, len(s.ranges))
	for _, r := range s.ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}

func mergeRange(ranges []SeqRange, add SeqRange) []SeqRange {
	if len(ranges) == 0 {
		return []SeqRange{add}
	}

	var result []SeqRange
	merged := false

	for i, existing := range ranges {
		if !merged && add.End+1 < existing.Start {
			result = append(result, add)
			result = append(result, ranges[i:]...)
			merged = true
			break
		}

		if !merged && overlapOrAdjacent(add, existing) {
			add.Start = minSeq(add.Start, existing.Start)
			add.End = maxSeq(add.End, existing.End)

			for i+1 < len(ranges) && overlapOrAdjacent(add, ranges[i+1]) {
				add.End = maxSeq(add.End, ranges[i+1].End)
				i++
			}

			result = append(result, add)
			result = append(result, ranges[i+1:]...)
			merged = true
			break
		}

		result = append(result, existing)
	}

	if !merged {
		result = append(result, add)
	}
	return result
}

func overlapOrAdjacent(a, b SeqRange) bool {
	return a.Start <= b.End+1 && b.Start <= a.End+1
}

func minSeq(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func maxSeq(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
