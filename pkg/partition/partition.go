// Package partition provides the membership representation of a community
// partition, the canonical label-order transform used to deduplicate
// equivalent labelings, and a bounded cache of canonical forms.
package partition

import (
	"fmt"
	"strconv"
	"strings"
)

// Membership assigns a community label to each vertex, in vertex order.
type Membership []int

// Clone returns a copy of the membership.
func (m Membership) Clone() Membership {
	out := make(Membership, len(m))
	copy(out, m)
	return out
}

// Equal reports whether two memberships are identical label-for-label.
func (m Membership) Equal(other Membership) bool {
	if len(m) != len(other) {
		return false
	}
	for i := range m {
		if m[i] != other[i] {
			return false
		}
	}
	return true
}

// NumCommunities returns the number of distinct community labels. Labels
// must form the dense range [0, K).
func (m Membership) NumCommunities() (int, error) {
	if len(m) == 0 {
		return 0, fmt.Errorf("empty membership")
	}
	maxLabel := -1
	seen := make(map[int]struct{}, len(m))
	for v, c := range m {
		if c < 0 {
			return 0, fmt.Errorf("vertex %d has negative community label %d", v, c)
		}
		seen[c] = struct{}{}
		if c > maxLabel {
			maxLabel = c
		}
	}
	if len(seen) != maxLabel+1 {
		return 0, fmt.Errorf("community labels are not a dense range: %d distinct labels, max label %d",
			len(seen), maxLabel)
	}
	return maxLabel + 1, nil
}

// Communities groups vertices by community label. Labels must be dense.
func (m Membership) Communities() ([][]int, error) {
	k, err := m.NumCommunities()
	if err != nil {
		return nil, err
	}
	communities := make([][]int, k)
	for v, c := range m {
		communities[c] = append(communities[c], v)
	}
	return communities, nil
}

// Canonical relabels communities in order of first occurrence, so any two
// memberships describing the same partition map to the same sequence.
func Canonical(m Membership) Membership {
	relabel := make(map[int]int, len(m))
	out := make(Membership, len(m))
	next := 0
	for i, c := range m {
		label, ok := relabel[c]
		if !ok {
			label = next
			relabel[c] = label
			next++
		}
		out[i] = label
	}
	return out
}

// Key renders a membership as a compact string usable as a map key. Combine
// with Canonical to key on the partition rather than the labeling.
func Key(m Membership) string {
	var sb strings.Builder
	for i, c := range m {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}
