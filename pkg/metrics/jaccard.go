package metrics

import (
	"errors"

	da "github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/util"
)

var ErrDegenerateMetric = errors.New("jaccard index undefined: both node sets are empty")

type NodeSet map[da.Index]struct{}

// NewNodeSet. route nodes with duplicates and order discarded
func NewNodeSet(route []da.Index) NodeSet {
	set := make(NodeSet, len(route))
	for _, u := range route {
		set[u] = struct{}{}
	}
	return set
}

// JaccardIndex. |s1 ∩ s2| / |s1 ∪ s2| rounded half to even to 3 decimals.
func JaccardIndex(s1, s2 NodeSet) (float64, error) {
	small, large := s1, s2
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for u := range small {
		if _, ok := large[u]; ok {
			intersection++
		}
	}
	union := len(s1) + len(s2) - intersection
	if union == 0 {
		return 0, ErrDegenerateMetric
	}
	return util.RoundHalfEven(float64(intersection)/float64(union), 3), nil
}

// Score. compare the observed and modeled routes of a user. an undefined jaccard is reported through Record.Defined.
func Score(user string, observed, modeled []da.Index, lengthReal, lengthCalc int) Record {
	rec := Record{
		User:       user,
		LengthReal: lengthReal,
		LengthCalc: lengthCalc,
		LengthDif:  util.Abs(lengthReal - lengthCalc),
	}

	jaccard, err := JaccardIndex(NewNodeSet(observed), NewNodeSet(modeled))
	if err == nil {
		rec.Jaccard = jaccard
		rec.Defined = true
	}
	return rec
}
