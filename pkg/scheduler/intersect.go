package scheduler

import "github.com/korjavin/introscheduler/pkg/interval"

// intersectAll folds the pairwise intersection over every participant's
// free sequence. The operation is commutative and associative, so the fold
// order does not change the result; iterating sorted participant ids just
// keeps runs reproducible.
func intersectAll(freeByParticipant map[string][]interval.Interval) []interval.Interval {
	var common []interval.Interval
	for i, id := range sortedKeys(freeByParticipant) {
		if i == 0 {
			common = freeByParticipant[id]
			continue
		}
		common = intersectPair(common, freeByParticipant[id])
		if len(common) == 0 {
			return nil
		}
	}
	return common
}

// intersectPair intersects two sorted, non-overlapping free sequences with
// the classic two-pointer sweep: emit the overlap, then advance whichever
// interval ends first.
func intersectPair(a, b []interval.Interval) []interval.Interval {
	var out []interval.Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if overlap, ok := a[i].Intersect(b[j]); ok {
			out = append(out, overlap)
		}
		if a[i].End.Before(b[j].End) {
			i++
		} else {
			j++
		}
	}
	return out
}
