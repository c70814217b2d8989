package classify

import (
	"math"
	"sort"
)

// EstimateTip returns the 95th-percentile start_height among heights
// strictly greater than MinRPCRelevanceHeight, or MinRPCRelevanceHeight
// if no height qualifies. Eligibility here is strictly ">", the same
// comparison IsRelevant applies to its height floor. The percentile uses
// the nearest-rank method: the ceil(0.95*n)-th smallest eligible height.
func EstimateTip(heights []int32) int32 {
	eligible := make([]int32, 0, len(heights))
	for _, h := range heights {
		if h > MinRPCRelevanceHeight {
			eligible = append(eligible, h)
		}
	}
	if len(eligible) == 0 {
		return MinRPCRelevanceHeight
	}

	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })

	idx := int(math.Ceil(float64(len(eligible))*0.95)) - 1
	if idx >= len(eligible) {
		idx = len(eligible) - 1
	}
	return eligible[idx]
}
