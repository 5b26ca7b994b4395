package usage

// SplitCores divides total across cores. The first cores-1 shares are drawn
// from [1, total/2]; the last share is whatever is left, so the shares always
// sum to total. A draw's upper bound is lowered when needed so that every
// later draw can still get 1ms and the remainder never goes negative.
// The result is shuffled before it is returned.
//
// Callers must ensure cores >= 2 and total >= max(2, cores-1); Config.Validate
// guarantees that for every total in CPUTime.
func SplitCores(total, cores int, src Source) []int {
	shares := make([]int, cores)
	drawn := cores - 1
	remaining := total

	for i := 0; i < drawn; i++ {
		hi := total / 2
		// leave 1ms for each draw still to come
		if budget := remaining - (drawn - 1 - i); budget < hi {
			hi = budget
		}
		v := 1 + src.IntN(hi)
		shares[i] = v
		remaining -= v
	}
	shares[drawn] = remaining

	src.Shuffle(len(shares), func(i, j int) {
		shares[i], shares[j] = shares[j], shares[i]
	})
	return shares
}
