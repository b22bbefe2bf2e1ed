package sequence

import "math/rand"

const maxRandomStart = 1 << 16

// Halton generates low-discrepancy points by radical inversion of a
// counter in coprime prime bases, one base per coordinate. Start index
// randomization and coordinate-to-base permutation decorrelate
// independently constructed generators.
type Halton struct {
	bases []int
	perm  []int
	index []uint64
	point []float64
}

// NewHalton creates a generator producing n coordinates per draw.
// randomStart offsets each coordinate's counter randomly, randomPermute
// shuffles which prime base serves which coordinate. The seed fixes both
// randomizations, so equal seeds give identical sequences.
func NewHalton(n int, randomStart, randomPermute bool, seed int64) *Halton {
	rng := rand.New(rand.NewSource(seed))

	h := &Halton{
		bases: firstPrimes(n),
		perm:  make([]int, n),
		index: make([]uint64, n),
		point: make([]float64, n),
	}

	for k := 0; k < n; k++ {
		h.perm[k] = k
		h.index[k] = 0
	}
	if randomPermute {
		rng.Shuffle(n, func(i, j int) {
			h.perm[i], h.perm[j] = h.perm[j], h.perm[i]
		})
	}
	if randomStart {
		for k := 0; k < n; k++ {
			h.index[k] = uint64(rng.Intn(maxRandomStart))
		}
	}

	return h
}

// Dim returns the number of coordinates per draw.
func (h *Halton) Dim() int { return len(h.point) }

// Next advances every coordinate counter and recomputes the current draw.
func (h *Halton) Next() {
	for k := range h.point {
		h.index[k]++
		h.point[k] = radicalInverse(h.bases[h.perm[k]], h.index[k])
	}
}

// Coordinate returns coordinate k of the current draw, in (0,1).
// Next must have been called at least once.
func (h *Halton) Coordinate(k int) float64 {
	return h.point[k]
}

// radicalInverse mirrors the base-b digits of n around the radix point.
// Strictly positive for n >= 1 and always below 1.
func radicalInverse(base int, n uint64) float64 {
	b := uint64(base)
	inv := 1.0 / float64(base)
	f := inv
	r := 0.0
	for n > 0 {
		r += f * float64(n%b)
		n /= b
		f *= inv
	}
	return r
}

func firstPrimes(n int) []int {
	primes := make([]int, 0, n)
	for c := 2; len(primes) < n; c++ {
		isPrime := true
		for _, p := range primes {
			if p*p > c {
				break
			}
			if c%p == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			primes = append(primes, c)
		}
	}
	return primes
}
