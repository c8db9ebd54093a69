package randoms

import (
	"math"
	"math/rand"
	"pinto/internal/failure"
	"time"
)

var (
	minUnix = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnix = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

type Source struct {
	rng  *rand.Rand
	seed int64
}

func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

func (s *Source) Seed() int64 {
	return s.seed
}

func (s *Source) IntRange(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// TwoDistinctBelow returns two different indices in [0, n), uniformly
// among all ordered pairs.
func (s *Source) TwoDistinctBelow(n int) (int, int, error) {
	if n < 2 {
		return 0, 0, failure.Configf("cannot pick two distinct values from a domain of %d", n)
	}
	i := s.rng.Intn(n)
	j := s.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j, nil
}

func (s *Source) Bool() bool {
	return s.rng.Intn(2) == 1
}

func (s *Source) Int() int         { return int(s.rng.Uint64()) }
func (s *Source) Int8() int8       { return int8(s.rng.Uint32()) }
func (s *Source) Int16() int16     { return int16(s.rng.Uint32()) }
func (s *Source) Int32() int32     { return int32(s.rng.Uint32()) }
func (s *Source) Int64() int64     { return int64(s.rng.Uint64()) }
func (s *Source) Uint() uint       { return uint(s.rng.Uint64()) }
func (s *Source) Uint8() uint8     { return uint8(s.rng.Uint32()) }
func (s *Source) Uint16() uint16   { return uint16(s.rng.Uint32()) }
func (s *Source) Uint32() uint32   { return s.rng.Uint32() }
func (s *Source) Uint64() uint64   { return s.rng.Uint64() }
func (s *Source) Uintptr() uintptr { return uintptr(s.rng.Uint64()) }

// Float64 draws any finite float64 bit pattern, so the whole domain
// including subnormals and negative zero is reachable.
func (s *Source) Float64() float64 {
	for {
		f := math.Float64frombits(s.rng.Uint64())
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
}

func (s *Source) Float32() float32 {
	for {
		f := math.Float32frombits(s.rng.Uint32())
		if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) {
			return f
		}
	}
}

func (s *Source) Complex64() complex64 {
	return complex(s.Float32(), s.Float32())
}

func (s *Source) Complex128() complex128 {
	return complex(s.Float64(), s.Float64())
}

// Read fills p with random bytes. It always succeeds, which lets a Source
// stand in wherever an io.Reader of entropy is expected.
func (s *Source) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := s.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}

// Time returns a UTC instant between years 1 and 9999 with nanosecond
// precision.
func (s *Source) Time() time.Time {
	sec := minUnix + s.rng.Int63n(maxUnix-minUnix+1)
	return time.Unix(sec, s.rng.Int63n(int64(time.Second))).UTC()
}
