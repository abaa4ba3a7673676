package ports

// RandomSource supplies the randomness behind every simulated value.
// Tests substitute a deterministic sequence.
type RandomSource interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). It panics if n <= 0.
	IntN(n int) int
}
