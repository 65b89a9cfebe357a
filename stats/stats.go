// Package stats keeps running statistics over batches of automatic games.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance, updated one sample at a time
// with Welford's algorithm.
type Statistic struct {
	n    int
	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; it is 0 for fewer than two samples.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Proportion counts successes out of trials, such as games won out of
// games played. A draw counts as half a success.
type Proportion struct {
	successes float64
	trials    int
}

func (p *Proportion) Win()  { p.successes++; p.trials++ }
func (p *Proportion) Draw() { p.successes += 0.5; p.trials++ }
func (p *Proportion) Loss() { p.trials++ }

func (p *Proportion) Trials() int {
	return p.trials
}

func (p *Proportion) Rate() float64 {
	if p.trials == 0 {
		return 0
	}
	return p.successes / float64(p.trials)
}

// Interval returns the Wilson score interval around Rate at the given
// confidence, in percent.
func (p *Proportion) Interval(confidence float64) (float64, float64) {
	if p.trials == 0 {
		return 0, 1
	}
	z := ZVal(confidence)
	n := float64(p.trials)
	phat := p.Rate()
	denom := 1 + z*z/n
	center := (phat + z*z/(2*n)) / denom
	half := z * math.Sqrt(phat*(1-phat)/n+z*z/(4*n*n)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
