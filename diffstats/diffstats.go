// Package diffstats measures the error between original and reconstructed
// data, as reported by the zfp command with -s.
package diffstats

import (
	"fmt"
	"math"

	"github.com/arloliu/zfp/codec"
	"github.com/arloliu/zfp/errs"
)

// Stats summarizes the reconstruction error of a data set.
type Stats struct {
	// N is the number of values compared.
	N int
	// Range is max - min of the original values.
	Range float64
	// RMSE is the root mean square error.
	RMSE float64
	// NRMSE is RMSE divided by Range, 0 when Range is 0.
	NRMSE float64
	// MaxErr is the largest absolute error.
	MaxErr float64
	// PSNR is the peak signal to noise ratio in dB, 20·log10(Range / (2·RMSE)).
	// It is +Inf for an exact reconstruction.
	PSNR float64
	// RSquared is the coefficient of determination of recon against orig.
	RSquared float64
}

// String formats the statistics the way the zfp command prints them.
func (s Stats) String() string {
	return fmt.Sprintf("n=%d range=%.9g rmse=%.9g nrmse=%.9g maxe=%.9g psnr=%.2f r2=%.6f",
		s.N, s.Range, s.RMSE, s.NRMSE, s.MaxErr, s.PSNR, s.RSquared)
}

// Compare computes the error statistics of recon against orig in a single
// pass.
//
// Returns:
//   - Stats: The statistics, all zero for empty input
//   - error: errs.ErrDataSize if the slices differ in length
func Compare[T codec.Scalar](orig, recon []T) (Stats, error) {
	if len(orig) != len(recon) {
		return Stats{}, fmt.Errorf("%w: %d original values, %d reconstructed", errs.ErrDataSize, len(orig), len(recon))
	}
	n := len(orig)
	if n == 0 {
		return Stats{}, nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	mean := 0.0
	for _, v := range orig {
		x := float64(v)
		lo = min(lo, x)
		hi = max(hi, x)
		mean += x
	}
	mean /= float64(n)

	ssTot := 0.0 // total sum of squares
	ssRes := 0.0 // residual sum of squares
	maxErr := 0.0
	for i := range orig {
		x := float64(orig[i])
		d := x - float64(recon[i])
		ssRes += d * d
		ssTot += (x - mean) * (x - mean)
		maxErr = max(maxErr, math.Abs(d))
	}

	s := Stats{
		N:      n,
		Range:  hi - lo,
		RMSE:   math.Sqrt(ssRes / float64(n)),
		MaxErr: maxErr,
	}
	if s.Range > 0 {
		s.NRMSE = s.RMSE / s.Range
	}
	switch {
	case s.RMSE == 0:
		s.PSNR = math.Inf(1)
	case s.Range > 0:
		s.PSNR = 20 * math.Log10(s.Range/(2*s.RMSE))
	}
	if ssTot > 0 {
		s.RSquared = 1 - ssRes/ssTot
	}

	return s, nil
}
