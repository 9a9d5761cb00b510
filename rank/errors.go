package rank

import (
	"errors"

	"github.com/katalvlaran/lossrank/weight"
)

// Sentinel errors returned by the ranking pipeline.
//
// ErrInvalidInput and ErrInvalidParameter are the weight package's sentinels,
// so errors.Is matches no matter which layer detected the problem.
var (
	// ErrInvalidInput indicates malformed input: nil, non-square or non-finite
	// matrices, a team list that does not match the matrix, or a bad margin.
	ErrInvalidInput = weight.ErrInvalidInput

	// ErrInvalidParameter indicates transform parameters that make the
	// margin→weight curve undefined.
	ErrInvalidParameter = weight.ErrInvalidParameter

	// ErrNonConvergence indicates that the power iteration hit its iteration
	// cap without the residual dropping to the tolerance.
	ErrNonConvergence = errors.New("rank: power iteration did not converge")
)
