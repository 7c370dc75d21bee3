package decomp

import "errors"

var (
	// ErrNotFinalized is returned by Validate when a required part of the
	// decomposition was never set.
	ErrNotFinalized = errors.New("decomp: decomposition is not finalized")

	// ErrBlockCount is returned when the declared block count does not
	// match the number of block subsets.
	ErrBlockCount = errors.New("decomp: declared block count does not match subsets")

	// ErrNotPartition is returned when the block and linking subsets do not
	// form an exact partition of the constraint or variable universe.
	ErrNotPartition = errors.New("decomp: subsets do not partition the index universe")

	// ErrEmptyBlock is returned when a block contains no constraints.
	ErrEmptyBlock = errors.New("decomp: empty block")
)
