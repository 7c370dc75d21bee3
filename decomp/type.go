package decomp

// Type classifies the coarse shape of a finalized decomposition.
type Type int8

const (
	// TypeUnknown marks a decomposition whose shape has not been derived,
	// typically because it is not finalized yet.
	TypeUnknown Type = iota

	// TypeDiagonal has independent blocks and an empty border.
	TypeDiagonal

	// TypeBordered has master constraints but no linking variables.
	TypeBordered

	// TypeArrowhead has linking variables (and possibly master constraints).
	TypeArrowhead

	// TypeStaircase is a chained structure where consecutive blocks share
	// variables. It is never derived automatically; a detector that builds
	// one declares it through OverrideType.
	TypeStaircase
)

// String returns the lowercase token used in structure files and logs.
func (t Type) String() string {
	switch t {
	case TypeDiagonal:
		return "diagonal"
	case TypeBordered:
		return "bordered"
	case TypeArrowhead:
		return "arrowhead"
	case TypeStaircase:
		return "staircase"
	default:
		return "unknown"
	}
}
