// SPDX-License-Identifier: MIT

package classify

// Role is the decomposition fate a class suggests for its members.
type Role int8

const (
	// RoleAll leaves members free for any assignment.
	RoleAll Role = iota
	// RoleLinking suggests members as linking elements.
	RoleLinking
	// RoleMaster suggests members for the master border.
	RoleMaster
	// RoleBlock suggests members for block interiors.
	RoleBlock
)

// String returns the lowercase role token.
func (r Role) String() string {
	switch r {
	case RoleAll:
		return "all"
	case RoleLinking:
		return "linking"
	case RoleMaster:
		return "master"
	case RoleBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Kind says which index universe a classifier partitions.
type Kind int8

const (
	// KindVar marks a classifier over variable indices.
	KindVar Kind = iota
	// KindCons marks a classifier over constraint indices.
	KindCons
)

// String returns "var" or "cons".
func (k Kind) String() string {
	if k == KindCons {
		return "cons"
	}
	return "var"
}
