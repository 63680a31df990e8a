package models

import (
	"go/types"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/marker"
)

// DelegationRequest is the validated payload of a delegation marker: an
// ordered, deduplicated list of contract references with sentinels removed.
type DelegationRequest struct {
	Entries []string
}

// ContractRef identifies one contract as it appears on a declaring type.
// Type is the interface type exactly as embedded (instantiated generics keep
// their type arguments); Named is the raw origin type used for matching
// requests against the implemented set.
type ContractRef struct {
	Type  types.Type
	Named *types.Named
}

// Name returns the contract's simple name
func (c ContractRef) Name() string {
	return c.Named.Obj().Name()
}

// String returns the contract type as declared, qualified by package name
func (c ContractRef) String() string {
	return types.TypeString(c.Type, func(p *types.Package) string {
		return p.Name()
	})
}

// DeclaringType is a marked struct type declaration, captured together with
// its type information and the location of its marker comment.
type DeclaringType struct {
	Name        string
	PackageName string
	PackagePath string
	Dir         string
	Named       *types.Named
	Struct      *types.Struct
	Marker      *marker.ParsedMarker
	Location    errors.SourceLocation
}

// ResolvedDelegation pairs a declaring type with its matched contracts, each
// assigned a positional synthetic field name. It is created only after
// validation succeeds and is consumed once by the synthesis engine.
type ResolvedDelegation struct {
	Declaring *DeclaringType
	Contracts []Pair[ContractRef, string]
}
