package resolver

import (
	"fmt"
	"go/types"
	"strings"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/marker"
	"github.com/delegen/delegen/internal/models"
)

// ExtractRequest validates a declaration's marker payload and produces the
// delegation request. Exactly one of the marker's two payload slots must be
// populated; sentinel entries are dropped and duplicates collapse onto their
// first occurrence.
func ExtractRequest(decl *models.DeclaringType) (*models.DelegationRequest, error) {
	m := decl.Marker
	if m.SingleSet == m.MultiSet {
		return nil, errors.NewConfiguration("exactly one of -%s and -%s must be set on %s",
			marker.ParamContract, marker.ParamContracts, decl.Name).
			WithLocation(decl.Location).
			WithContext("marker", m.Raw).
			WithSuggestion("use -" + marker.ParamContract + "=<ref> for a single contract").
			WithSuggestion("use -" + marker.ParamContracts + "=<ref>,... for several")
	}

	raw := m.Multi
	if m.SingleSet {
		raw = []string{m.Single}
	}

	seen := make(map[string]bool, len(raw))
	entries := make([]string, 0, len(raw))
	for _, ref := range raw {
		if ref == marker.Sentinel || seen[ref] {
			continue
		}
		seen[ref] = true
		entries = append(entries, ref)
	}

	if len(entries) == 0 {
		return nil, errors.NewConfiguration("delegation request on %s names no contracts", decl.Name).
			WithLocation(decl.Location).
			WithContext("marker", m.Raw).
			WithSuggestion("name at least one contract reference besides the sentinel")
	}

	return &models.DelegationRequest{Entries: entries}, nil
}

// ImplementedContracts returns the contracts a declaring type provides, in
// declaration order: every embedded interface field of the struct, followed
// by the interfaces each of those embeds one level down. Deeper transitive
// supercontracts are deliberately out of reach, matching the one-level
// supertype rule.
func ImplementedContracts(decl *models.DeclaringType) []models.ContractRef {
	var contracts []models.ContractRef
	seen := make(map[string]bool)

	add := func(typ types.Type) {
		named, ok := dereference(typ).(*types.Named)
		if !ok {
			return
		}
		if _, isIface := named.Underlying().(*types.Interface); !isIface {
			return
		}
		key := types.TypeString(named, nil)
		if seen[key] {
			return
		}
		seen[key] = true
		contracts = append(contracts, models.ContractRef{Type: named, Named: named.Origin()})
	}

	var direct []*types.Named
	for i := 0; i < decl.Struct.NumFields(); i++ {
		field := decl.Struct.Field(i)
		if !field.Embedded() {
			continue
		}
		named, ok := dereference(field.Type()).(*types.Named)
		if !ok {
			continue
		}
		if _, isIface := named.Underlying().(*types.Interface); !isIface {
			continue
		}
		direct = append(direct, named)
		add(named)
	}

	for _, named := range direct {
		iface := named.Underlying().(*types.Interface)
		for i := 0; i < iface.NumEmbeddeds(); i++ {
			add(iface.EmbeddedType(i))
		}
	}

	return contracts
}

// Resolve matches a delegation request against the declaring type's
// implemented contracts. Every matched contract is paired with a positional
// field name; a request whose match count differs from its entry count is a
// resolution failure.
func Resolve(decl *models.DeclaringType, req *models.DelegationRequest) (*models.ResolvedDelegation, error) {
	implemented := ImplementedContracts(decl)

	var matched []models.ContractRef
	var unmatched []string
	for _, entry := range req.Entries {
		hit := false
		for _, contract := range implemented {
			if matchesRef(contract, entry) {
				matched = append(matched, contract)
				hit = true
			}
		}
		if !hit {
			unmatched = append(unmatched, entry)
		}
	}

	// An ambiguous reference matching two contracts can balance the count
	// for a missing one, so unmatched entries fail on their own.
	if len(matched) != len(req.Entries) || len(unmatched) > 0 {
		available := make([]string, len(implemented))
		for i, c := range implemented {
			available[i] = c.String()
		}
		err := errors.NewResolution("type %s implements %d of the %d requested contracts",
			decl.Name, len(matched), len(req.Entries)).
			WithLocation(decl.Location).
			WithContext("requested", req.Entries).
			WithContext("implemented", available)
		if len(unmatched) > 0 {
			err = err.WithContext("unmatched", unmatched).
				WithSuggestion("embed the missing contracts as fields of " + decl.Name)
		} else {
			err = err.WithSuggestion("a reference matching several contracts must be requested once per match")
		}
		return nil, err
	}

	contracts := make([]models.Pair[models.ContractRef, string], len(matched))
	for i, contract := range matched {
		contracts[i] = models.PairOf(contract, fmt.Sprintf("delegate%d", i))
	}

	return &models.ResolvedDelegation{Declaring: decl, Contracts: contracts}, nil
}

// matchesRef reports whether a request entry names the given contract. Bare
// names match the contract's simple name; qualified names additionally match
// the contract's package name.
func matchesRef(contract models.ContractRef, entry string) bool {
	dot := strings.LastIndex(entry, ".")
	if dot < 0 {
		return entry == contract.Name()
	}
	pkgName := entry[:dot]
	name := entry[dot+1:]
	obj := contract.Named.Obj()
	return name == obj.Name() && obj.Pkg() != nil && pkgName == obj.Pkg().Name()
}

func dereference(typ types.Type) types.Type {
	if ptr, ok := typ.(*types.Pointer); ok {
		return ptr.Elem()
	}
	return typ
}
