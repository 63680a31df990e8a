package synth

import (
	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/models"
)

// GeneratedPrefix is prepended to the declaring type's name to form the name
// of the forwarding base type.
const GeneratedPrefix = "Delegated"

// TypeName returns the generated type name for a declaring type name
func TypeName(declaringName string) string {
	return GeneratedPrefix + declaringName
}

// ConstructorName returns the generated constructor name for a declaring
// type name.
func ConstructorName(declaringName string) string {
	return "New" + TypeName(declaringName)
}

// Build turns a resolved delegation and its per-contract operation closures
// into the description of one generated type. The operations slice is
// parallel to the resolution's contract list. Building is pure: the same
// inputs always describe the same type.
func Build(res *models.ResolvedDelegation, operations [][]models.Operation) (*models.GeneratedType, error) {
	decl := res.Declaring
	if len(operations) != len(res.Contracts) {
		return nil, errors.NewInternalState("operation closures out of step with contracts on %s: %d vs %d",
			decl.Name, len(operations), len(res.Contracts))
	}

	gen := &models.GeneratedType{
		PackageName:   decl.PackageName,
		PackagePath:   decl.PackagePath,
		Dir:           decl.Dir,
		DeclaringName: decl.Name,
		Name:          TypeName(decl.Name),
	}

	if params := decl.Named.TypeParams(); params != nil {
		for i := 0; i < params.Len(); i++ {
			p := params.At(i)
			gen.TypeParams = append(gen.TypeParams, models.TypeParam{
				Name:       p.Obj().Name(),
				Constraint: p.Constraint(),
			})
		}
	}

	ownerOf := make(map[string]models.Pair[models.ContractRef, string])
	for i, pair := range res.Contracts {
		contract := pair.First()
		fieldName := pair.Second()

		gen.Contracts = append(gen.Contracts, contract)
		gen.Fields = append(gen.Fields, models.Field{Name: fieldName, Contract: contract})

		for _, op := range operations[i] {
			if owner, taken := ownerOf[op.Name]; taken {
				return nil, errors.NewCollision("operation %s is provided by both %s and %s on %s",
					op.Name, owner.First().String(), contract.String(), decl.Name).
					WithLocation(decl.Location).
					WithContext("operation", op.Key()).
					WithSuggestion("request only one of the colliding contracts, or split the declaring type")
			}
			ownerOf[op.Name] = models.PairOf(contract, fieldName)
			gen.Operations = append(gen.Operations, models.ForwardingOp{FieldName: fieldName, Op: op})
		}
	}

	return gen, nil
}
