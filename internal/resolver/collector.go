package resolver

import (
	"go/types"
	"sort"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/models"
)

// CollectOperations gathers the full operation closure of one contract: its
// explicit methods plus every method reachable through embedded interfaces,
// at any depth. A method name appearing more than once in the closure
// collapses onto its shallowest occurrence. Operations come back sorted by
// name so downstream output is deterministic.
func CollectOperations(contract models.ContractRef) ([]models.Operation, error) {
	iface, ok := contract.Type.Underlying().(*types.Interface)
	if !ok {
		return nil, errors.NewInternalState("contract %s is not an interface", contract.Name())
	}

	seen := make(map[string]bool)
	var ops []models.Operation
	collect(iface, seen, &ops)

	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops, nil
}

func collect(iface *types.Interface, seen map[string]bool, ops *[]models.Operation) {
	for i := 0; i < iface.NumExplicitMethods(); i++ {
		fn := iface.ExplicitMethod(i)
		if seen[fn.Name()] {
			continue
		}
		seen[fn.Name()] = true
		*ops = append(*ops, operationOf(fn))
	}
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		embedded, ok := iface.EmbeddedType(i).Underlying().(*types.Interface)
		if !ok {
			continue
		}
		collect(embedded, seen, ops)
	}
}

func operationOf(fn *types.Func) models.Operation {
	sig := fn.Type().(*types.Signature)

	params := make([]models.Param, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		params[i] = models.Param{Name: p.Name(), Type: p.Type()}
	}

	results := make([]types.Type, sig.Results().Len())
	for i := 0; i < sig.Results().Len(); i++ {
		results[i] = sig.Results().At(i).Type()
	}

	return models.Operation{
		Name:     fn.Name(),
		Params:   params,
		Results:  results,
		Variadic: sig.Variadic(),
	}
}
