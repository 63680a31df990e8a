package models

import "go/types"

// TypeParam is one type parameter carried onto the generated type, taken
// verbatim from the declaring type's parameter list.
type TypeParam struct {
	Name       string
	Constraint types.Type
}

// Field is one delegate field of the generated type
type Field struct {
	Name     string
	Contract ContractRef
}

// ForwardingOp binds one collected operation to the delegate field that
// receives the forwarded call.
type ForwardingOp struct {
	FieldName string
	Op        Operation
}

// GeneratedType is the in-memory description of one generated forwarding
// base type. It is built once per declaring type, handed to the emission
// backend, and discarded; nothing survives across processing rounds.
type GeneratedType struct {
	PackageName   string
	PackagePath   string
	Dir           string
	DeclaringName string
	Name          string
	TypeParams    []TypeParam
	Contracts     []ContractRef
	Fields        []Field
	Operations    []ForwardingOp
}

// ConstructorParams returns the constructor parameter list: one parameter
// per field, same order, same names.
func (g *GeneratedType) ConstructorParams() []Param {
	params := make([]Param, len(g.Fields))
	for i, f := range g.Fields {
		params[i] = Param{Name: f.Name, Type: f.Contract.Type}
	}
	return params
}
