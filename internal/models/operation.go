package models

import (
	"go/types"
	"strings"
)

// Param is a single parameter of an operation
type Param struct {
	Name string
	Type types.Type
}

// Operation is one method a forwarding implementation must provide. Results
// may be empty ("no value"), in which case the forwarding call is a bare
// statement instead of a return.
type Operation struct {
	Name     string
	Params   []Param
	Results  []types.Type
	Variadic bool
}

// IsVoid reports whether the operation produces no values
func (o Operation) IsVoid() bool {
	return len(o.Results) == 0
}

// Key returns a canonical signature string. Two operations are the same
// operation exactly when their keys are equal; type names are fully
// qualified by import path so the key is stable across packages.
func (o Operation) Key() string {
	var b strings.Builder
	b.WriteString(o.Name)
	b.WriteByte('(')
	for i, p := range o.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		if o.Variadic && i == len(o.Params)-1 {
			b.WriteString("...")
		}
		b.WriteString(types.TypeString(p.Type, nil))
	}
	b.WriteByte(')')
	for i, r := range o.Results {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte(' ')
		b.WriteString(types.TypeString(r, nil))
	}
	return b.String()
}

// String returns a human-readable rendering used in diagnostics
func (o Operation) String() string {
	return o.Key()
}
