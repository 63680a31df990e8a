package marker

import "github.com/delegen/delegen/internal/errors"

// ParsedMarker is the raw payload of one delegation marker comment. Both
// payload slots are recorded as parsed; the exclusive-or constraint between
// them is validated later, during request extraction, so that configuration
// problems carry the declaring type's context.
type ParsedMarker struct {
	Directive string

	// Single is the value of -Contract, valid only when SingleSet is true
	Single    string
	SingleSet bool

	// Multi is the value list of -Contracts, valid only when MultiSet is true
	Multi    []string
	MultiSet bool

	Location errors.SourceLocation
	Raw      string
}
