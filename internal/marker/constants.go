package marker

// Prefix identifies delegen marker comments, e.g. //delegen::delegate
const Prefix = "delegen::"

// DirectiveDelegate requests generation of a forwarding base type
const DirectiveDelegate = "delegate"

// Parameter names for the delegate directive. Exactly one of the two must
// be present on a marker.
const (
	ParamContract  = "Contract"  // single contract reference
	ParamContracts = "Contracts" // ordered list of contract references
)

// Sentinel is the "absent value" placeholder. References equal to the
// sentinel are dropped during request extraction rather than rejected.
const Sentinel = "_"
