package marker

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/delegen/delegen/internal/errors"
)

// Parser parses delegen marker comments using a participle grammar
type Parser struct {
	parser *participle.Parser[markerAST]
}

// markerAST is the grammar root: //delegen::<directive> <params>
type markerAST struct {
	Comment   string     `parser:"@Comment"`
	Tool      string     `parser:"@Tool"`
	Separator string     `parser:"@Separator"`
	Directive string     `parser:"@Ident"`
	Params    []paramAST `parser:"@@*"`
}

// paramAST is a single -Name=ref[,ref...] parameter
type paramAST struct {
	Name   string   `parser:"Dash @Ident"`
	Values []string `parser:"(Equals @Ident (Comma @Ident)*)?"`
}

// NewParser creates a new marker parser
func NewParser() *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//`},
		{Name: "Tool", Pattern: `delegen`},
		{Name: "Separator", Pattern: `::`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[markerAST](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &Parser{parser: parser}
}

// IsMarker reports whether a comment line carries a delegen marker. It only
// inspects the prefix; a true result does not imply the marker is valid.
func IsMarker(comment string) bool {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return false
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	return strings.HasPrefix(text, Prefix)
}

// Parse parses a single marker comment line. The location is recorded on the
// result and on any error so problems point at the declaration's source.
func (p *Parser) Parse(comment string, location errors.SourceLocation) (*ParsedMarker, error) {
	ast, err := p.parser.ParseString(location.File, strings.TrimSpace(comment))
	if err != nil {
		return nil, errors.NewSyntax("malformed marker comment: %v", err).
			WithLocation(location).
			WithContext("comment", comment).
			WithSuggestion("expected //delegen::delegate -Contract=<ref> or -Contracts=<ref>,...")
	}

	if ast.Directive != DirectiveDelegate {
		return nil, errors.NewSyntax("unknown marker directive %q", ast.Directive).
			WithLocation(location).
			WithSuggestion("the only supported directive is //delegen::delegate")
	}

	parsed := &ParsedMarker{
		Directive: ast.Directive,
		Location:  location,
		Raw:       comment,
	}

	for _, param := range ast.Params {
		switch param.Name {
		case ParamContract:
			if parsed.SingleSet {
				return nil, errors.NewSyntax("duplicate -%s parameter", ParamContract).
					WithLocation(location)
			}
			if len(param.Values) != 1 {
				return nil, errors.NewSyntax("-%s takes exactly one contract reference", ParamContract).
					WithLocation(location).
					WithSuggestion("use -" + ParamContracts + " to delegate multiple contracts")
			}
			parsed.Single = param.Values[0]
			parsed.SingleSet = true

		case ParamContracts:
			if parsed.MultiSet {
				return nil, errors.NewSyntax("duplicate -%s parameter", ParamContracts).
					WithLocation(location)
			}
			if len(param.Values) == 0 {
				return nil, errors.NewSyntax("-%s requires at least one contract reference", ParamContracts).
					WithLocation(location)
			}
			parsed.Multi = param.Values
			parsed.MultiSet = true

		default:
			return nil, errors.NewSyntax("unknown marker parameter -%s", param.Name).
				WithLocation(location).
				WithSuggestion("supported parameters: -" + ParamContract + ", -" + ParamContracts)
		}
	}

	return parsed, nil
}
