package emit

import (
	"bytes"
	"fmt"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/delegen/delegen/internal/errors"
	"github.com/delegen/delegen/internal/models"
)

// Header marks every emitted file as machine-generated, in the form the
// standard tooling recognizes.
const Header = "Code generated by delegen. DO NOT EDIT."

// FileName returns the output file name for a declaring type. The autogen
// prefix is what the cleaner keys on.
func FileName(declaringName string) string {
	return "autogen_" + strings.ToLower(declaringName) + "_delegate.go"
}

// Emitter renders generated type descriptions to Go source files
type Emitter struct {
	filer Filer
}

// New creates an emitter writing through the given filer
func New(filer Filer) *Emitter {
	return &Emitter{filer: filer}
}

// Emit renders one generated type and writes it next to its declaring type.
// Returns the path of the written file.
func (e *Emitter) Emit(gen *models.GeneratedType) (string, error) {
	src, err := Render(gen)
	if err != nil {
		return "", err
	}

	path := filepath.Join(gen.Dir, FileName(gen.DeclaringName))
	if err := e.filer.WriteFile(path, []byte(src)); err != nil {
		return "", errors.NewEmission(err, "failed to write %s", path).
			WithContext("type", gen.Name)
	}
	return path, nil
}

// Render produces the complete source text of one generated file. Rendering
// is deterministic: the same description always yields the same text.
func Render(gen *models.GeneratedType) (string, error) {
	f := jen.NewFilePathName(gen.PackagePath, gen.PackageName)
	f.HeaderComment(Header)

	contractNames := make([]string, len(gen.Contracts))
	for i, c := range gen.Contracts {
		contractNames[i] = c.String()
	}

	f.Commentf("%s is a forwarding base for %s. It provides %s by forwarding every call to the delegates supplied at construction.",
		gen.Name, gen.DeclaringName, strings.Join(contractNames, ", "))
	f.Type().Id(gen.Name).Do(typeParamDecls(gen)).StructFunc(func(g *jen.Group) {
		for _, field := range gen.Fields {
			g.Id(field.Name).Add(typeExpr(field.Contract.Type))
		}
	})

	// Interface guards only make sense on non-generic types; a generic base
	// has no single instantiation to assert against.
	if len(gen.TypeParams) == 0 {
		for _, c := range gen.Contracts {
			f.Var().Id("_").Add(typeExpr(c.Type)).Op("=").Parens(jen.Op("*").Id(gen.Name)).Parens(jen.Nil())
		}
	}

	f.Commentf("New%s creates the forwarding base. Delegates are bound in the order the contracts were requested and are not nil-checked.", gen.Name)
	f.Func().Id("New"+gen.Name).Do(typeParamDecls(gen)).ParamsFunc(func(g *jen.Group) {
		for _, field := range gen.Fields {
			g.Id(field.Name).Add(typeExpr(field.Contract.Type))
		}
	}).Op("*").Id(gen.Name).Do(typeParamRefs(gen)).Block(
		jen.Return(jen.Op("&").Id(gen.Name).Do(typeParamRefs(gen)).Values(jen.DictFunc(func(d jen.Dict) {
			for _, field := range gen.Fields {
				d[jen.Id(field.Name)] = jen.Id(field.Name)
			}
		}))),
	)

	for _, fwd := range gen.Operations {
		f.Add(forwardingMethod(gen, fwd))
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", errors.NewEmission(err, "failed to render %s", gen.Name)
	}
	return buf.String(), nil
}

// forwardingMethod renders one method of the generated type: same signature
// as the operation, body a single call on the owning delegate field.
func forwardingMethod(gen *models.GeneratedType, fwd models.ForwardingOp) *jen.Statement {
	op := fwd.Op
	names := argNames(op)

	method := jen.Func().Params(jen.Id("d").Op("*").Id(gen.Name).Do(typeParamRefs(gen))).Id(op.Name)

	method.ParamsFunc(func(g *jen.Group) {
		for i, p := range op.Params {
			if op.Variadic && i == len(op.Params)-1 {
				elem := p.Type.(*types.Slice).Elem()
				g.Id(names[i]).Op("...").Add(typeExpr(elem))
				continue
			}
			g.Id(names[i]).Add(typeExpr(p.Type))
		}
	})

	switch len(op.Results) {
	case 0:
	case 1:
		method.Add(typeExpr(op.Results[0]))
	default:
		method.ParamsFunc(func(g *jen.Group) {
			for _, r := range op.Results {
				g.Add(typeExpr(r))
			}
		})
	}

	call := jen.Id("d").Dot(fwd.FieldName).Dot(op.Name).CallFunc(func(g *jen.Group) {
		for i := range op.Params {
			if op.Variadic && i == len(op.Params)-1 {
				g.Id(names[i]).Op("...")
				continue
			}
			g.Id(names[i])
		}
	})

	if op.IsVoid() {
		return method.Block(call)
	}
	return method.Block(jen.Return(call))
}

// argNames returns usable parameter names for an operation. Declared names
// are kept; blank, missing, duplicate, or receiver-shadowing names are
// replaced positionally.
func argNames(op models.Operation) []string {
	names := make([]string, len(op.Params))
	used := map[string]bool{"d": true}
	next := 0
	for i, p := range op.Params {
		name := p.Name
		// A declared name may itself look like a fallback, so the fallback
		// advances until it is free.
		for name == "" || name == "_" || used[name] {
			name = fmt.Sprintf("arg%d", next)
			next++
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// typeParamDecls renders the declaration-site type parameter list, with
// constraints, when the generated type is generic.
func typeParamDecls(gen *models.GeneratedType) func(*jen.Statement) {
	return func(s *jen.Statement) {
		if len(gen.TypeParams) == 0 {
			return
		}
		items := make([]jen.Code, len(gen.TypeParams))
		for i, tp := range gen.TypeParams {
			items[i] = jen.Id(tp.Name).Add(typeExpr(tp.Constraint))
		}
		s.Index(items...)
	}
}

// typeParamRefs renders the use-site type argument list, names only
func typeParamRefs(gen *models.GeneratedType) func(*jen.Statement) {
	return func(s *jen.Statement) {
		if len(gen.TypeParams) == 0 {
			return
		}
		items := make([]jen.Code, len(gen.TypeParams))
		for i, tp := range gen.TypeParams {
			items[i] = jen.Id(tp.Name)
		}
		s.Index(items...)
	}
}

// typeExpr renders a go/types type as source. Qualified names go through
// Qual so the rendered file's import block stays in step with what the
// signatures reference.
func typeExpr(t types.Type) *jen.Statement {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(t.Name())

	case *types.Alias:
		return typeExpr(types.Unalias(t))

	case *types.Named:
		obj := t.Obj()
		var base *jen.Statement
		if obj.Pkg() == nil {
			base = jen.Id(obj.Name())
		} else {
			base = jen.Qual(obj.Pkg().Path(), obj.Name())
		}
		if args := t.TypeArgs(); args != nil && args.Len() > 0 {
			items := make([]jen.Code, args.Len())
			for i := 0; i < args.Len(); i++ {
				items[i] = typeExpr(args.At(i))
			}
			base.Index(items...)
		}
		return base

	case *types.TypeParam:
		return jen.Id(t.Obj().Name())

	case *types.Pointer:
		return jen.Op("*").Add(typeExpr(t.Elem()))

	case *types.Slice:
		return jen.Index().Add(typeExpr(t.Elem()))

	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(typeExpr(t.Elem()))

	case *types.Map:
		return jen.Map(typeExpr(t.Key())).Add(typeExpr(t.Elem()))

	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(typeExpr(t.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(typeExpr(t.Elem()))
		default:
			return jen.Chan().Add(typeExpr(t.Elem()))
		}

	case *types.Signature:
		return jen.Func().Add(signatureExpr(t))

	case *types.Interface:
		if t.Empty() {
			return jen.Any()
		}
		return jen.InterfaceFunc(func(g *jen.Group) {
			for i := 0; i < t.NumEmbeddeds(); i++ {
				g.Add(typeExpr(t.EmbeddedType(i)))
			}
			for i := 0; i < t.NumExplicitMethods(); i++ {
				m := t.ExplicitMethod(i)
				g.Id(m.Name()).Add(signatureExpr(m.Type().(*types.Signature)))
			}
		})

	case *types.Union:
		stmt := jen.Empty()
		for i := 0; i < t.Len(); i++ {
			term := t.Term(i)
			if i > 0 {
				stmt.Op("|")
			}
			if term.Tilde() {
				stmt.Op("~")
			}
			stmt.Add(typeExpr(term.Type()))
		}
		return stmt

	case *types.Struct:
		return jen.StructFunc(func(g *jen.Group) {
			for i := 0; i < t.NumFields(); i++ {
				field := t.Field(i)
				if field.Embedded() {
					g.Add(typeExpr(field.Type()))
					continue
				}
				g.Id(field.Name()).Add(typeExpr(field.Type()))
			}
		})

	default:
		return jen.Id(types.TypeString(t, nil))
	}
}

// signatureExpr renders a bare signature, parameters and results, without
// the func keyword or a receiver. Parameter names are dropped.
func signatureExpr(sig *types.Signature) *jen.Statement {
	stmt := jen.ParamsFunc(func(g *jen.Group) {
		for i := 0; i < sig.Params().Len(); i++ {
			p := sig.Params().At(i)
			if sig.Variadic() && i == sig.Params().Len()-1 {
				g.Op("...").Add(typeExpr(p.Type().(*types.Slice).Elem()))
				continue
			}
			g.Add(typeExpr(p.Type()))
		}
	})

	switch sig.Results().Len() {
	case 0:
	case 1:
		stmt.Add(typeExpr(sig.Results().At(0).Type()))
	default:
		stmt.ParamsFunc(func(g *jen.Group) {
			for i := 0; i < sig.Results().Len(); i++ {
				g.Add(typeExpr(sig.Results().At(i).Type()))
			}
		})
	}
	return stmt
}
