// Package validate implements the two post-parse validation passes spec.md
// §4.4 calls for: a reserved-keyword check over names that would shadow a
// language keyword, and a declared-type-source check that rejects unknown
// type names. Modeled on original_source/aiscript-engine-parser's
// plugins/validate_type.rs Visitor/RecursiveVisitor pattern, adapted to a
// plain Go AST-walking function pair (no dynamic-dispatch visitor interface
// needed, since the node set is closed and small).
package validate

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
)

// reservedWords may not appear as an identifier, namespace name, function
// property name, attribute name, meta name, object-literal key, or
// for/each iteration variable, per spec.md §4.4.
var reservedWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"as", "async", "attr", "attribute", "await", "catch", "class",
		"component", "constructor", "dictionary", "enum", "export",
		"finally", "fn", "hash", "in", "interface", "out", "private",
		"public", "ref", "static", "struct", "table", "this", "throw",
		"trait", "try", "undefined", "use", "using", "when", "yield",
		"import", "is", "meta", "module", "namespace", "new",
	} {
		reservedWords[w] = true
	}
}

func isReserved(name string) bool { return reservedWords[name] }

func isLiteralKeyword(name string) bool {
	return name == "null" || name == "true" || name == "false"
}

// Program runs both validation passes over a parsed Program, returning the
// first error found.
func Program(prog *ast.Program) error {
	for _, item := range prog.Items {
		if err := node(item); err != nil {
			return err
		}
	}
	return nil
}

func checkName(kind string, name string, loc ast.Loc) error {
	if isReserved(name) {
		return aerr.NewSyntax(fmt.Sprintf("%s cannot be a reserved word: '%s'", kind, name), loc.Start)
	}
	return nil
}

func checkDestName(d ast.Dest) error {
	switch v := d.(type) {
	case *ast.IdentDest:
		n := v.Name.String8()
		if isLiteralKeyword(n) {
			return aerr.NewSyntax(fmt.Sprintf("cannot use '%s' as a destination", n), v.Loc().Start)
		}
		return checkName("identifier", n, v.Loc())
	case *ast.ArrDest:
		for _, it := range v.Items {
			if err := checkDestName(it); err != nil {
				return err
			}
		}
	case *ast.ObjDest:
		for _, e := range v.Entries {
			if err := checkName("object-literal key", e.Key.String8(), v.Loc()); err != nil {
				return err
			}
			if err := checkDestName(e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func node(n ast.Node) error {
	switch v := n.(type) {
	case *ast.Namespace:
		if err := checkName("namespace name", v.Name.String8(), v.Loc()); err != nil {
			return err
		}
		for _, m := range v.Members {
			if err := node(m); err != nil {
				return err
			}
		}
	case *ast.Meta:
		if v.Name != nil {
			if err := checkName("meta name", v.Name.String8(), v.Loc()); err != nil {
				return err
			}
		}
		return expr(v.Expr)
	case *ast.Definition:
		if err := checkDestName(v.Dest); err != nil {
			return err
		}
		if err := typeSource(v.Type, v.Loc()); err != nil {
			return err
		}
		for _, a := range v.Attributes {
			if err := checkName("attribute name", a.Name.String8(), a.Loc()); err != nil {
				return err
			}
			if err := expr(a.Value); err != nil {
				return err
			}
		}
		return expr(v.Expr)
	case *ast.Return:
		return expr(v.Expr)
	case *ast.Each:
		if err := checkDestName(v.Dest); err != nil {
			return err
		}
		if err := expr(v.Iter); err != nil {
			return err
		}
		return node(v.Body)
	case *ast.For:
		if v.Kind == ast.ForRange {
			if err := checkName("for variable", v.Var.String8(), v.Loc()); err != nil {
				return err
			}
			if err := expr(v.From); err != nil {
				return err
			}
		}
		if err := expr(v.To); err != nil {
			return err
		}
		return node(v.Body)
	case *ast.Loop:
		for _, s := range v.Body {
			if err := node(s); err != nil {
				return err
			}
		}
	case *ast.Assign:
		if err := expr(v.Dest); err != nil {
			return err
		}
		return expr(v.Expr)
	case *ast.ExprStatement:
		return expr(v.Expr)
	case *ast.Break, *ast.Continue:
		return nil
	case ast.Expression:
		return expr(v)
	}
	return nil
}

func expr(e ast.Expression) error {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *ast.If:
		if err := expr(v.Cond); err != nil {
			return err
		}
		if err := expr(v.Then); err != nil {
			return err
		}
		for _, el := range v.Elifs {
			if err := expr(el.Cond); err != nil {
				return err
			}
			if err := expr(el.Then); err != nil {
				return err
			}
		}
		return expr(v.Else)
	case *ast.Fn:
		for _, param := range v.Params {
			if err := checkName("identifier", param.Name.String8(), v.Loc()); err != nil {
				return err
			}
			if err := typeSource(param.Type, v.Loc()); err != nil {
				return err
			}
			if err := expr(param.Default); err != nil {
				return err
			}
		}
		if err := typeSource(v.ResultType, v.Loc()); err != nil {
			return err
		}
		for _, s := range v.Body {
			if err := node(s); err != nil {
				return err
			}
		}
	case *ast.Match:
		if err := expr(v.Subject); err != nil {
			return err
		}
		for _, c := range v.Cases {
			if err := expr(c.Pattern); err != nil {
				return err
			}
			if err := expr(c.Body); err != nil {
				return err
			}
		}
		return expr(v.Default)
	case *ast.Block:
		for _, s := range v.Body {
			if err := node(s); err != nil {
				return err
			}
		}
	case *ast.Tmpl:
		for _, el := range v.Elements {
			if el.Expr != nil {
				if err := expr(el.Expr); err != nil {
					return err
				}
			}
		}
	case *ast.Obj:
		for _, entry := range v.Entries {
			if err := checkName("object-literal key", entry.Key.String8(), v.Loc()); err != nil {
				return err
			}
			if err := expr(entry.Value); err != nil {
				return err
			}
		}
	case *ast.Arr:
		for _, item := range v.Items {
			if err := expr(item); err != nil {
				return err
			}
		}
	case *ast.Not:
		return expr(v.Expr)
	case *ast.Identifier:
		for _, seg := range v.Path.Segments {
			if err := checkName("identifier", seg.String8(), v.Loc()); err != nil {
				return err
			}
		}
	case *ast.Call:
		if err := expr(v.Callee); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := expr(a); err != nil {
				return err
			}
		}
	case *ast.Index:
		if err := expr(v.Target); err != nil {
			return err
		}
		return expr(v.Index)
	case *ast.Prop:
		if err := checkName("function property name", v.Name.String8(), v.Loc()); err != nil {
			return err
		}
		return expr(v.Target)
	case *ast.Binary:
		if err := expr(v.Left); err != nil {
			return err
		}
		return expr(v.Right)
	}
	return nil
}

func typeSource(t ast.TypeSource, loc ast.Loc) error {
	switch {
	case t.IsZero():
		return nil
	case t.Func != nil:
		for _, a := range t.Func.Args {
			if err := typeSource(a, loc); err != nil {
				return err
			}
		}
		if t.Func.Result != nil {
			return typeSource(*t.Func.Result, loc)
		}
		return nil
	case t.Named != nil:
		name := t.Named.Name.String8()
		switch name {
		case "null", "bool", "num", "str", "any", "void":
			return nil
		case "arr", "obj":
			if t.Named.Inner != nil {
				return typeSource(*t.Named.Inner, loc)
			}
			return nil
		default:
			return aerr.NewSyntax(fmt.Sprintf("Unknown type: '%s'", t.Pretty()), loc.Start)
		}
	}
	return nil
}
