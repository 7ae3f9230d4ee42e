// Package astdump renders a semantically analysed, boxing-inserted
// function as literal Go source describing its statement/expression
// tree and resolved types — a debugging snapshot of pkg/sema's output,
// the same jen.File-driven rendering pkg/codegen/codegen.go uses to
// emit a class's native backend, repointed here at the compiler's own
// internal representation instead of a runnable main package.
package astdump

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/dave/jennifer/jen"
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/symbols"
)

// Dump renders every method and initializer of def as a literal Go
// source file of nested map values, one var per function, for use in
// golden-file tests or interactive inspection (the `dump`
// subcommand).
func Dump(def *symbols.Definition) (string, error) {
	f := jen.NewFile("astdump")
	f.PackageComment("Code generated by glyphc's astdump; DO NOT EDIT.")
	f.Comment("// definition: " + def.Name)

	for _, name := range sortedKeys(def.Methods) {
		f.Var().Id(safeIdent("method_" + name)).Op("=").Add(dumpFunction(def.Methods[name]))
	}
	for _, name := range sortedKeys(def.Initializers) {
		f.Var().Id(safeIdent("init_" + name)).Op("=").Add(dumpFunction(def.Initializers[name]))
	}

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func dumpFunction(fn *ast.Function) *jen.Statement {
	dict := jen.Dict{
		jen.Id("Name"): jen.Lit(string(fn.Name)),
		jen.Id("Kind"): jen.Lit(fn.Kind.String()),
	}
	if fn.Body != nil {
		dict[jen.Id("Body")] = dumpBlock(fn.Body)
	}
	return jen.Map(jen.String()).Interface().Values(dict)
}

func dumpBlock(b *ast.Block) *jen.Statement {
	stmts := make([]jen.Code, 0, len(b.Statements))
	for _, s := range b.Statements {
		stmts = append(stmts, dumpStmt(s))
	}
	return jen.Index().Interface().Values(stmts...)
}

// dumpStmt renders one statement node as {"Kind": "<GoType>", ...typed
// fields...}; it only inspects the shapes relevant to a debug dump
// (expression child, resolved type of that expression), not a full
// re-expression of every statement field.
func dumpStmt(s ast.Stmt) jen.Code {
	dict := jen.Dict{jen.Id("Kind"): jen.Lit(fmt.Sprintf("%T", s))}
	if expr := exprOf(s); expr != nil {
		dict[jen.Id("Expr")] = dumpExpr(expr)
	}
	return jen.Map(jen.String()).Interface().Values(dict)
}

// exprOf extracts the single expression most statement kinds carry,
// for the debug dump's purposes (If and RepeatWhile give their
// condition, ForIn its iterable); statements with no such expression
// child (Superinitializer, a nested Block, …) render with just their Kind.
func exprOf(s ast.Stmt) ast.Expr {
	switch st := s.(type) {
	case *ast.Return:
		return st.Value
	case *ast.Raise:
		return st.Value
	case *ast.ExprStatement:
		return st.Expr
	case *ast.VariableDeclaration:
		return st.Value
	case *ast.FrozenDeclaration:
		return st.Value
	case *ast.VariableAssignment:
		return st.Value
	case *ast.InstanceVariableAssignment:
		return st.Value
	case *ast.If:
		return st.Condition
	case *ast.RepeatWhile:
		return st.Condition
	case *ast.ForIn:
		return st.Iterable
	case *ast.ErrorHandler:
		return st.Expr
	default:
		return nil
	}
}

func dumpExpr(e ast.Expr) jen.Code {
	if e == nil {
		return jen.Nil()
	}
	dict := jen.Dict{jen.Id("Kind"): jen.Lit(fmt.Sprintf("%T", e))}
	if t := e.Type(); t != nil {
		dict[jen.Id("Type")] = jen.Lit(t.String())
	}
	return jen.Map(jen.String()).Interface().Values(dict)
}

func safeIdent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 || (out[0] >= '0' && out[0] <= '9') {
		out = append([]rune{'_'}, out...)
	}
	return string(out)
}

func sortedKeys(m map[string]*ast.Function) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
