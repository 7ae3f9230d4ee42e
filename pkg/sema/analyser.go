// Package sema is the per-application SemanticAnalyser: per-function bodies
// are type-checked against a TypeExpectation, calls are resolved and
// validated, and boxing-insertion reconciles storage mismatches
// once a node's type is known. The Analyser owns the analysis_queue
// and is grounded on procyon's pkg/codegen.generator — a single
// owning struct built by a package-level constructor, driven through a
// fixed sequence of passes (here: Prepare per type, then Analyze per
// queued function) rather than procyon's one-class-at-a-time
// `Generate`.
package sema

import (
	"github.com/glyphlang/glyphc/pkg/ast"
	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/scope"
	"github.com/glyphlang/glyphc/pkg/symbols"
	"github.com/glyphlang/glyphc/pkg/types"
)

// queuedFunction pairs a function with the definition it is owned by,
// the analysis_queue's element.
type queuedFunction struct {
	fn  *ast.Function
	def *symbols.Definition
}

// Analyser is the per-application semantic-analysis driver.
type Analyser struct {
	Defs    *symbols.DefinitionTable
	Symbols *symbols.SymbolTable // current package's table, set by pkg/app before Drain
	Sink    *diag.Sink

	queue []queuedFunction
}

// NewAnalyser builds an Analyser over a shared definition arena,
// recording diagnostics into sink (the application's
// diagnostic sink, aggregated with go-multierror one level up in
// pkg/app).
func NewAnalyser(defs *symbols.DefinitionTable, sink *diag.Sink) *Analyser {
	return &Analyser{Defs: defs, Sink: sink}
}

// Enqueue adds a function to the analysis_queue, called when its
// owning type is prepared (the preparation pass) or when a boxing
// layer is synthesised.
func (a *Analyser) Enqueue(fn *ast.Function, def *symbols.Definition) {
	a.queue = append(a.queue, queuedFunction{fn: fn, def: def})
}

// Drain pops the analysis_queue until empty, per this main loop:
// one function's failure is caught and recorded so it doesn't abort
// the pass.
func (a *Analyser) Drain() {
	for len(a.queue) > 0 {
		qf := a.queue[0]
		a.queue = a.queue[1:]
		if err := a.AnalyzeFunction(qf.fn, qf.def); err != nil {
			if de, ok := err.(*diag.Error); ok {
				a.Sink.Add(de)
			} else {
				a.Sink.Add(diag.New(diag.KindTypeError, diag.CodeIncompatibleTypes, qf.fn.Position, "%v", err))
			}
		}
	}
}

// funcScope bundles the per-function state threaded through analysis:
// the variable scoper, the path analyser, and the function's generic
// context.
type funcScope struct {
	scoper *scope.Scoper
	path   *scope.PathAnalyser
	ctx    *types.Context
}

// AnalyzeFunction runs the seven per-function analysis steps.
func (a *Analyser) AnalyzeFunction(fn *ast.Function, def *symbols.Definition) error {
	fs := &funcScope{scoper: scope.New(), path: scope.NewPathAnalyser(), ctx: &types.Context{}}

	// Step 1: argument scope.
	for _, p := range fn.Params {
		paramType, err := a.resolveTypeExpr(p.Type, def)
		if err != nil {
			return err
		}
		if _, ok := fs.scoper.Declare(string(p.Name), &paramType, false, p.Position); !ok {
			return diag.New(diag.KindScopeError, diag.CodeRedeclaration, p.Position, "parameter %s already declared", string(p.Name))
		}
	}
	if len(fn.AutoAssigns) > 0 {
		prelude := make([]ast.Stmt, 0, len(fn.AutoAssigns))
		for _, name := range fn.AutoAssigns {
			prelude = append(prelude, &ast.InstanceVariableAssignment{
				Position: fn.Position,
				Name:     name,
				Value:    &ast.GetVariable{ExprBase: ast.At(fn.Position), Name: name},
			})
		}
		if fn.Body != nil {
			fn.Body.Statements = append(prelude, fn.Body.Statements...)
		}
	}

	// Step 2: body traversal, type-checking and boxing insertion.
	if fn.Body != nil {
		if err := a.analyzeBlock(fn.Body, fs, def, fn); err != nil {
			return err
		}
	}

	// Step 4 (initializer completeness) / Step 6 (return completeness).
	if err := a.checkCompleteness(fn, def, fs); err != nil {
		return err
	}

	return nil
}

func (a *Analyser) analyzeBlock(b *ast.Block, fs *funcScope, def *symbols.Definition, fn *ast.Function) error {
	defer fs.scoper.Scoped()()
	for _, stmt := range b.Statements {
		if err := a.analyzeStmt(stmt, fs, def, fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyser) analyzeStmt(stmt ast.Stmt, fs *funcScope, def *symbols.Definition, fn *ast.Function) error {
	switch s := stmt.(type) {
	case *ast.Return:
		fs.path.Record(scope.IncidentReturned)
		if s.Value != nil {
			resultType, err := a.resolveTypeExpr(fn.ReturnType, def)
			if err != nil {
				return err
			}
			v, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{Type: resultType, HasType: true})
			if err != nil {
				return err
			}
			s.Value = v
		}
		return nil
	case *ast.Raise:
		v, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Value = v
		return nil
	case *ast.Superinitializer:
		fs.path.Record(scope.IncidentSuperCalled)
		for i, arg := range s.Args {
			na, err := a.analyzeExpr(arg, fs, def, TypeExpectation{})
			if err != nil {
				return err
			}
			s.Args[i] = na
		}
		return nil
	case *ast.If:
		cond, err := a.analyzeExpr(s.Condition, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Condition = cond
		fs.path.BeginBranch()
		if err := a.analyzeBlock(s.Then, fs, def, fn); err != nil {
			return err
		}
		fs.path.EndBranch()
		for i := range s.ElseIfs {
			eicond, err := a.analyzeExpr(s.ElseIfs[i].Condition, fs, def, TypeExpectation{})
			if err != nil {
				return err
			}
			s.ElseIfs[i].Condition = eicond
			fs.path.BeginBranch()
			if err := a.analyzeBlock(s.ElseIfs[i].Then, fs, def, fn); err != nil {
				return err
			}
			fs.path.EndBranch()
		}
		if s.Else != nil {
			fs.path.BeginBranch()
			if err := a.analyzeBlock(s.Else, fs, def, fn); err != nil {
				return err
			}
			fs.path.EndBranch()
			fs.path.EndMutualExclusiveBranches()
		} else {
			fs.path.EndUncertainBranches()
		}
		return nil
	case *ast.RepeatWhile:
		cond, err := a.analyzeExpr(s.Condition, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Condition = cond
		fs.path.BeginBranch()
		berr := a.analyzeBlock(s.Body, fs, def, fn)
		fs.path.EndBranch()
		fs.path.EndUncertainBranches()
		return berr
	case *ast.ForIn:
		iterable, err := a.analyzeExpr(s.Iterable, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Iterable = iterable
		defer fs.scoper.Scoped()()
		fs.scoper.Declare(string(s.VariableName), nil, false, s.Position)
		fs.path.BeginBranch()
		berr := a.analyzeBlock(s.Body, fs, def, fn)
		fs.path.EndBranch()
		fs.path.EndUncertainBranches()
		return berr
	case *ast.ErrorHandler:
		expr, err := a.analyzeExpr(s.Expr, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Expr = expr
		defer fs.scoper.Scoped()()
		fs.scoper.Declare(string(s.BindingName), nil, false, s.Position)
		if err := a.analyzeBlock(s.SuccessBlock, fs, def, fn); err != nil {
			return err
		}
		if s.ErrorBlock != nil {
			return a.analyzeBlock(s.ErrorBlock, fs, def, fn)
		}
		return nil
	case *ast.VariableDeclaration:
		v, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Value = v
		_, ok := fs.scoper.Declare(string(s.Name), s.Value.Type(), false, s.Position)
		if !ok {
			return diag.New(diag.KindScopeError, diag.CodeRedeclaration, s.Position, "variable %s already declared", string(s.Name))
		}
		return nil
	case *ast.FrozenDeclaration:
		v, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Value = v
		_, ok := fs.scoper.Declare(string(s.Name), s.Value.Type(), true, s.Position)
		if !ok {
			return diag.New(diag.KindScopeError, diag.CodeRedeclaration, s.Position, "variable %s already declared", string(s.Name))
		}
		return nil
	case *ast.VariableAssignment:
		vr, ok := fs.scoper.Lookup(string(s.Name))
		if !ok {
			return diag.New(diag.KindScopeError, diag.CodeVariableNotFound, s.Position, "variable %s not found", string(s.Name))
		}
		if vr.Frozen {
			return diag.New(diag.KindScopeError, diag.CodeFrozenMutation, s.Position, "cannot reassign frozen variable %s", string(s.Name))
		}
		vr.Mutated = true
		val, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Value = val
		return nil
	case *ast.InstanceVariableAssignment:
		fs.scoper.MarkInstanceVarInitialized(string(s.Name))
		val, err := a.analyzeExpr(s.Value, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Value = val
		return nil
	case *ast.ExprStatement:
		val, err := a.analyzeExpr(s.Expr, fs, def, TypeExpectation{})
		if err != nil {
			return err
		}
		s.Expr = val
		return nil
	default:
		return nil
	}
}

