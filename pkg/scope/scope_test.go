package scope

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/diag"
)

func TestScoper_DeclareAndShadow(t *testing.T) {
	s := New()
	if _, ok := s.Declare("x", "Int", false, posAt(1)); !ok {
		t.Fatal("first declare of x should succeed")
	}
	if _, ok := s.Declare("x", "Int", false, posAt(2)); ok {
		t.Fatal("redeclaring x in the same frame should fail")
	}

	pop := s.Scoped()
	if _, ok := s.Declare("x", "String", false, posAt(3)); !ok {
		t.Fatal("declaring x in a nested frame should shadow, not collide")
	}
	v, _ := s.Lookup("x")
	if v.Type != "String" {
		t.Fatalf("innermost x should resolve first, got %v", v.Type)
	}
	pop()

	v, _ = s.Lookup("x")
	if v.Type != "Int" {
		t.Fatalf("after popping the nested frame, x should resolve to the outer binding, got %v", v.Type)
	}
}

func TestScoper_ReadableRequiresInitLevelAtOrBelowCurrent(t *testing.T) {
	s := New()
	v, _ := s.Declare("x", "Int", false, posAt(1))
	if !s.Readable(v) {
		t.Fatal("a variable should be readable in the frame that declared it")
	}
	s.PushScope()
	if !s.Readable(v) {
		t.Fatal("a variable from an outer frame should remain readable in a nested frame")
	}
}

func TestPathAnalyser_MutualExclusiveRequiresAllBranches(t *testing.T) {
	p := NewPathAnalyser()
	p.BeginBranch()
	p.Record(IncidentReturned)
	p.EndBranch()

	p.BeginBranch()
	// else-branch never returns
	p.EndBranch()

	p.EndMutualExclusiveBranches()
	if p.Certainly(IncidentReturned) {
		t.Fatal("Returned should not be certain when only one branch returns")
	}
	if !p.Potentially(IncidentReturned) {
		t.Fatal("Returned should be potential since at least one branch returns")
	}
}

func TestPathAnalyser_MutualExclusiveAllBranchesReturn(t *testing.T) {
	p := NewPathAnalyser()
	p.BeginBranch()
	p.Record(IncidentReturned)
	p.EndBranch()

	p.BeginBranch()
	p.Record(IncidentReturned)
	p.EndBranch()

	p.EndMutualExclusiveBranches()
	if !p.Certainly(IncidentReturned) {
		t.Fatal("Returned should be certain when every branch returns")
	}
}

func posAt(line int) diag.Position {
	return diag.Position{Line: line}
}
