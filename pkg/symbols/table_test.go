package symbols

import (
	"testing"

	"github.com/glyphlang/glyphc/pkg/diag"
	"github.com/glyphlang/glyphc/pkg/types"
)

func TestDefinitionTable_SuperOfAndConformsTo(t *testing.T) {
	dt := NewDefinitionTable()
	base := dt.Add(&Definition{Kind: DefClass, Name: "Animal"})
	protoID := dt.Add(&Definition{Kind: DefProtocol, Name: "Named"})
	dt.Get(base).Conformances = []*Conformance{{Protocol: &NominalRef{Def: protoID}}}

	sub := dt.Add(&Definition{Kind: DefClass, Name: "Dog", Super: &NominalRef{Def: base}})

	superID, ok := dt.SuperOf(sub)
	if !ok || superID != base {
		t.Fatalf("SuperOf(Dog) = (%v,%v), want (%v,true)", superID, ok, base)
	}

	conf := dt.ConformsTo(sub)
	if len(conf) != 1 || conf[0].Protocol != protoID {
		t.Fatalf("ConformsTo(Dog) should inherit Animal's conformance, got %#v", conf)
	}
}

func TestSymbolTable_DeclareCollision(t *testing.T) {
	st := NewSymbolTable()
	if !st.Declare(DefaultNamespace, "Foo", types.DefId(0), true) {
		t.Fatal("first Declare should succeed")
	}
	if st.Declare(DefaultNamespace, "Foo", types.DefId(1), true) {
		t.Fatal("colliding Declare should fail")
	}
}

func TestLoader_CircularImport(t *testing.T) {
	var loader *Loader
	loader = NewLoader(func(name string) (*Package, error) {
		switch name {
		case "p":
			if _, err := loader.Load("q", diag.Position{File: "p.glyph", Line: 1}); err != nil {
				return nil, err
			}
		case "q":
			if _, err := loader.Load("p", diag.Position{File: "q.glyph", Line: 1}); err != nil {
				return nil, err
			}
		}
		return NewPackage(name), nil
	})

	if _, err := loader.Load("p", diag.Position{}); err == nil {
		t.Fatal("expected a circular-import error, got nil")
	}
}
