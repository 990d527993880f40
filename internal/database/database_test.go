package database_test

import (
	"errors"
	"testing"

	"svindex/internal/database"
	"svindex/internal/index"
	"svindex/internal/position"
	"svindex/internal/svparse"
	"svindex/internal/syntax"
)

const (
	topSource  = "module top;\n  mod_a inst1();\nendmodule\n"
	leafSource = "module mod_a;\nendmodule\n"
)

func parseTree(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	tree, err := svparse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tree
}

func update(t *testing.T, db *database.Database, path, src string) database.FileID {
	t.Helper()
	id, err := db.Update(path, parseTree(t, src))
	if err != nil {
		t.Fatalf("Update %s: %v", path, err)
	}
	return id
}

func at(doc string, row, col uint32) position.DocumentPosition {
	return position.DocumentPosition{
		Document: doc,
		Position: position.Position{Row: row, Col: col},
	}
}

func span(beginRow, beginCol, endRow, endCol uint32) position.Range {
	return position.Range{
		Begin: position.Position{Row: beginRow, Col: beginCol},
		End:   position.Position{Row: endRow, Col: endCol},
	}
}

func TestUpdateAssignsStableIDs(t *testing.T) {
	db := database.New()
	topID := update(t, db, "top.sv", topSource)
	leafID := update(t, db, "leaf.sv", leafSource)
	if topID == leafID {
		t.Fatalf("distinct paths share id %v", topID)
	}
	if again := update(t, db, "top.sv", topSource); again != topID {
		t.Errorf("top.sv id changed from %v to %v", topID, again)
	}
	if _, ok := db.Data(topID); !ok {
		t.Error("no data for top.sv")
	}
}

func TestGotoDefinitionAcrossFiles(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)
	update(t, db, "leaf.sv", leafSource)

	// from the mod_a type name in top.sv to the declaration in leaf.sv
	got, ok := db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("no definition for mod_a usage")
	}
	want := position.DocumentRange{Document: "leaf.sv", Range: span(0, 0, 1, 0)}
	if got != want {
		t.Errorf("definition = %v, want %v", got, want)
	}
}

func TestGotoDefinitionOnDeclaration(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)

	// the declaration's own name token resolves to its full span
	got, ok := db.GotoDefinition(at("top.sv", 0, 8))
	if !ok {
		t.Fatal("no definition on declaration name")
	}
	want := position.DocumentRange{Document: "top.sv", Range: span(0, 0, 2, 0)}
	if got != want {
		t.Errorf("definition = %v, want %v", got, want)
	}
}

func TestGotoDefinitionInstanceName(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)

	// an instance name has no better definition than itself
	got, ok := db.GotoDefinition(at("top.sv", 1, 10))
	if !ok {
		t.Fatal("no definition for instance name")
	}
	want := position.DocumentRange{Document: "top.sv", Range: span(1, 8, 1, 13)}
	if got != want {
		t.Errorf("definition = %v, want %v", got, want)
	}
}

func TestGotoDefinitionMisses(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)

	tests := []struct {
		name string
		req  position.DocumentPosition
	}{
		{"unknown path", at("elsewhere.sv", 0, 0)},
		{"no item at position", at("top.sv", 0, 0)},
		{"between tokens", at("top.sv", 1, 7)},
		{"undeclared module type", at("top.sv", 1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := db.GotoDefinition(tt.req); ok {
				t.Errorf("got %v, want a miss", got)
			}
		})
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)
	update(t, db, "leaf.sv", leafSource)

	before, ok := db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("no definition before re-update")
	}
	update(t, db, "leaf.sv", leafSource)
	after, ok := db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("no definition after re-update")
	}
	if before != after {
		t.Errorf("definition changed across identical updates: %v then %v", before, after)
	}
}

func TestUpdateRemovesDroppedDeclarations(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)
	update(t, db, "leaf.sv", leafSource)

	if _, ok := db.GotoDefinition(at("top.sv", 1, 3)); !ok {
		t.Fatal("mod_a should resolve while declared")
	}

	// leaf.sv no longer declares mod_a
	update(t, db, "leaf.sv", "module mod_b;\nendmodule\n")
	if got, ok := db.GotoDefinition(at("top.sv", 1, 3)); ok {
		t.Errorf("mod_a resolved to %v after its declaration was dropped", got)
	}
}

func TestUpdateLastWriterWins(t *testing.T) {
	db := database.New()
	update(t, db, "top.sv", topSource)
	update(t, db, "first.sv", leafSource)
	update(t, db, "second.sv", "// copy\nmodule mod_a;\nendmodule\n")

	got, ok := db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("mod_a should resolve")
	}
	if got.Document != "second.sv" {
		t.Errorf("resolved to %s, want the most recent declarer", got.Document)
	}

	// updating the earlier file flips ownership back
	update(t, db, "first.sv", leafSource)
	got, ok = db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("mod_a should still resolve")
	}
	if got.Document != "first.sv" {
		t.Errorf("resolved to %s, want first.sv after its re-update", got.Document)
	}
}

func TestFailedUpdateKeepsPreviousIndex(t *testing.T) {
	db := database.New()
	topID := update(t, db, "top.sv", topSource)
	update(t, db, "leaf.sv", leafSource)

	// a build rejection must not disturb the existing index
	broken := parseTree(t, "module top;\n  parameter W = 8;\nendmodule\n")
	id, err := db.Update("top.sv", broken)
	if !errors.Is(err, index.ErrUnsupportedConstruct) {
		t.Fatalf("got %v, want ErrUnsupportedConstruct", err)
	}
	if id != topID {
		t.Errorf("failed update returned id %v, want %v", id, topID)
	}

	got, ok := db.GotoDefinition(at("top.sv", 1, 3))
	if !ok {
		t.Fatal("previous index should still answer")
	}
	if got.Document != "leaf.sv" {
		t.Errorf("definition in %s, want leaf.sv", got.Document)
	}
}

func TestFailedFirstUpdateRegistersPath(t *testing.T) {
	db := database.New()
	broken := parseTree(t, "package p;\nendpackage\n")
	id, err := db.Update("pkg.sv", broken)
	if err == nil {
		t.Fatal("expected a build error")
	}
	if _, ok := db.Data(id); ok {
		t.Error("failed first update should leave no index data")
	}
	// the path is known even though indexing failed
	if again, err2 := db.Update("pkg.sv", parseTree(t, leafSource)); err2 != nil {
		t.Fatalf("retry: %v", err2)
	} else if again != id {
		t.Errorf("retry assigned id %v, want %v", again, id)
	}
}

func TestFileCatalog(t *testing.T) {
	c := database.NewFileCatalog()
	a := c.ResolveOrCreate("a.sv")
	b := c.ResolveOrCreate("b.sv")
	if a == b {
		t.Fatal("distinct paths share an id")
	}
	if got := c.ResolveOrCreate("a.sv"); got != a {
		t.Errorf("a.sv re-resolved to %v, want %v", got, a)
	}
	if id, ok := c.Lookup("b.sv"); !ok || id != b {
		t.Errorf("Lookup(b.sv) = %v, %v", id, ok)
	}
	if path, ok := c.Path(a); !ok || path != "a.sv" {
		t.Errorf("Path(%v) = %q, %v", a, path, ok)
	}
	if _, ok := c.Lookup("missing.sv"); ok {
		t.Error("unknown path resolved")
	}
	if _, ok := c.Path(database.FileID(99)); ok {
		t.Error("unknown id resolved")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}
