package index

import (
	"errors"
	"fmt"

	"svindex/internal/position"
	"svindex/internal/semantic"
	"svindex/internal/syntax"
)

// ErrUnsupportedConstruct reports a syntactic form the builder does
// not model yet. It fails the index build for the one file containing
// the construct and nothing else.
var ErrUnsupportedConstruct = errors.New("unsupported construct")

// builder accumulates one file's index during the tree walk.
type builder struct {
	tree *syntax.Tree
	file *File
}

// Build walks a file's syntax tree into a fresh per-file index. Any
// error leaves no partial result: the caller keeps whatever index it
// had before.
func Build(tree *syntax.Tree) (*File, error) {
	b := &builder{
		tree: tree,
		file: &File{
			lines:     position.NewLineIndex(tree),
			store:     semantic.NewStore(),
			locations: &semantic.LocationIndex{},
			declared:  make(map[string]semantic.ItemID),
		},
	}
	for _, desc := range tree.Root.Descriptions {
		if err := b.description(desc); err != nil {
			return nil, err
		}
	}
	return b.file, nil
}

func (b *builder) description(desc syntax.Description) error {
	switch desc.Kind {
	case syntax.KindModuleDecl:
		return b.moduleDecl(desc.Module)
	case syntax.KindPackageDecl, syntax.KindInterfaceDecl, syntax.KindProgramDecl,
		syntax.KindTimeunitsDecl, syntax.KindPlainItem,
		syntax.KindModuleInstantiation, syntax.KindGenerateRegion,
		syntax.KindGateInstantiation, syntax.KindUDPInstantiation,
		syntax.KindParameterDecl, syntax.KindSpecparamDecl,
		syntax.KindSpecifyBlock, syntax.KindNestedModuleDecl:
		return b.unsupported(desc.Kind.String(), desc.At)
	}
	return b.unsupported(desc.Kind.String(), desc.At)
}

func (b *builder) moduleDecl(decl *syntax.ModuleDecl) error {
	switch decl.Form {
	case syntax.FormNonANSI, syntax.FormANSI:
	case syntax.FormWildcard, syntax.FormExternNonANSI, syntax.FormExternANSI:
		return b.unsupported(decl.Form.String(), decl.Keyword)
	default:
		return b.unsupported(decl.Form.String(), decl.Keyword)
	}

	name := b.tree.TextTrim(decl.Name)

	// The declaration item spans the whole module, keyword through
	// endmodule; its index entry sits on the name token so body items
	// keep their own non-overlapping entries.
	begin, err := b.file.lines.LocateToPosition(decl.Keyword)
	if err != nil {
		return err
	}
	end, err := b.file.lines.LocateToPosition(decl.EndKeyword)
	if err != nil {
		return err
	}
	nameRange, err := b.file.lines.TokenRange(decl.Name)
	if err != nil {
		return err
	}

	item := semantic.ModuleIdentifier(name, position.Range{Begin: begin, End: end})
	id, err := b.insert(item, nameRange)
	if err != nil {
		return err
	}
	b.file.declared[name] = id

	for _, bodyItem := range decl.Body {
		if err := b.bodyItem(bodyItem); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) bodyItem(item syntax.ModuleItem) error {
	switch item.Kind {
	case syntax.KindModuleInstantiation:
		return b.instantiation(item.Inst)
	case syntax.KindPlainItem:
		return nil
	case syntax.KindGenerateRegion, syntax.KindGateInstantiation,
		syntax.KindUDPInstantiation, syntax.KindParameterDecl,
		syntax.KindSpecparamDecl, syntax.KindSpecifyBlock,
		syntax.KindProgramDecl, syntax.KindInterfaceDecl,
		syntax.KindNestedModuleDecl, syntax.KindTimeunitsDecl,
		syntax.KindModuleDecl, syntax.KindPackageDecl:
		return b.unsupported(item.Kind.String(), item.At)
	}
	return b.unsupported(item.Kind.String(), item.At)
}

// instantiation inserts the linked triple for one instantiation: the
// referenced type name (a use, not a declaration), the instance name,
// and the instance item pointing at both. Only the two name tokens get
// index entries; the instance's span begins where the type name does
// and stays reachable through the ids alone.
func (b *builder) instantiation(inst *syntax.Instantiation) error {
	typeRange, err := b.file.lines.TokenRange(inst.TypeName)
	if err != nil {
		return err
	}
	typeName := b.tree.TextTrim(inst.TypeName)
	typeID, err := b.insert(semantic.ModuleIdentifier(typeName, typeRange), typeRange)
	if err != nil {
		return err
	}

	instRange, err := b.file.lines.TokenRange(inst.InstanceName)
	if err != nil {
		return err
	}
	instName := b.tree.TextTrim(inst.InstanceName)
	instID, err := b.insert(semantic.UnknownIdentifier(instName, instRange), instRange)
	if err != nil {
		return err
	}

	span := position.Range{Begin: typeRange.Begin, End: instRange.End}
	b.file.store.Insert(semantic.ModuleInstance(typeID, instID, span))
	return nil
}

// insert stores the item and indexes it under key.
func (b *builder) insert(item semantic.Item, key position.Range) (semantic.ItemID, error) {
	id := b.file.store.Insert(item)
	if err := b.file.locations.Insert(key, id); err != nil {
		return semantic.ItemID{}, fmt.Errorf("indexing %s %q: %w", item.Kind, item.Name, err)
	}
	return id, nil
}

func (b *builder) unsupported(what string, at syntax.Locate) error {
	return fmt.Errorf("%w: %s at line %d", ErrUnsupportedConstruct, what, at.Line)
}
