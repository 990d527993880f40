package syntax

// Kind classifies the syntactic forms the indexer dispatches on. The
// set is closed: every construct the parser can hand over is one of
// these, handled or not.
type Kind uint8

const (
	KindPlainItem Kind = iota
	KindModuleDecl
	KindModuleInstantiation
	KindGenerateRegion
	KindGateInstantiation
	KindUDPInstantiation
	KindParameterDecl
	KindSpecparamDecl
	KindSpecifyBlock
	KindProgramDecl
	KindInterfaceDecl
	KindNestedModuleDecl
	KindTimeunitsDecl
	KindPackageDecl
)

var kindNames = map[Kind]string{
	KindPlainItem:           "plain item",
	KindModuleDecl:          "module declaration",
	KindModuleInstantiation: "module instantiation",
	KindGenerateRegion:      "generate region",
	KindGateInstantiation:   "gate instantiation",
	KindUDPInstantiation:    "udp instantiation",
	KindParameterDecl:       "parameter declaration",
	KindSpecparamDecl:       "specparam declaration",
	KindSpecifyBlock:        "specify block",
	KindProgramDecl:         "program declaration",
	KindInterfaceDecl:       "interface declaration",
	KindNestedModuleDecl:    "nested module declaration",
	KindTimeunitsDecl:       "timeunits declaration",
	KindPackageDecl:         "package declaration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown construct"
}

// HeaderForm distinguishes the module header variants.
type HeaderForm uint8

const (
	FormNonANSI HeaderForm = iota
	FormANSI
	FormWildcard
	FormExternNonANSI
	FormExternANSI
)

var formNames = map[HeaderForm]string{
	FormNonANSI:       "non-ansi module header",
	FormANSI:          "ansi module header",
	FormWildcard:      "wildcard module header",
	FormExternNonANSI: "extern non-ansi module header",
	FormExternANSI:    "extern ansi module header",
}

func (f HeaderForm) String() string {
	if name, ok := formNames[f]; ok {
		return name
	}
	return "unknown module header"
}

// SourceText is the root node: the file's top-level descriptions.
type SourceText struct {
	Descriptions []Description
}

// Description is one top-level construct.
type Description struct {
	Kind   Kind
	At     Locate      // first token of the construct
	Module *ModuleDecl // set when Kind == KindModuleDecl
}

// ModuleDecl is a module declaration in either header form.
type ModuleDecl struct {
	Form       HeaderForm
	Keyword    Locate // module / macromodule keyword
	Name       Locate // module identifier
	EndKeyword Locate // endmodule keyword
	Body       []ModuleItem
}

// ModuleItem is one construct inside a module body.
type ModuleItem struct {
	Kind Kind
	At   Locate         // first token of the item
	Inst *Instantiation // set when Kind == KindModuleInstantiation
}

// Instantiation is a named module instantiation inside a body.
type Instantiation struct {
	TypeName     Locate // referenced module type identifier
	InstanceName Locate // instance identifier
}
