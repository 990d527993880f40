package svparse

import (
	"fmt"

	"svindex/internal/syntax"
)

// gateKeywords are the built-in primitive gates; their instantiations
// are classified, not modeled.
var gateKeywords = map[string]bool{
	"and": true, "nand": true, "or": true, "nor": true, "xor": true,
	"xnor": true, "buf": true, "not": true, "bufif0": true, "bufif1": true,
	"notif0": true, "notif1": true, "pulldown": true, "pullup": true,
	"nmos": true, "pmos": true, "cmos": true, "rnmos": true, "rpmos": true,
	"rcmos": true, "tran": true, "tranif0": true, "tranif1": true,
	"rtran": true, "rtranif0": true, "rtranif1": true,
}

// declKeywords open plain, non-declaring body items that run to the
// next semicolon.
var declKeywords = map[string]bool{
	"assign": true, "defparam": true, "wire": true, "reg": true,
	"logic": true, "bit": true, "byte": true, "int": true, "integer": true,
	"shortint": true, "longint": true, "real": true, "realtime": true,
	"time": true, "string": true, "event": true, "genvar": true,
	"input": true, "output": true, "inout": true, "ref": true,
	"typedef": true, "import": true, "export": true, "var": true,
	"supply0": true, "supply1": true, "tri": true, "triand": true,
	"trior": true, "tri0": true, "tri1": true, "trireg": true,
	"wand": true, "wor": true,
}

var procedureKeywords = map[string]bool{
	"always": true, "always_comb": true, "always_ff": true,
	"always_latch": true, "initial": true, "final": true,
}

// Parse turns raw source into a syntax tree.
func Parse(src []byte) (*syntax.Tree, error) {
	lx := newLexer(src)
	lx.run()
	p := &parser{src: src, toks: lx.toks}
	root, err := p.sourceText()
	if err != nil {
		return nil, err
	}
	return syntax.NewTree(root, src, lx.newlines), nil
}

type parser struct {
	src  []byte
	toks []token
	i    int
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) text(t token) string {
	return string(p.src[t.loc.Offset:t.loc.EndOffset()])
}

func (p *parser) atIdent(s string) bool {
	t := p.cur()
	return t.kind == tokIdent && p.text(t) == s
}

func (p *parser) atSymbol(s string) bool {
	t := p.cur()
	return t.kind == tokSymbol && p.text(t) == s
}

func (p *parser) errf(t token, format string, args ...any) error {
	return fmt.Errorf("svparse: line %d: %s", t.loc.Line, fmt.Sprintf(format, args...))
}

func (p *parser) sourceText() (syntax.SourceText, error) {
	var st syntax.SourceText
	for p.cur().kind != tokEOF {
		desc, err := p.description()
		if err != nil {
			return syntax.SourceText{}, err
		}
		st.Descriptions = append(st.Descriptions, desc)
	}
	return st, nil
}

func (p *parser) description() (syntax.Description, error) {
	t := p.cur()
	if t.kind == tokIdent {
		switch p.text(t) {
		case "module", "macromodule":
			mod, err := p.moduleDecl(false)
			if err != nil {
				return syntax.Description{}, err
			}
			return syntax.Description{Kind: syntax.KindModuleDecl, At: t.loc, Module: mod}, nil
		case "extern":
			p.next()
			kw := p.cur()
			if kw.kind != tokIdent || (p.text(kw) != "module" && p.text(kw) != "macromodule") {
				return syntax.Description{}, p.errf(kw, "expected module after extern")
			}
			mod, err := p.moduleDecl(true)
			if err != nil {
				return syntax.Description{}, err
			}
			return syntax.Description{Kind: syntax.KindModuleDecl, At: t.loc, Module: mod}, nil
		case "package":
			return p.blockDescription(syntax.KindPackageDecl, "package", "endpackage")
		case "interface":
			return p.blockDescription(syntax.KindInterfaceDecl, "interface", "endinterface")
		case "program":
			return p.blockDescription(syntax.KindProgramDecl, "program", "endprogram")
		case "timeunit", "timeprecision":
			if err := p.skipPastSemicolon(); err != nil {
				return syntax.Description{}, err
			}
			return syntax.Description{Kind: syntax.KindTimeunitsDecl, At: t.loc}, nil
		}
	}
	if err := p.skipPastSemicolon(); err != nil {
		return syntax.Description{}, err
	}
	return syntax.Description{Kind: syntax.KindPlainItem, At: t.loc}, nil
}

func (p *parser) blockDescription(kind syntax.Kind, open, close string) (syntax.Description, error) {
	at := p.cur().loc
	if err := p.skipBlock(open, close); err != nil {
		return syntax.Description{}, err
	}
	return syntax.Description{Kind: kind, At: at}, nil
}

// moduleDecl parses a declaration the caller has positioned on the
// module or macromodule keyword.
func (p *parser) moduleDecl(extern bool) (*syntax.ModuleDecl, error) {
	keyword := p.next()
	name := p.next()
	if name.kind != tokIdent {
		return nil, p.errf(name, "expected module name")
	}

	for p.atIdent("import") {
		if err := p.skipPastSemicolon(); err != nil {
			return nil, err
		}
	}
	if p.atSymbol("#") {
		p.next()
		if p.atSymbol("(") {
			if err := p.skipParens(); err != nil {
				return nil, err
			}
		}
	}

	ansi, wildcard := false, false
	if p.atSymbol("(") {
		var err error
		ansi, wildcard, err = p.scanPortList()
		if err != nil {
			return nil, err
		}
	}

	headerEnd := p.cur()
	if err := p.skipPastSemicolon(); err != nil {
		return nil, err
	}

	decl := &syntax.ModuleDecl{
		Keyword:    keyword.loc,
		Name:       name.loc,
		EndKeyword: headerEnd.loc,
	}
	switch {
	case extern && ansi:
		decl.Form = syntax.FormExternANSI
	case extern:
		decl.Form = syntax.FormExternNonANSI
	case wildcard:
		decl.Form = syntax.FormWildcard
	case ansi:
		decl.Form = syntax.FormANSI
	default:
		decl.Form = syntax.FormNonANSI
	}
	if extern {
		// extern declarations are header-only
		return decl, nil
	}

	for {
		t := p.cur()
		if t.kind == tokEOF {
			return nil, p.errf(t, "missing endmodule for module %s", p.text(name))
		}
		if t.kind == tokIdent && p.text(t) == "endmodule" {
			end := p.next()
			decl.EndKeyword = end.loc
			if p.atSymbol(":") {
				p.next()
				if p.cur().kind == tokIdent {
					p.next()
				}
			}
			return decl, nil
		}
		item, err := p.moduleItem()
		if err != nil {
			return nil, err
		}
		decl.Body = append(decl.Body, item)
	}
}

// scanPortList consumes a balanced port list, reporting whether it
// uses the ANSI header form (direction keywords in the header) or the
// wildcard form (.*).
func (p *parser) scanPortList() (ansi, wildcard bool, err error) {
	open := p.next() // "("
	depth := 1
	prevDot := false
	for depth > 0 {
		t := p.next()
		if t.kind == tokEOF {
			return false, false, p.errf(open, "unbalanced port list")
		}
		dot := false
		switch t.kind {
		case tokSymbol:
			switch p.text(t) {
			case "(":
				depth++
			case ")":
				depth--
			case ".":
				dot = true
			case "*":
				if prevDot && depth == 1 {
					wildcard = true
				}
			}
		case tokIdent:
			switch p.text(t) {
			case "input", "output", "inout", "ref":
				ansi = true
			}
		}
		prevDot = dot
	}
	return ansi, wildcard, nil
}

func (p *parser) moduleItem() (syntax.ModuleItem, error) {
	t := p.cur()
	if t.kind != tokIdent {
		// stray punctuation; consume and move on
		p.next()
		return syntax.ModuleItem{Kind: syntax.KindPlainItem, At: t.loc}, nil
	}

	txt := p.text(t)
	switch {
	case txt == "generate":
		return p.blockItem(syntax.KindGenerateRegion, "generate", "endgenerate")
	case gateKeywords[txt]:
		return p.semicolonItem(syntax.KindGateInstantiation)
	case txt == "parameter" || txt == "localparam":
		return p.semicolonItem(syntax.KindParameterDecl)
	case txt == "specparam":
		return p.semicolonItem(syntax.KindSpecparamDecl)
	case txt == "specify":
		return p.blockItem(syntax.KindSpecifyBlock, "specify", "endspecify")
	case txt == "program":
		return p.blockItem(syntax.KindProgramDecl, "program", "endprogram")
	case txt == "interface":
		return p.blockItem(syntax.KindInterfaceDecl, "interface", "endinterface")
	case txt == "module" || txt == "macromodule":
		return p.blockItem(syntax.KindNestedModuleDecl, "module", "endmodule")
	case txt == "timeunit" || txt == "timeprecision":
		return p.semicolonItem(syntax.KindTimeunitsDecl)
	case txt == "function":
		return p.blockItem(syntax.KindPlainItem, "function", "endfunction")
	case txt == "task":
		return p.blockItem(syntax.KindPlainItem, "task", "endtask")
	case procedureKeywords[txt]:
		p.next()
		if err := p.skipStatement(); err != nil {
			return syntax.ModuleItem{}, err
		}
		return syntax.ModuleItem{Kind: syntax.KindPlainItem, At: t.loc}, nil
	case declKeywords[txt]:
		return p.semicolonItem(syntax.KindPlainItem)
	}
	return p.instantiationOrPlain()
}

func (p *parser) blockItem(kind syntax.Kind, open, close string) (syntax.ModuleItem, error) {
	at := p.cur().loc
	if err := p.skipBlock(open, close); err != nil {
		return syntax.ModuleItem{}, err
	}
	return syntax.ModuleItem{Kind: kind, At: at}, nil
}

func (p *parser) semicolonItem(kind syntax.Kind) (syntax.ModuleItem, error) {
	at := p.cur().loc
	if err := p.skipPastSemicolon(); err != nil {
		return syntax.ModuleItem{}, err
	}
	return syntax.ModuleItem{Kind: kind, At: at}, nil
}

// instantiationOrPlain disambiguates `type [#(...)] name (...)` from
// other identifier-led items. Only the first instance of a multi
// instance statement is modeled, as with the reference grammar walk.
func (p *parser) instantiationOrPlain() (syntax.ModuleItem, error) {
	typeTok := p.next()
	if p.atSymbol("#") {
		p.next()
		if p.atSymbol("(") {
			if err := p.skipParens(); err != nil {
				return syntax.ModuleItem{}, err
			}
		}
	}
	if p.cur().kind == tokIdent {
		instTok := p.next()
		if p.atSymbol("[") {
			if err := p.skipBrackets(); err != nil {
				return syntax.ModuleItem{}, err
			}
		}
		if p.atSymbol("(") {
			if err := p.skipParens(); err != nil {
				return syntax.ModuleItem{}, err
			}
			if err := p.skipPastSemicolon(); err != nil {
				return syntax.ModuleItem{}, err
			}
			return syntax.ModuleItem{
				Kind: syntax.KindModuleInstantiation,
				At:   typeTok.loc,
				Inst: &syntax.Instantiation{TypeName: typeTok.loc, InstanceName: instTok.loc},
			}, nil
		}
	}
	if err := p.skipPastSemicolon(); err != nil {
		return syntax.ModuleItem{}, err
	}
	return syntax.ModuleItem{Kind: syntax.KindPlainItem, At: typeTok.loc}, nil
}

// skipStatement consumes one procedural statement: optional event or
// delay controls, then a begin/end block or a simple statement.
func (p *parser) skipStatement() error {
	for p.atSymbol("@") || p.atSymbol("#") {
		p.next()
		if p.atSymbol("(") {
			if err := p.skipParens(); err != nil {
				return err
			}
		} else if p.cur().kind != tokEOF {
			p.next()
		}
	}
	if p.atIdent("begin") {
		return p.skipBlock("begin", "end")
	}
	return p.skipPastSemicolon()
}

// skipBlock consumes from an opening keyword through its matching
// closer, tracking nesting of the same pair.
func (p *parser) skipBlock(open, close string) error {
	first := p.next()
	depth := 1
	for depth > 0 {
		t := p.next()
		if t.kind == tokEOF {
			return p.errf(first, "missing %s", close)
		}
		if t.kind != tokIdent {
			continue
		}
		switch p.text(t) {
		case close:
			depth--
		case open:
			depth++
		}
	}
	return nil
}

func (p *parser) skipPastSemicolon() error {
	for {
		t := p.next()
		if t.kind == tokEOF {
			return p.errf(t, "missing semicolon")
		}
		if t.kind == tokSymbol && p.text(t) == ";" {
			return nil
		}
	}
}

func (p *parser) skipParens() error {
	return p.skipDelimited("(", ")")
}

func (p *parser) skipBrackets() error {
	return p.skipDelimited("[", "]")
}

func (p *parser) skipDelimited(open, close string) error {
	first := p.next()
	depth := 1
	for depth > 0 {
		t := p.next()
		if t.kind == tokEOF {
			return p.errf(first, "missing %s", close)
		}
		if t.kind != tokSymbol {
			continue
		}
		switch p.text(t) {
		case open:
			depth++
		case close:
			depth--
		}
	}
	return nil
}
