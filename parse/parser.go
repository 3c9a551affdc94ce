// Package parse implements the recursive-descent parser for SysY-lite
// (spec.md §1, §6.2), the second of the two external collaborator stages:
// its only contract with the core is handing package sema a well-formed
// *ast.CompUnit.
//
// Grounded in shape on xplshn-gbc's hand-rolled recursive-descent C
// parser (one method per grammar production, error recovery by
// resynchronizing to a statement boundary) rather than the teacher's
// generated LALR(1) table parser, since SysY-lite's small fixed grammar
// does not warrant a parser generator and the reference compiler's own
// frontend (_examples/original_source/src/frontend) is also a plain
// recursive-descent parser over the same grammar.
package parse

import (
	"sysy/ast"
	"sysy/lex"
	"sysy/report"
)

type Parser struct {
	lx   *lex.Lexer
	sink *report.Sink

	tok     lex.Token
	lookTok lex.Token
	hasLook bool

	look3Tok lex.Token
	hasLook3 bool
}

func New(src string, sink *report.Sink) *Parser {
	p := &Parser{lx: lex.NewLexer(src, sink), sink: sink}
	p.tok = p.lx.Next()
	return p
}

func (p *Parser) advance() {
	if p.hasLook {
		p.tok = p.lookTok
		p.hasLook = false
		if p.hasLook3 {
			p.lookTok = p.look3Tok
			p.hasLook = true
			p.hasLook3 = false
		}
		return
	}
	p.tok = p.lx.Next()
}

func (p *Parser) peek2() lex.Token {
	if !p.hasLook {
		p.lookTok = p.lx.Next()
		p.hasLook = true
	}
	return p.lookTok
}

func (p *Parser) at(k lex.Kind) bool { return p.tok.Kind == k }

// expect consumes tok.Kind if it matches k, otherwise reports code and
// does not advance, so the caller's resync logic decides how to recover.
func (p *Parser) expect(k lex.Kind, code report.Code) bool {
	if p.tok.Kind == k {
		p.advance()
		return true
	}
	p.sink.Report(p.tok.Line, code)
	return false
}

// Parse runs the whole grammar over the token stream and returns the
// compilation unit. Parsing never aborts on a malformed construct; it
// reports a diagnostic and resynchronizes, per §7's "report and
// continue" discipline.
func (p *Parser) Parse() *ast.CompUnit {
	cu := &ast.CompUnit{Base: ast.Base{Ln: p.tok.Line}}
	for !p.at(lex.EOF) {
		if p.isFuncDefAhead() {
			cu.Funcs = append(cu.Funcs, p.parseFuncDef())
		} else {
			cu.Decls = append(cu.Decls, p.parseDecl(true)...)
		}
	}
	return cu
}

// isFuncDefAhead disambiguates `int f(...)` / `void f(...)` from a
// declaration by looking two tokens ahead: type keyword, identifier,
// then `(` marks a function.
func (p *Parser) isFuncDefAhead() bool {
	if !(p.at(lex.KwInt) || p.at(lex.KwVoid)) {
		return false
	}
	nxt := p.peek2()
	if nxt.Kind != lex.Ident {
		return false
	}
	if !p.hasLook3 {
		p.look3Tok = p.lx.Next()
		p.hasLook3 = true
	}
	return p.look3Tok.Kind == lex.LParen
}

// parseFuncDef parses `(int|void) Ident '(' params ')' Block`.
func (p *Parser) parseFuncDef() *ast.FuncDef {
	line := p.tok.Line
	isVoid := p.at(lex.KwVoid)
	p.advance() // int/void

	name := p.tok.Text
	p.advance() // identifier

	p.expect(lex.LParen, report.CodeMissingRParen)
	fd := &ast.FuncDef{Base: ast.Base{Ln: line}, Name: name, IsVoid: isVoid}
	if !p.at(lex.RParen) {
		fd.Params = append(fd.Params, p.parseParam())
		for p.at(lex.Comma) {
			p.advance()
			fd.Params = append(fd.Params, p.parseParam())
		}
	}
	p.expect(lex.RParen, report.CodeMissingRParen)
	fd.Body = p.parseBlock()
	return fd
}

func (p *Parser) parseParam() *ast.Param {
	line := p.tok.Line
	p.advance() // 'int'
	name := p.tok.Text
	p.advance() // identifier
	param := &ast.Param{Base: ast.Base{Ln: line}, Name: name}
	if p.at(lex.LBracket) {
		p.advance()
		p.expect(lex.RBracket, report.CodeMissingRBracket)
		param.IsArray = true
	}
	return param
}

// parseDecl parses one `const`/`static`/plain `int` declaration
// statement, possibly declaring several comma-separated names, and
// consumes the trailing `;`. topLevel is unused structurally (SysY-lite
// has no separate global-decl grammar) but documents intent at call
// sites.
func (p *Parser) parseDecl(topLevel bool) []*ast.Decl {
	line := p.tok.Line
	isConst := false
	isStatic := false
	for {
		if p.at(lex.KwConst) {
			isConst = true
			p.advance()
			continue
		}
		if p.at(lex.KwStatic) {
			isStatic = true
			p.advance()
			continue
		}
		break
	}
	p.expect(lex.KwInt, report.CodeMissingSemicolon)

	var decls []*ast.Decl
	decls = append(decls, p.parseOneDecl(line, isConst, isStatic))
	for p.at(lex.Comma) {
		p.advance()
		decls = append(decls, p.parseOneDecl(p.tok.Line, isConst, isStatic))
	}
	p.expect(lex.Semi, report.CodeMissingSemicolon)
	return decls
}

func (p *Parser) parseOneDecl(line int, isConst, isStatic bool) *ast.Decl {
	name := p.tok.Text
	p.advance() // identifier
	d := &ast.Decl{Base: ast.Base{Ln: line}, Name: name, IsConst: isConst, IsStatic: isStatic}

	if p.at(lex.LBracket) {
		p.advance()
		d.ArrayLen = p.parseExpr()
		p.expect(lex.RBracket, report.CodeMissingRBracket)
	}
	if p.at(lex.Assign) {
		p.advance()
		if p.at(lex.LBrace) {
			d.Init = p.parseInitList()
		} else {
			d.Init = p.parseExpr()
		}
	}
	return d
}

func (p *Parser) parseInitList() *ast.InitList {
	line := p.tok.Line
	p.advance() // '{'
	il := &ast.InitList{Base: ast.Base{Ln: line}}
	if !p.at(lex.RBrace) {
		il.Elems = append(il.Elems, p.parseExpr())
		for p.at(lex.Comma) {
			p.advance()
			il.Elems = append(il.Elems, p.parseExpr())
		}
	}
	p.expect(lex.RBrace, report.CodeMissingRParen)
	return il
}
