package parse

import (
	"sysy/ast"
	"sysy/lex"
	"sysy/report"
)

func (p *Parser) parseBlock() *ast.Block {
	line := p.tok.Line
	p.expect(lex.LBrace, report.CodeMissingSemicolon)
	b := &ast.Block{Base: ast.Base{Ln: line}}
	for !p.at(lex.RBrace) && !p.at(lex.EOF) {
		if p.startsDecl() {
			for _, d := range p.parseDecl(false) {
				b.Items = append(b.Items, d)
			}
		} else {
			b.Items = append(b.Items, p.parseStmt())
		}
	}
	p.expect(lex.RBrace, report.CodeMissingSemicolon)
	return b
}

func (p *Parser) startsDecl() bool {
	return p.at(lex.KwConst) || p.at(lex.KwStatic) || p.at(lex.KwInt)
}

func (p *Parser) parseStmt() ast.Stmt {
	line := p.tok.Line
	switch p.tok.Kind {
	case lex.Semi:
		p.advance()
		return &ast.EmptyStmt{Base: ast.Base{Ln: line}}
	case lex.LBrace:
		return p.parseBlock()
	case lex.KwIf:
		return p.parseIf()
	case lex.KwFor:
		return p.parseFor()
	case lex.KwBreak:
		p.advance()
		p.expect(lex.Semi, report.CodeMissingSemicolon)
		return &ast.BreakStmt{Base: ast.Base{Ln: line}}
	case lex.KwContinue:
		p.advance()
		p.expect(lex.Semi, report.CodeMissingSemicolon)
		return &ast.ContinueStmt{Base: ast.Base{Ln: line}}
	case lex.KwReturn:
		p.advance()
		rs := &ast.ReturnStmt{Base: ast.Base{Ln: line}}
		if !p.at(lex.Semi) {
			rs.Value = p.parseExpr()
		}
		p.expect(lex.Semi, report.CodeMissingSemicolon)
		return rs
	case lex.KwPrintf:
		return p.parsePrintf()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseIf() ast.Stmt {
	line := p.tok.Line
	p.advance() // 'if'
	p.expect(lex.LParen, report.CodeMissingRParen)
	cond := p.parseExpr()
	p.expect(lex.RParen, report.CodeMissingRParen)
	then := p.parseStmt()
	ifs := &ast.IfStmt{Base: ast.Base{Ln: line}, Cond: cond, Then: then}
	if p.at(lex.KwElse) {
		p.advance()
		ifs.Else = p.parseStmt()
	}
	return ifs
}

func (p *Parser) parseFor() ast.Stmt {
	line := p.tok.Line
	p.advance() // 'for'
	p.expect(lex.LParen, report.CodeMissingRParen)

	fs := &ast.ForStmt{Base: ast.Base{Ln: line}}
	if !p.at(lex.Semi) {
		if p.startsDecl() {
			ds := p.parseDecl(false)
			if len(ds) > 0 {
				fs.Init = ds[0]
			}
		} else {
			fs.Init = p.parseAssignOrExprStmt(false)
			p.expect(lex.Semi, report.CodeMissingSemicolon)
		}
	} else {
		p.advance()
	}

	if !p.at(lex.Semi) {
		fs.Cond = p.parseExpr()
	}
	p.expect(lex.Semi, report.CodeMissingSemicolon)

	if !p.at(lex.RParen) {
		if as, ok := p.parseAssignOrExprStmt(false).(*ast.AssignStmt); ok {
			fs.Step = as
		}
	}
	p.expect(lex.RParen, report.CodeMissingRParen)

	fs.Body = p.parseStmt()
	return fs
}

func (p *Parser) parsePrintf() ast.Stmt {
	line := p.tok.Line
	p.advance() // 'printf'
	p.expect(lex.LParen, report.CodeMissingRParen)
	fmtStr := ""
	if p.at(lex.StringLit) {
		fmtStr = p.tok.Text
		p.advance()
	}
	ps := &ast.PrintfStmt{Base: ast.Base{Ln: line}, Fmt: fmtStr}
	for p.at(lex.Comma) {
		p.advance()
		ps.Args = append(ps.Args, p.parseExpr())
	}
	p.expect(lex.RParen, report.CodeMissingRParen)
	p.expect(lex.Semi, report.CodeMissingSemicolon)
	return ps
}

// parseSimpleStmt parses an assignment or an expression statement ending
// in a `;`.
func (p *Parser) parseSimpleStmt() ast.Stmt {
	s := p.parseAssignOrExprStmt(true)
	p.expect(lex.Semi, report.CodeMissingSemicolon)
	return s
}

// parseAssignOrExprStmt parses `lval = expr` or a bare expression,
// without consuming a trailing `;` (callers in for-headers need that).
// allowBareExpr is not consulted: statement callers pass true and the
// for-header clauses pass false, and both an assignment and a bare
// expression are accepted either way.
func (p *Parser) parseAssignOrExprStmt(allowBareExpr bool) ast.Stmt {
	line := p.tok.Line
	expr := p.parseExpr()
	if p.at(lex.Assign) {
		lv, ok := expr.(*ast.LVal)
		if !ok {
			// Not a valid assignment target; treat the already-parsed
			// expression as an expression statement and let the `=`
			// surface as a syntax error at the next synchronization
			// point, matching the "report and continue" discipline.
			return &ast.ExprStmt{Base: ast.Base{Ln: line}, X: expr}
		}
		p.advance() // '='
		val := p.parseExpr()
		return &ast.AssignStmt{Base: ast.Base{Ln: line}, Target: lv, Value: val}
	}
	return &ast.ExprStmt{Base: ast.Base{Ln: line}, X: expr}
}
