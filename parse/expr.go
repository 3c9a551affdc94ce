package parse

import (
	"sysy/ast"
	"sysy/lex"
	"sysy/report"
)

// Precedence climbs §6.2's operator table, loosest to tightest:
// || && relational(==,!=,<,>,<=,>=) additive(+,-) multiplicative(*,/,%)
// unary(+,-,!) primary.

func (p *Parser) parseExpr() ast.Expr {
	return p.parseLOr()
}

func (p *Parser) parseLOr() ast.Expr {
	line := p.tok.Line
	left := p.parseLAnd()
	for p.at(lex.OrOr) {
		p.advance()
		right := p.parseLAnd()
		left = &ast.BinaryExpr{Base: ast.Base{Ln: line}, Op: ast.BinLOr, L: left, R: right}
	}
	return left
}

func (p *Parser) parseLAnd() ast.Expr {
	line := p.tok.Line
	left := p.parseRel()
	for p.at(lex.AndAnd) {
		p.advance()
		right := p.parseRel()
		left = &ast.BinaryExpr{Base: ast.Base{Ln: line}, Op: ast.BinLAnd, L: left, R: right}
	}
	return left
}

func (p *Parser) parseRel() ast.Expr {
	line := p.tok.Line
	left := p.parseAdd()
	for {
		var op ast.BinOp
		switch p.tok.Kind {
		case lex.Eq:
			op = ast.BinEq
		case lex.Ne:
			op = ast.BinNe
		case lex.Lt:
			op = ast.BinLt
		case lex.Gt:
			op = ast.BinGt
		case lex.Le:
			op = ast.BinLe
		case lex.Ge:
			op = ast.BinGe
		default:
			return left
		}
		p.advance()
		right := p.parseAdd()
		left = &ast.BinaryExpr{Base: ast.Base{Ln: line}, Op: op, L: left, R: right}
	}
}

func (p *Parser) parseAdd() ast.Expr {
	line := p.tok.Line
	left := p.parseMul()
	for p.at(lex.Plus) || p.at(lex.Minus) {
		op := ast.BinAdd
		if p.at(lex.Minus) {
			op = ast.BinSub
		}
		p.advance()
		right := p.parseMul()
		left = &ast.BinaryExpr{Base: ast.Base{Ln: line}, Op: op, L: left, R: right}
	}
	return left
}

func (p *Parser) parseMul() ast.Expr {
	line := p.tok.Line
	left := p.parseUnary()
	for p.at(lex.Star) || p.at(lex.Slash) || p.at(lex.Percent) {
		var op ast.BinOp
		switch p.tok.Kind {
		case lex.Star:
			op = ast.BinMul
		case lex.Slash:
			op = ast.BinDiv
		case lex.Percent:
			op = ast.BinMod
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Base: ast.Base{Ln: line}, Op: op, L: left, R: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	line := p.tok.Line
	switch p.tok.Kind {
	case lex.Plus:
		p.advance()
		return &ast.UnaryExpr{Base: ast.Base{Ln: line}, Op: ast.UnPos, Operand: p.parseUnary()}
	case lex.Minus:
		p.advance()
		return &ast.UnaryExpr{Base: ast.Base{Ln: line}, Op: ast.UnNeg, Operand: p.parseUnary()}
	case lex.Not:
		p.advance()
		return &ast.UnaryExpr{Base: ast.Base{Ln: line}, Op: ast.UnNot, Operand: p.parseUnary()}
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	line := p.tok.Line
	switch p.tok.Kind {
	case lex.IntLit:
		v := p.tok.Val
		p.advance()
		return &ast.IntLit{Base: ast.Base{Ln: line}, Val: v}
	case lex.LParen:
		p.advance()
		e := p.parseExpr()
		p.expect(lex.RParen, report.CodeMissingRParen)
		return e
	case lex.Ident:
		name := p.tok.Text
		p.advance()
		if p.at(lex.LParen) {
			return p.parseCallArgs(line, name)
		}
		lv := &ast.LVal{Base: ast.Base{Ln: line}, Name: name}
		if p.at(lex.LBracket) {
			p.advance()
			lv.Index = p.parseExpr()
			p.expect(lex.RBracket, report.CodeMissingRBracket)
		}
		return lv
	default:
		// Malformed primary: report as a missing-semicolon-class syntax
		// error at the current line and return a placeholder literal so
		// the caller's expression tree stays well-formed, per §7's
		// "emit placeholder values" recovery rule.
		p.sink.Report(line, report.CodeMissingSemicolon)
		return &ast.IntLit{Base: ast.Base{Ln: line}, Val: 0}
	}
}

func (p *Parser) parseCallArgs(line int, name string) ast.Expr {
	p.advance() // '('
	ce := &ast.CallExpr{Base: ast.Base{Ln: line}, Callee: name}
	if !p.at(lex.RParen) {
		ce.Args = append(ce.Args, p.parseExpr())
		for p.at(lex.Comma) {
			p.advance()
			ce.Args = append(ce.Args, p.parseExpr())
		}
	}
	p.expect(lex.RParen, report.CodeMissingRParen)
	return ce
}
