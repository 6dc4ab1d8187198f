package minisql

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parser is a single left-to-right pass over the token sequence.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) current() Token {
	return p.peek(0)
}

func (p *parser) peek(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		return Token{TEnd, ""}
	}
	return p.tokens[p.pos+offset]
}

func (p *parser) advance() {
	p.pos++
}

// eat consumes the current token if it matches, and reports whether it did.
func (p *parser) eat(kind TokenKind, text string) bool {
	t := p.current()
	if t.Kind == kind && t.Text == text {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind TokenKind, text string) error {
	if !p.eat(kind, text) {
		return errors.Errorf("%s expected, got %s", text, p.current())
	}
	return nil
}

// ident consumes an identifier token, describing what it stands for in the
// error when something else is found.
func (p *parser) ident(what string) (string, error) {
	t := p.current()
	if t.Kind != TIdent {
		return "", errors.Errorf("%s expected, got %s", what, t)
	}
	p.advance()
	return t.Text, nil
}

// Parse turns a query string into a syntax tree. It fails fast on the first
// structural mismatch; on error no partial tree escapes. The parser knows
// nothing about the store: missing tables and columns surface only at
// execution time.
func Parse(query string) (Query, error) {
	p := parser{tokens: Tokenize(query)}
	q, err := p.parseQuery()
	if err != nil {
		return Query{}, err
	}
	if p.current().Kind != TEnd {
		return Query{}, errors.Errorf("unexpected token: %s", p.current())
	}
	return q, nil
}

func (p *parser) parseQuery() (Query, error) {
	var q Query
	var err error
	if err = p.expect(TKeyword, "SELECT"); err != nil {
		return q, err
	}
	if q.Select, err = p.parseSelectList(); err != nil {
		return q, err
	}
	if err = p.expect(TKeyword, "FROM"); err != nil {
		return q, err
	}
	if q.From, err = p.ident("table name"); err != nil {
		return q, err
	}
	for p.eat(TKeyword, "JOIN") {
		table, err := p.ident("table name after JOIN")
		if err != nil {
			return q, err
		}
		if err = p.expect(TKeyword, "ON"); err != nil {
			return q, err
		}
		on, err := p.parseExpr()
		if err != nil {
			return q, err
		}
		q.Joins = append(q.Joins, Join{table, on})
	}
	if p.eat(TKeyword, "WHERE") {
		if q.Filter, err = p.parseExpr(); err != nil {
			return q, err
		}
	}
	if p.eat(TKeyword, "GROUP") {
		// BY is lexed as an identifier and is optional filler here.
		p.eat(TIdent, "BY")
		if q.GroupBy, err = p.parseColumnList(); err != nil {
			return q, err
		}
	}
	if p.eat(TKeyword, "ORDER") {
		p.eat(TIdent, "BY")
		for {
			col, err := p.ident("column name")
			if err != nil {
				return q, err
			}
			key := OrderKey{Column: col}
			switch {
			case p.eat(TKeyword, "DESC"):
				key.Desc = true
			case p.eat(TKeyword, "ASC"):
			}
			q.OrderBy = append(q.OrderBy, key)
			if !p.eat(TPunct, ",") {
				break
			}
		}
	}
	if p.eat(TKeyword, "LIMIT") {
		t := p.current()
		if t.Kind != TNumber {
			return q, errors.Errorf("number expected after LIMIT, got %s", t)
		}
		n, err := strconv.Atoi(t.Text)
		if err != nil {
			return q, errors.Errorf("malformed LIMIT value %q", t.Text)
		}
		p.advance()
		q.Limit.Set = true
		q.Limit.Value = n
	}
	return q, nil
}

func (p *parser) parseSelectList() ([]string, error) {
	if p.eat(TPunct, "*") {
		return []string{"*"}, nil
	}
	return p.parseColumnList()
}

func (p *parser) parseColumnList() ([]string, error) {
	var cols []string
	for {
		col, err := p.ident("column name")
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if !p.eat(TPunct, ",") {
			break
		}
	}
	return cols, nil
}

// parseExpr parses with standard precedence: OR binds loosest, then AND,
// then a single comparison.
func (p *parser) parseExpr() (expression, error) {
	e, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.eat(TKeyword, "OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		e = binary{e, "OR", right}
	}
	return e, nil
}

func (p *parser) parseAnd() (expression, error) {
	e, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.eat(TKeyword, "AND") {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		e = binary{e, "AND", right}
	}
	return e, nil
}

// parseComparison admits at most one operator application: a = b = c does
// not parse as a chain, the leftover tokens fail in the caller context.
func (p *parser) parseComparison() (expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if t := p.current(); t.Kind == TOp {
		p.advance()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return binary{left, t.Text, right}, nil
	}
	return left, nil
}

func (p *parser) parsePrimary() (expression, error) {
	t := p.current()
	switch t.Kind {
	case TIdent:
		p.advance()
		if p.eat(TPunct, "(") {
			return p.parseCallArgs(t.Text)
		}
		return columnRef{t.Text}, nil
	case TNumber:
		p.advance()
		if strings.Contains(t.Text, ".") {
			f, err := strconv.ParseFloat(t.Text, 64)
			if err != nil {
				return nil, errors.Errorf("malformed number %q", t.Text)
			}
			return Value{Float, f}, nil
		}
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			return nil, errors.Errorf("malformed number %q", t.Text)
		}
		return Value{Int, n}, nil
	case TString:
		p.advance()
		return Value{String, t.Text}, nil
	case TPunct:
		if t.Text == "(" {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TPunct, ")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, errors.Errorf("expression expected, got %s", t)
}

// parseCallArgs finishes a function call after its opening paren. Calls are
// reserved syntax: they parse but always evaluate to null.
func (p *parser) parseCallArgs(name string) (expression, error) {
	call := funcCall{name: name}
	if p.eat(TPunct, ")") {
		return call, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, a)
		if !p.eat(TPunct, ",") {
			break
		}
	}
	if err := p.expect(TPunct, ")"); err != nil {
		return nil, err
	}
	return call, nil
}
