// Package parser parses the module surface of ECMAScript source: the
// directive prologue and the top-level import/export declarations. Code
// between declarations is captured verbatim as raw statements; the bundler
// never rewrites below the module surface, so nothing finer is needed.
package parser

import (
	"fmt"
	"strings"

	"github.com/relationsone/espack/ast"
)

// Error is a parse failure with 1-based position information.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

func (l *lexer) errorf(format string, args ...interface{}) error {
	line, column := position(l.src, l.pos)
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// Parse parses module source text into an ast.Module.
func Parse(source string) (*ast.Module, error) {
	p := &moduleParser{l: newLexer(source)}
	return p.parseModule()
}

type moduleParser struct {
	l *lexer
}

func (p *moduleParser) parseModule() (*ast.Module, error) {
	module := &ast.Module{}
	if err := p.parseDirectives(module); err != nil {
		return nil, err
	}

	for {
		p.l.skipSpace()
		if p.l.eof() {
			break
		}

		if isIdentStart(p.l.peek()) && p.l.lastSig != '.' {
			switch p.l.peekIdent() {
			case "import":
				if p.isImportDeclaration() {
					item, err := p.parseImport()
					if err != nil {
						return nil, err
					}
					module.Items = append(module.Items, item)
					continue
				}
			case "export":
				item, err := p.parseExport()
				if err != nil {
					return nil, err
				}
				module.Items = append(module.Items, item)
				continue
			}
		}

		raw, err := p.scanRawRun()
		if err != nil {
			return nil, err
		}
		if raw != "" {
			module.Items = append(module.Items, &ast.RawStatement{Text: raw})
		}
	}

	return module, nil
}

// parseDirectives consumes the directive prologue ("use strict" and
// friends). A leading string literal that turns out to be part of a larger
// expression is rewound and left to the raw scanner.
func (p *moduleParser) parseDirectives(module *ast.Module) error {
	for {
		save := *p.l
		p.l.skipSpace()
		b := p.l.peek()
		if b != '"' && b != '\'' {
			return nil
		}
		value, err := p.l.scanString()
		if err != nil {
			return err
		}
		p.l.skipSpace()
		switch {
		case p.l.peek() == ';':
			p.l.pos++
			p.l.lastSig = ';'
		case p.l.eof() || p.l.newlineBefore:
			// automatic semicolon
		default:
			*p.l = save
			return nil
		}
		module.Directives = append(module.Directives, ast.Directive{RawValue: value})
	}
}

// isImportDeclaration distinguishes an import declaration from a dynamic
// import() call or import.meta, both of which stay in raw statements.
func (p *moduleParser) isImportDeclaration() bool {
	probe := *p.l
	probe.scanIdent()
	probe.skipSpace()
	b := probe.peek()
	return b != '(' && b != '.'
}

// scanRawRun consumes source until the next top-level module declaration
// or end of input.
func (p *moduleParser) scanRawRun() (string, error) {
	start := p.l.pos
	depth := 0
	for {
		p.l.skipSpace()
		if p.l.eof() {
			break
		}
		if depth == 0 && isIdentStart(p.l.peek()) && p.l.lastSig != '.' {
			word := p.l.peekIdent()
			if word == "export" {
				break
			}
			if word == "import" && p.isImportDeclaration() {
				break
			}
		}
		if err := p.l.step(&depth); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(p.l.src[start:p.l.pos]), nil
}

func (p *moduleParser) parseImport() (ast.ModuleItem, error) {
	p.l.scanIdent()
	p.l.skipSpace()

	b := p.l.peek()
	switch {
	case b == '"' || b == '\'':
		specifier, err := p.l.scanString()
		if err != nil {
			return nil, err
		}
		p.consumeSemi()
		return &ast.ImportDeclaration{Specifier: specifier}, nil

	case b == '*':
		binding, err := p.parseNamespaceClause()
		if err != nil {
			return nil, err
		}
		specifier, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		return &ast.ImportNamespace{Binding: binding, Specifier: specifier}, nil

	case b == '{':
		named, err := p.parseNamedImports()
		if err != nil {
			return nil, err
		}
		specifier, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		return &ast.ImportDeclaration{Named: named, Specifier: specifier}, nil

	case isIdentStart(b):
		def := p.l.scanIdent()
		p.l.skipSpace()
		if p.l.peek() == ',' {
			p.l.pos++
			p.l.skipSpace()
			switch {
			case p.l.peek() == '*':
				binding, err := p.parseNamespaceClause()
				if err != nil {
					return nil, err
				}
				specifier, err := p.parseFromClause()
				if err != nil {
					return nil, err
				}
				return &ast.ImportNamespace{Default: def, Binding: binding, Specifier: specifier}, nil
			case p.l.peek() == '{':
				named, err := p.parseNamedImports()
				if err != nil {
					return nil, err
				}
				specifier, err := p.parseFromClause()
				if err != nil {
					return nil, err
				}
				return &ast.ImportDeclaration{Default: def, Named: named, Specifier: specifier}, nil
			}
			return nil, p.l.errorf("unexpected token in import clause")
		}
		specifier, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		return &ast.ImportDeclaration{Default: def, Specifier: specifier}, nil
	}

	return nil, p.l.errorf("unexpected token after import")
}

// parseNamespaceClause parses `* as name`.
func (p *moduleParser) parseNamespaceClause() (string, error) {
	p.l.pos++ // *
	p.l.lastSig = '*'
	if err := p.expectWord("as"); err != nil {
		return "", err
	}
	return p.expectBinding()
}

func (p *moduleParser) parseNamedImports() ([]ast.ImportSpecifier, error) {
	p.l.pos++ // {
	p.l.lastSig = '{'
	var specifiers []ast.ImportSpecifier
	for {
		p.l.skipSpace()
		if p.l.peek() == '}' {
			p.l.pos++
			p.l.lastSig = '}'
			return specifiers, nil
		}
		if !isIdentStart(p.l.peek()) {
			return nil, p.l.errorf("expected import name")
		}
		imported := p.l.scanIdent()
		local := imported
		p.l.skipSpace()
		if p.l.peekIdent() == "as" {
			p.l.scanIdent()
			name, err := p.expectBinding()
			if err != nil {
				return nil, err
			}
			local = name
		}
		specifiers = append(specifiers, ast.ImportSpecifier{Imported: imported, Local: local})
		p.l.skipSpace()
		if p.l.peek() == ',' {
			p.l.pos++
			p.l.lastSig = ','
		}
	}
}

func (p *moduleParser) parseExport() (ast.ModuleItem, error) {
	p.l.scanIdent()
	p.l.skipSpace()

	b := p.l.peek()
	switch {
	case b == '*':
		p.l.pos++
		p.l.lastSig = '*'
		p.l.skipSpace()
		if p.l.peekIdent() == "as" {
			return nil, p.l.errorf("export * as namespace is not supported")
		}
		specifier, err := p.parseFromClause()
		if err != nil {
			return nil, err
		}
		return &ast.ExportAllFrom{Specifier: specifier}, nil

	case b == '{':
		specifiers, err := p.parseNamedExports()
		if err != nil {
			return nil, err
		}
		p.l.skipSpace()
		if p.l.peekIdent() == "from" {
			specifier, err := p.parseFromClause()
			if err != nil {
				return nil, err
			}
			return &ast.ExportFrom{Specifiers: specifiers, Specifier: specifier}, nil
		}
		p.consumeSemi()
		return &ast.ExportLocals{Specifiers: specifiers}, nil

	case isIdentStart(b):
		switch p.l.peekIdent() {
		case "default":
			p.l.scanIdent()
			return p.parseExportDefault()
		case "var", "let", "const":
			return p.parseExportVariable()
		case "function", "class", "async":
			return p.parseExportDeclaration()
		}
	}

	return nil, p.l.errorf("unsupported export form")
}

func (p *moduleParser) parseNamedExports() ([]ast.ExportSpecifier, error) {
	p.l.pos++ // {
	p.l.lastSig = '{'
	var specifiers []ast.ExportSpecifier
	for {
		p.l.skipSpace()
		if p.l.peek() == '}' {
			p.l.pos++
			p.l.lastSig = '}'
			return specifiers, nil
		}
		if !isIdentStart(p.l.peek()) {
			return nil, p.l.errorf("expected export name")
		}
		name := p.l.scanIdent()
		exported := name
		p.l.skipSpace()
		if p.l.peekIdent() == "as" {
			p.l.scanIdent()
			p.l.skipSpace()
			if !isIdentStart(p.l.peek()) {
				return nil, p.l.errorf("expected exported name")
			}
			exported = p.l.scanIdent()
		}
		specifiers = append(specifiers, ast.ExportSpecifier{Name: name, Exported: exported})
		p.l.skipSpace()
		if p.l.peek() == ',' {
			p.l.pos++
			p.l.lastSig = ','
		}
	}
}

func (p *moduleParser) parseExportDefault() (ast.ModuleItem, error) {
	p.l.skipSpace()
	start := p.l.pos

	if isIdentStart(p.l.peek()) {
		word := p.l.peekIdent()
		if word == "function" || word == "class" || (word == "async" && p.asyncFunctionFollows()) {
			name, err := p.scanFunctionOrClass()
			if err != nil {
				return nil, err
			}
			return &ast.ExportDefault{Name: name, Text: strings.TrimSpace(p.l.src[start:p.l.pos])}, nil
		}
	}

	text, err := p.scanExpressionText()
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, p.l.errorf("expected expression after export default")
	}
	return &ast.ExportDefault{Text: text}, nil
}

func (p *moduleParser) parseExportVariable() (ast.ModuleItem, error) {
	start := p.l.pos
	kind := p.l.scanIdent()
	var names []string
	for {
		p.l.skipSpace()
		b := p.l.peek()
		if b == '{' || b == '[' {
			return nil, p.l.errorf("destructuring in exported %s declaration is not supported", kind)
		}
		if !isIdentStart(b) {
			return nil, p.l.errorf("expected binding name in %s declaration", kind)
		}
		names = append(names, p.l.scanIdent())
		p.l.skipSpace()

		if p.l.peek() == '=' {
			p.l.pos++
			p.l.lastSig = '='
			more, err := p.scanDeclaratorInit()
			if err != nil {
				return nil, err
			}
			if more {
				continue
			}
			break
		}
		if p.l.peek() == ',' {
			p.l.pos++
			p.l.lastSig = ','
			continue
		}
		p.consumeSemi()
		break
	}
	return &ast.ExportDeclaration{Names: names, Text: trimDeclaration(p.l.src[start:p.l.pos])}, nil
}

func (p *moduleParser) parseExportDeclaration() (ast.ModuleItem, error) {
	start := p.l.pos
	if p.l.peekIdent() == "async" && !p.asyncFunctionFollows() {
		return nil, p.l.errorf("unsupported export form")
	}
	name, err := p.scanFunctionOrClass()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, p.l.errorf("exported declaration must be named")
	}
	return &ast.ExportDeclaration{
		Names: []string{name},
		Text:  strings.TrimSpace(p.l.src[start:p.l.pos]),
	}, nil
}

func (p *moduleParser) asyncFunctionFollows() bool {
	probe := *p.l
	probe.scanIdent()
	probe.skipSpace()
	return probe.peekIdent() == "function"
}

// scanFunctionOrClass consumes a function or class declaration through the
// closing brace of its body and returns the binding name, empty when the
// declaration is anonymous.
func (p *moduleParser) scanFunctionOrClass() (string, error) {
	word := p.l.scanIdent()
	if word == "async" {
		p.l.skipSpace()
		word = p.l.scanIdent()
	}
	isClass := word == "class"

	p.l.skipSpace()
	if p.l.peek() == '*' {
		p.l.pos++
		p.l.lastSig = '*'
		p.l.skipSpace()
	}

	name := ""
	if isIdentStart(p.l.peek()) {
		w := p.l.peekIdent()
		if !(isClass && w == "extends") {
			name = p.l.scanIdent()
		}
	}

	depth := 0
	seenBody := false
	for {
		p.l.skipSpace()
		if p.l.eof() {
			return "", p.l.errorf("unterminated %s declaration", word)
		}
		if depth == 0 && p.l.peek() == '{' {
			seenBody = true
		}
		if err := p.l.step(&depth); err != nil {
			return "", err
		}
		if seenBody && depth == 0 {
			return name, nil
		}
	}
}

// scanExpressionText consumes an expression until a top-level semicolon,
// an inserted semicolon or end of input, returning the expression source.
func (p *moduleParser) scanExpressionText() (string, error) {
	start := p.l.pos
	depth := 0
	for {
		p.l.skipSpace()
		if p.l.eof() {
			break
		}
		b := p.l.peek()
		if depth == 0 {
			if b == ';' {
				end := p.l.pos
				p.l.pos++
				p.l.lastSig = ';'
				return strings.TrimSpace(p.l.src[start:end]), nil
			}
			if p.l.newlineBefore && p.asiBoundary() {
				break
			}
		}
		if err := p.l.step(&depth); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(p.l.src[start:p.l.pos]), nil
}

// scanDeclaratorInit consumes one variable initializer, reporting whether a
// comma (another declarator) follows.
func (p *moduleParser) scanDeclaratorInit() (bool, error) {
	depth := 0
	for {
		p.l.skipSpace()
		if p.l.eof() {
			return false, nil
		}
		b := p.l.peek()
		if depth == 0 {
			if b == ';' {
				p.l.pos++
				p.l.lastSig = ';'
				return false, nil
			}
			if b == ',' {
				p.l.pos++
				p.l.lastSig = ','
				return true, nil
			}
			if p.l.newlineBefore && p.asiBoundary() {
				return false, nil
			}
		}
		if err := p.l.step(&depth); err != nil {
			return false, err
		}
	}
}

// asiBoundary reports whether a semicolon would be inserted between the
// last consumed token and the token at the cursor.
func (p *moduleParser) asiBoundary() bool {
	last := p.l.lastSig
	ends := isIdentPart(last) || last == ')' || last == ']' || last == '}' ||
		last == '"' || last == '\'' || last == '`'
	if !ends {
		return false
	}
	switch p.l.peek() {
	case '.', '(', '[', '+', '-', '*', '/', '%', '=', '<', '>', '!', '?', ':', '&', '|', '^', '~', ',', '`':
		return false
	}
	if isIdentStart(p.l.peek()) {
		w := p.l.peekIdent()
		if w == "instanceof" || w == "in" {
			return false
		}
	}
	return true
}

func (p *moduleParser) parseFromClause() (string, error) {
	if err := p.expectWord("from"); err != nil {
		return "", err
	}
	p.l.skipSpace()
	b := p.l.peek()
	if b != '"' && b != '\'' {
		return "", p.l.errorf("expected module specifier string")
	}
	specifier, err := p.l.scanString()
	if err != nil {
		return "", err
	}
	p.consumeSemi()
	return specifier, nil
}

func (p *moduleParser) expectWord(word string) error {
	p.l.skipSpace()
	if p.l.peekIdent() != word {
		return p.l.errorf("expected %q", word)
	}
	p.l.scanIdent()
	return nil
}

func (p *moduleParser) expectBinding() (string, error) {
	p.l.skipSpace()
	if !isIdentStart(p.l.peek()) {
		return "", p.l.errorf("expected binding name")
	}
	return p.l.scanIdent(), nil
}

func (p *moduleParser) consumeSemi() {
	p.l.skipSpace()
	if p.l.peek() == ';' {
		p.l.pos++
		p.l.lastSig = ';'
	}
}

func trimDeclaration(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}
