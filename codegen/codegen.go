// Package codegen renders script ASTs to JavaScript source text. It covers
// exactly the node set the harness emitter and lowerer produce; raw
// statements print verbatim.
package codegen

import (
	"strconv"
	"strings"

	"github.com/relationsone/espack/ast"
)

// Generate renders a script AST to JavaScript source.
func Generate(script *ast.Script) string {
	p := &printer{}
	for _, directive := range script.Directives {
		p.writeIndent()
		p.buf.WriteString(quote(directive.RawValue))
		p.buf.WriteString(";\n")
	}
	for _, statement := range script.Statements {
		p.printStatement(statement)
	}
	return p.buf.String()
}

type printer struct {
	buf    strings.Builder
	indent int
}

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *printer) printStatement(statement ast.Statement) {
	switch s := statement.(type) {
	case *ast.RawStatement:
		p.writeIndent()
		p.buf.WriteString(s.Text)
		p.buf.WriteString("\n")

	case *ast.ExpressionStatement:
		p.writeIndent()
		p.printExpression(s.Expression)
		p.buf.WriteString(";\n")

	case *ast.VariableDeclarationStatement:
		p.writeIndent()
		p.buf.WriteString(s.Kind)
		p.buf.WriteString(" ")
		for i, declarator := range s.Declarators {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(declarator.Name)
			if declarator.Init != nil {
				p.buf.WriteString(" = ")
				p.printExpression(declarator.Init)
			}
		}
		p.buf.WriteString(";\n")

	case *ast.IfStatement:
		p.writeIndent()
		p.buf.WriteString("if (")
		p.printExpression(s.Test)
		p.buf.WriteString(") ")
		p.printInlineStatement(s.Consequent)
		if s.Alternate != nil {
			p.writeIndent()
			p.buf.WriteString("else ")
			p.printInlineStatement(s.Alternate)
		}

	case *ast.ReturnStatement:
		p.writeIndent()
		p.buf.WriteString("return")
		if s.Argument != nil {
			p.buf.WriteString(" ")
			p.printExpression(s.Argument)
		}
		p.buf.WriteString(";\n")

	case *ast.ThrowStatement:
		p.writeIndent()
		p.buf.WriteString("throw ")
		p.printExpression(s.Argument)
		p.buf.WriteString(";\n")

	case *ast.FunctionDeclaration:
		p.writeIndent()
		p.buf.WriteString("function ")
		p.buf.WriteString(s.Name)
		p.printFunctionTail(s.Params, s.Body)
		p.buf.WriteString("\n")
	}
}

// printInlineStatement prints an if-branch on the same line, the shape the
// harness uses for its guard statements.
func (p *printer) printInlineStatement(statement ast.Statement) {
	saved := p.indent
	p.indent = 0
	p.printStatement(statement)
	p.indent = saved
}

func (p *printer) printFunctionTail(params []string, body ast.FunctionBody) {
	p.buf.WriteString("(")
	p.buf.WriteString(strings.Join(params, ", "))
	p.buf.WriteString(") {\n")
	p.indent++
	for _, directive := range body.Directives {
		p.writeIndent()
		p.buf.WriteString(quote(directive.RawValue))
		p.buf.WriteString(";\n")
	}
	for _, statement := range body.Statements {
		p.printStatement(statement)
	}
	p.indent--
	p.writeIndent()
	p.buf.WriteString("}")
}

func (p *printer) printExpression(expression ast.Expression) {
	switch e := expression.(type) {
	case *ast.Identifier:
		p.buf.WriteString(e.Name)

	case *ast.ThisExpression:
		p.buf.WriteString("this")

	case *ast.LiteralString:
		p.buf.WriteString(quote(e.Value))

	case *ast.LiteralNumber:
		p.buf.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))

	case *ast.LiteralBoolean:
		p.buf.WriteString(strconv.FormatBool(e.Value))

	case *ast.ObjectLiteral:
		if len(e.Properties) == 0 {
			p.buf.WriteString("{}")
			return
		}
		p.buf.WriteString("{ ")
		for i, property := range e.Properties {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(property.Name)
			p.buf.WriteString(": ")
			p.printExpression(property.Value)
		}
		p.buf.WriteString(" }")

	case *ast.ArrayLiteral:
		p.buf.WriteString("[")
		for i, element := range e.Elements {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpression(element)
		}
		p.buf.WriteString("]")

	case *ast.FunctionExpression:
		p.buf.WriteString("function ")
		if e.Name != "" {
			p.buf.WriteString(e.Name)
		}
		p.printFunctionTail(e.Params, e.Body)

	case *ast.CallExpression:
		p.printCallee(e.Callee)
		p.buf.WriteString("(")
		for i, argument := range e.Arguments {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpression(argument)
		}
		p.buf.WriteString(")")

	case *ast.NewExpression:
		p.buf.WriteString("new ")
		p.printExpression(e.Callee)
		p.buf.WriteString("(")
		for i, argument := range e.Arguments {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.printExpression(argument)
		}
		p.buf.WriteString(")")

	case *ast.StaticMember:
		p.printCallee(e.Object)
		p.buf.WriteString(".")
		p.buf.WriteString(e.Property)

	case *ast.ComputedMember:
		p.printCallee(e.Object)
		p.buf.WriteString("[")
		p.printExpression(e.Index)
		p.buf.WriteString("]")

	case *ast.AssignmentExpression:
		p.printExpression(e.Target)
		p.buf.WriteString(" = ")
		p.printExpression(e.Value)

	case *ast.BinaryExpression:
		p.printExpression(e.Left)
		p.buf.WriteString(" ")
		p.buf.WriteString(e.Operator)
		p.buf.WriteString(" ")
		p.printExpression(e.Right)

	case *ast.UnaryExpression:
		p.buf.WriteString(e.Operator)
		if isWordOperator(e.Operator) {
			p.buf.WriteString(" ")
		}
		p.printExpression(e.Operand)

	case *ast.ConditionalExpression:
		p.printExpression(e.Test)
		p.buf.WriteString(" ? ")
		p.printExpression(e.Consequent)
		p.buf.WriteString(" : ")
		p.printExpression(e.Alternate)

	case *ast.RawExpression:
		p.buf.WriteString("(")
		p.buf.WriteString(e.Text)
		p.buf.WriteString(")")
	}
}

// printCallee prints an expression in callee or member-object position,
// parenthesizing function expressions so the result stays parseable.
func (p *printer) printCallee(expression ast.Expression) {
	if _, isFunction := expression.(*ast.FunctionExpression); isFunction {
		p.buf.WriteString("(")
		p.printExpression(expression)
		p.buf.WriteString(")")
		return
	}
	p.printExpression(expression)
}

func isWordOperator(operator string) bool {
	switch operator {
	case "void", "typeof", "delete":
		return true
	}
	return false
}

func quote(value string) string {
	var sb strings.Builder
	sb.WriteString("\"")
	for i := 0; i < len(value); i++ {
		b := value[i]
		switch b {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\r':
			sb.WriteString("\\r")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteByte(b)
		}
	}
	sb.WriteString("\"")
	return sb.String()
}
