package ast

// Construction helpers. Harness synthesis builds a fair amount of nested
// structure; these keep the call sites flat.

func Ident(name string) *Identifier {
	return &Identifier{Name: name}
}

func This() *ThisExpression {
	return &ThisExpression{}
}

func Str(value string) *LiteralString {
	return &LiteralString{Value: value}
}

func Num(value float64) *LiteralNumber {
	return &LiteralNumber{Value: value}
}

func Bool(value bool) *LiteralBoolean {
	return &LiteralBoolean{Value: value}
}

func EmptyObject() *ObjectLiteral {
	return &ObjectLiteral{}
}

func EmptyArray() *ArrayLiteral {
	return &ArrayLiteral{}
}

func Member(object Expression, property string) *StaticMember {
	return &StaticMember{Object: object, Property: property}
}

func Index(object Expression, index Expression) *ComputedMember {
	return &ComputedMember{Object: object, Index: index}
}

func Call(callee Expression, arguments ...Expression) *CallExpression {
	return &CallExpression{Callee: callee, Arguments: arguments}
}

func New(callee Expression, arguments ...Expression) *NewExpression {
	return &NewExpression{Callee: callee, Arguments: arguments}
}

func Assign(target Expression, value Expression) *AssignmentExpression {
	return &AssignmentExpression{Target: target, Value: value}
}

func Not(operand Expression) *UnaryExpression {
	return &UnaryExpression{Operator: "!", Operand: operand}
}

// Undefined builds `void 0`.
func Undefined() *UnaryExpression {
	return &UnaryExpression{Operator: "void", Operand: Num(0)}
}

func Add(left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: "+", Left: left, Right: right}
}

func NotEqual(left, right Expression) *BinaryExpression {
	return &BinaryExpression{Operator: "!==", Left: left, Right: right}
}

func Cond(test, consequent, alternate Expression) *ConditionalExpression {
	return &ConditionalExpression{Test: test, Consequent: consequent, Alternate: alternate}
}

func Function(name string, params []string, body FunctionBody) *FunctionExpression {
	return &FunctionExpression{Name: name, Params: params, Body: body}
}

func ExprStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{Expression: expression}
}

func Var(name string, init Expression) *VariableDeclarationStatement {
	return &VariableDeclarationStatement{
		Kind:        "var",
		Declarators: []VariableDeclarator{{Name: name, Init: init}},
	}
}

func Return(argument Expression) *ReturnStatement {
	return &ReturnStatement{Argument: argument}
}

func Throw(argument Expression) *ThrowStatement {
	return &ThrowStatement{Argument: argument}
}

func If(test Expression, consequent Statement) *IfStatement {
	return &IfStatement{Test: test, Consequent: consequent}
}

func Raw(text string) *RawStatement {
	return &RawStatement{Text: text}
}

// HasOwnCall builds `{}.hasOwnProperty.call(object, key)`, the shape the
// emitted runtime uses so a module shadowing hasOwnProperty on its exports
// cannot break lookups.
func HasOwnCall(object Expression, key Expression) *CallExpression {
	return Call(Member(Member(EmptyObject(), "hasOwnProperty"), "call"), object, key)
}
