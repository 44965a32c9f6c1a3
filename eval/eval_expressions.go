/*
File : spicy/eval/eval_expressions.go
*/
package eval

import (
	"fmt"

	"github.com/spicylang/spicy/function"
	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/objects"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/std"
)

// EvalExpr evaluates one expression node.
func (e *Evaluator) EvalExpr(expr parser.Expr) (objects.SpicyObject, error) {
	switch ex := expr.(type) {
	case *parser.LiteralExpr:
		return e.evalLiteralExpr(ex)
	case *parser.GroupingExpr:
		return e.EvalExpr(ex.Expression)
	case *parser.UnaryExpr:
		return e.evalUnaryExpr(ex)
	case *parser.BinaryExpr:
		return e.evalBinaryExpr(ex)
	case *parser.ConditionalExpr:
		// parsed but unused downstream
		return objects.NilValue(), nil
	case *parser.PostfixExpr:
		return e.evalPostfixExpr(ex)
	case *parser.VariableExpr:
		return e.lookUpVariable(ex.VarName, ex.ID)
	case *parser.AssignExpr:
		return e.evalAssignExpr(ex)
	case *parser.LogicalExpr:
		return e.evalLogicalExpr(ex)
	case *parser.CallExpr:
		return e.evalCallExpr(ex)
	case *parser.FuncExpr:
		return function.NewFunction(ex, "lambda", e.EnvMgr.Current()), nil
	case *parser.GetExpr:
		return e.evalGetExpr(ex)
	case *parser.SetExpr:
		return e.evalSetExpr(ex)
	case *parser.ThisExpr:
		return e.lookUpVariable(ex.Keyword, ex.ID)
	case *parser.SuperExpr:
		return e.evalSuperExpr(ex)
	case *parser.IndexGetExpr:
		return e.evalIndexGetExpr(ex)
	case *parser.IndexSetExpr:
		return e.evalIndexSetExpr(ex)
	}
	return objects.NilValue(), nil
}

func (e *Evaluator) evalLiteralExpr(expr *parser.LiteralExpr) (objects.SpicyObject, error) {
	if expr.Token.Type == lexer.LIST {
		return objects.NewList(), nil
	}
	switch v := expr.Value.(type) {
	case float64:
		return objects.NewNum(v), nil
	case string:
		return objects.NewStr(v), nil
	case bool:
		return objects.NewBoolean(v), nil
	}
	return objects.NilValue(), nil
}

func (e *Evaluator) evalUnaryExpr(expr *parser.UnaryExpr) (objects.SpicyObject, error) {
	switch expr.Op.Type {
	case lexer.PLUS_PLUS, lexer.MINUS_MINUS:
		// prefix increment/decrement yields the new value
		newValue, _, err := e.stepVariable(expr.Right, expr.Op)
		return newValue, err
	}

	rval, err := e.EvalExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case lexer.MINUS:
		num, err := checkUnaryNumOperand(expr.Op, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewNum(-num.Value), nil
	case lexer.BANG:
		return objects.NewBoolean(!objects.IsTruthy(rval)), nil
	}
	return nil, objects.NewRuntimeError(expr.Op, "Invalid unary operator.")
}

func (e *Evaluator) evalPostfixExpr(expr *parser.PostfixExpr) (objects.SpicyObject, error) {
	// postfix increment/decrement yields the old value
	_, oldValue, err := e.stepVariable(expr.Left, expr.Op)
	return oldValue, err
}

// stepVariable implements ++/--: the operand must be a variable; the
// bound number is stepped and written back through the resolver depth
// (or globally). Returns (new, old) values.
func (e *Evaluator) stepVariable(operand parser.Expr, op lexer.Token) (objects.SpicyObject, objects.SpicyObject, error) {
	varExpr, ok := operand.(*parser.VariableExpr)
	if !ok {
		return nil, nil, objects.NewRuntimeError(op, fmt.Sprintf("Operand of '%s' must be a variable.", op.Lexeme))
	}
	current, err := e.lookUpVariable(varExpr.VarName, varExpr.ID)
	if err != nil {
		return nil, nil, err
	}
	num, ok := current.(*objects.Num)
	if !ok {
		return nil, nil, objects.NewRuntimeError(op, "Operand must be a number.")
	}
	step := 1.0
	if op.Type == lexer.MINUS_MINUS {
		step = -1.0
	}
	newValue := objects.NewNum(num.Value + step)
	if err := e.assignVariable(varExpr.VarName, varExpr.ID, newValue); err != nil {
		return nil, nil, err
	}
	return newValue, num, nil
}

func (e *Evaluator) evalBinaryExpr(expr *parser.BinaryExpr) (objects.SpicyObject, error) {
	lval, err := e.EvalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	rval, err := e.EvalExpr(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case lexer.PLUS:
		return evalPlus(expr.Op, lval, rval)
	case lexer.MINUS:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewNum(l.Value - r.Value), nil
	case lexer.STAR:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewNum(l.Value * r.Value), nil
	case lexer.SLASH:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewNum(l.Value / r.Value), nil
	case lexer.GREATER:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewBoolean(l.Value > r.Value), nil
	case lexer.GREATER_EQUAL:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewBoolean(l.Value >= r.Value), nil
	case lexer.LESS:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewBoolean(l.Value < r.Value), nil
	case lexer.LESS_EQUAL:
		l, r, err := checkBinaryNumOperands(expr.Op, lval, rval)
		if err != nil {
			return nil, err
		}
		return objects.NewBoolean(l.Value <= r.Value), nil
	case lexer.BANG_EQUAL:
		return objects.NewBoolean(!objects.AreEqual(lval, rval)), nil
	case lexer.EQUAL_EQUAL:
		return objects.NewBoolean(objects.AreEqual(lval, rval)), nil
	case lexer.RARROW:
		// lst <- v : append to the left list operand
		lst, ok := lval.(*objects.List)
		if !ok {
			return nil, objects.NewRuntimeError(expr.Op, "Left operand of '<-' must be a list.")
		}
		lst.Append(rval)
		return lst, nil
	case lexer.ARROW:
		// v -> lst : prepend to the right list operand
		lst, ok := rval.(*objects.List)
		if !ok {
			return nil, objects.NewRuntimeError(expr.Op, "Right operand of '->' must be a list.")
		}
		lst.Prepend(lval)
		return lst, nil
	}
	return nil, objects.NewRuntimeError(expr.Op, "Unexpected operator in binary expression.")
}

func (e *Evaluator) evalLogicalExpr(expr *parser.LogicalExpr) (objects.SpicyObject, error) {
	lhs, err := e.EvalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	if expr.Op.Type == lexer.OR {
		if objects.IsTruthy(lhs) {
			return lhs, nil
		}
	} else {
		if !objects.IsTruthy(lhs) {
			return lhs, nil
		}
	}
	return e.EvalExpr(expr.Right)
}

func (e *Evaluator) evalAssignExpr(expr *parser.AssignExpr) (objects.SpicyObject, error) {
	value, err := e.EvalExpr(expr.Right)
	if err != nil {
		return nil, err
	}
	if err := e.assignVariable(expr.VarName, expr.ID, value); err != nil {
		return nil, err
	}
	return value, nil
}

// assignVariable writes through the resolver depth when one was
// recorded, otherwise to the global frame.
func (e *Evaluator) assignVariable(name lexer.Token, id int, value objects.SpicyObject) error {
	if distance, ok := e.Locals[id]; ok {
		return wrapScopeError(name, e.EnvMgr.AssignAt(distance, name.Lexeme, value))
	}
	return wrapScopeError(name, e.EnvMgr.AssignGlobal(name.Lexeme, value))
}

// lookUpVariable reads through the resolver depth when one was
// recorded, otherwise from the global frame.
func (e *Evaluator) lookUpVariable(name lexer.Token, id int) (objects.SpicyObject, error) {
	if distance, ok := e.Locals[id]; ok {
		value, err := e.EnvMgr.GetAt(distance, name.Lexeme)
		return value, wrapScopeError(name, err)
	}
	value, err := e.EnvMgr.GetGlobal(name.Lexeme)
	return value, wrapScopeError(name, err)
}

// evalCallExpr evaluates a call. Classes instantiate (running a bound
// `init` when present), functions check arity and execute their body in
// a fresh child of their closure, and built-ins run natively. The
// current frame is saved on entry and restored on every exit path.
func (e *Evaluator) evalCallExpr(expr *parser.CallExpr) (objects.SpicyObject, error) {
	callee, err := e.EvalExpr(expr.Callee)
	if err != nil {
		return nil, err
	}

	switch target := callee.(type) {
	case *std.Builtin:
		return e.evalBuiltinCall(target, expr)
	case *function.Class:
		return e.evalClassCall(target, expr)
	case *function.Function:
		args, err := e.evalArguments(target.Arity(), expr)
		if err != nil {
			return nil, err
		}
		result, err := e.callFunction(target, args)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return objects.NilValue(), nil
		}
		return result, nil
	}
	return nil, objects.NewRuntimeError(expr.Paren, "Attempted to invoke a non-function.")
}

// evalArguments checks the arity and evaluates the argument list in
// order.
func (e *Evaluator) evalArguments(arity int, expr *parser.CallExpr) ([]objects.SpicyObject, error) {
	if len(expr.Arguments) != arity {
		msg := fmt.Sprintf("Expected %d arguments but got %d.", arity, len(expr.Arguments))
		return nil, objects.NewRuntimeError(expr.Paren, msg)
	}
	args := make([]objects.SpicyObject, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := e.EvalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// callFunction runs a user function against evaluated arguments. The
// returned value is nil when the body completed without a `return`.
func (e *Evaluator) callFunction(fn *function.Function, args []objects.SpicyObject) (objects.SpicyObject, error) {
	prev := e.EnvMgr.Current()
	e.EnvMgr.SetCurrent(fn.Closure)
	e.EnvMgr.CreateNew()
	defer func() {
		if fn.IsMethod {
			e.EnvMgr.DiscardUntil(fn.Closure.Parent)
		} else {
			e.EnvMgr.DiscardUntil(fn.Closure)
		}
		e.EnvMgr.SetCurrent(prev)
	}()

	for i, param := range fn.Declaration.Params {
		e.EnvMgr.Define(param.Lexeme, args[i])
	}

	ret, err := e.execStmts(fn.Declaration.Body)
	if err != nil {
		return nil, err
	}

	// an initializer always yields the bound instance
	if fn.IsInit {
		this, err := e.EnvMgr.Get("this")
		if err != nil {
			return nil, wrapScopeError(lexer.Token{}, err)
		}
		return this, nil
	}
	return ret, nil
}

// evalClassCall instantiates a class and runs its initializer, if any,
// bound to the fresh instance. The initializer's return value is
// ignored; the call yields the instance.
func (e *Evaluator) evalClassCall(class *function.Class, expr *parser.CallExpr) (objects.SpicyObject, error) {
	instance := function.NewInstance(class)

	init, hasInit := class.Initializer()
	if !hasInit {
		if len(expr.Arguments) != 0 {
			msg := fmt.Sprintf("Expected 0 arguments but got %d.", len(expr.Arguments))
			return nil, objects.NewRuntimeError(expr.Paren, msg)
		}
		return instance, nil
	}

	bound := e.bindInstance(init, instance)
	args, err := e.evalArguments(bound.Arity(), expr)
	if err != nil {
		return nil, err
	}
	if _, err := e.callFunction(bound, args); err != nil {
		return nil, err
	}
	return instance, nil
}

// evalBuiltinCall checks arity, evaluates the arguments and delegates
// to the built-in's native implementation.
func (e *Evaluator) evalBuiltinCall(builtin *std.Builtin, expr *parser.CallExpr) (objects.SpicyObject, error) {
	args, err := e.evalArguments(builtin.Arity(), expr)
	if err != nil {
		return nil, err
	}
	return builtin.Run(args), nil
}

func (e *Evaluator) evalGetExpr(expr *parser.GetExpr) (objects.SpicyObject, error) {
	obj, err := e.EvalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*function.Instance)
	if !ok {
		return nil, objects.NewRuntimeError(expr.Name, "Only class instances have properties.")
	}
	prop, found := instance.Get(expr.Name.Lexeme)
	if !found {
		msg := fmt.Sprintf("Undefined property '%s'.", expr.Name.Lexeme)
		return nil, objects.NewRuntimeError(expr.Name, msg)
	}
	if method, isMethod := prop.(*function.Function); isMethod {
		return e.bindInstance(method, instance), nil
	}
	return prop, nil
}

func (e *Evaluator) evalSetExpr(expr *parser.SetExpr) (objects.SpicyObject, error) {
	obj, err := e.EvalExpr(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*function.Instance)
	if !ok {
		return nil, objects.NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := e.EvalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name.Lexeme, value)
	return value, nil
}

// evalSuperExpr looks the method up on the superclass stored in an
// enclosing frame and binds it to the `this` of the surrounding frame.
func (e *Evaluator) evalSuperExpr(expr *parser.SuperExpr) (objects.SpicyObject, error) {
	distance, ok := e.Locals[expr.ID]
	if !ok {
		return nil, objects.NewRuntimeError(expr.Keyword, "Cannot use 'super' outside of a class.")
	}
	superObj, err := e.EnvMgr.GetAt(distance, "super")
	if err != nil {
		return nil, wrapScopeError(expr.Keyword, err)
	}
	superClass, ok := superObj.(*function.Class)
	if !ok {
		return nil, objects.NewRuntimeError(expr.Keyword, "Superclass must be a class.")
	}
	thisObj, err := e.EnvMgr.GetAt(distance-1, "this")
	if err != nil {
		return nil, wrapScopeError(expr.Keyword, err)
	}
	instance := thisObj.(*function.Instance)

	method, found := superClass.FindMethod(expr.Method.Lexeme)
	if !found {
		msg := fmt.Sprintf("Attempted to access undefined property %s on super.", expr.Method.Lexeme)
		return nil, objects.NewRuntimeError(expr.Method, msg)
	}
	return e.bindInstance(method, instance), nil
}

func (e *Evaluator) evalIndexGetExpr(expr *parser.IndexGetExpr) (objects.SpicyObject, error) {
	lst, idx, err := e.evalIndexOperands(expr.LBracket, expr.List, expr.Index)
	if err != nil {
		return nil, err
	}
	value, inRange := lst.Get(idx)
	if !inRange {
		return nil, objects.NewRuntimeError(expr.LBracket, "List index out of range.")
	}
	return value, nil
}

func (e *Evaluator) evalIndexSetExpr(expr *parser.IndexSetExpr) (objects.SpicyObject, error) {
	lst, idx, err := e.evalIndexOperands(expr.LBracket, expr.List, expr.Index)
	if err != nil {
		return nil, err
	}
	value, err := e.EvalExpr(expr.Value)
	if err != nil {
		return nil, err
	}
	if !lst.Set(idx, value) {
		return nil, objects.NewRuntimeError(expr.LBracket, "List index out of range.")
	}
	return value, nil
}

// evalIndexOperands evaluates and type-checks a list indexing pair.
func (e *Evaluator) evalIndexOperands(lbracket lexer.Token, listExpr, idxExpr parser.Expr) (*objects.List, int, error) {
	obj, err := e.EvalExpr(listExpr)
	if err != nil {
		return nil, 0, err
	}
	lst, ok := obj.(*objects.List)
	if !ok {
		return nil, 0, objects.NewRuntimeError(lbracket, "Only lists can be indexed.")
	}
	idxObj, err := e.EvalExpr(idxExpr)
	if err != nil {
		return nil, 0, err
	}
	idx, ok := idxObj.(*objects.Num)
	if !ok {
		return nil, 0, objects.NewRuntimeError(lbracket, "List index must be a number.")
	}
	return lst, int(idx.Value), nil
}
