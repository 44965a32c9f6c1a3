/*
File : spicy/eval/eval_helpers.go
*/
package eval

import (
	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/objects"
)

// checkUnaryNumOperand verifies the operand of unary '-' is a number.
func checkUnaryNumOperand(op lexer.Token, rhs objects.SpicyObject) (*objects.Num, error) {
	if num, ok := rhs.(*objects.Num); ok {
		return num, nil
	}
	return nil, objects.NewRuntimeError(op, "Operand must be a number.")
}

// checkBinaryNumOperands verifies both operands of an arithmetic or
// comparison operator are numbers.
func checkBinaryNumOperands(op lexer.Token, lhs, rhs objects.SpicyObject) (*objects.Num, *objects.Num, error) {
	lnum, lok := lhs.(*objects.Num)
	rnum, rok := rhs.(*objects.Num)
	if lok && rok {
		return lnum, rnum, nil
	}
	return nil, nil, objects.NewRuntimeError(op, "Operands must be numbers.")
}

// evalPlus implements '+': numeric addition or string concatenation.
func evalPlus(op lexer.Token, lhs, rhs objects.SpicyObject) (objects.SpicyObject, error) {
	if lnum, ok := lhs.(*objects.Num); ok {
		if rnum, ok := rhs.(*objects.Num); ok {
			return objects.NewNum(lnum.Value + rnum.Value), nil
		}
	}
	if lstr, ok := lhs.(*objects.Str); ok {
		if rstr, ok := rhs.(*objects.Str); ok {
			return objects.NewStr(lstr.Value + rstr.Value), nil
		}
	}
	return nil, objects.NewRuntimeError(op, "Operands must be numbers or strings.")
}

// wrapScopeError attaches the offending token to an environment error
// (undefined or uninitialized variable).
func wrapScopeError(token lexer.Token, err error) error {
	if err == nil {
		return nil
	}
	return objects.NewRuntimeError(token, err.Error())
}
