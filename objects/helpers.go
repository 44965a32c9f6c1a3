/*
File : spicy/objects/helpers.go
*/
package objects

// IsTruthy implements SpicyLang truthiness: false and nil are falsy,
// every other value is truthy (including 0 and "").
func IsTruthy(obj SpicyObject) bool {
	switch v := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return v.Value
	default:
		return true
	}
}

// AreEqual implements the `==` operator:
//   - strings, numbers and booleans compare by value
//   - nil equals nil
//   - named callables (functions, built-ins, classes) compare by name
//   - everything else (instances, lists) compares by identity
func AreEqual(lhs, rhs SpicyObject) bool {
	switch l := lhs.(type) {
	case *Str:
		r, ok := rhs.(*Str)
		return ok && l.Value == r.Value
	case *Num:
		r, ok := rhs.(*Num)
		return ok && l.Value == r.Value
	case *Boolean:
		r, ok := rhs.(*Boolean)
		return ok && l.Value == r.Value
	case *Nil:
		_, ok := rhs.(*Nil)
		return ok
	}
	if ln, ok := lhs.(Named); ok {
		if rn, ok := rhs.(Named); ok {
			return lhs.GetType() == rhs.GetType() && ln.Name() == rn.Name()
		}
		return false
	}
	return lhs == rhs
}
