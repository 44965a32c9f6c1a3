/*
File : spicy/function/class.go
*/
package function

import (
	"fmt"

	"github.com/spicylang/spicy/objects"
)

// Class represents a class value: its name, an optional superclass and
// its method table. Classes are first-class values and may be
// reassigned like any other binding.
type Class struct {
	ClassName  string
	SuperClass *Class
	Methods    map[string]*Function
}

// NewClass builds a class from its evaluated method set.
func NewClass(name string, superClass *Class, methods map[string]*Function) *Class {
	return &Class{ClassName: name, SuperClass: superClass, Methods: methods}
}

// FindMethod looks a method up on this class and then up the
// superclass chain; the nearest definition wins.
func (c *Class) FindMethod(name string) (*Function, bool) {
	if method, ok := c.Methods[name]; ok {
		return method, true
	}
	if c.SuperClass != nil {
		return c.SuperClass.FindMethod(name)
	}
	return nil, false
}

// Initializer returns the `init` method, if the class (or a superclass)
// declares one.
func (c *Class) Initializer() (*Function, bool) {
	return c.FindMethod("init")
}

// Arity returns the parameter count of the initializer, or zero when
// the class has none.
func (c *Class) Arity() int {
	if init, ok := c.Initializer(); ok {
		return init.Arity()
	}
	return 0
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.ClassName
}

// GetType returns the type identifier for class values.
func (c *Class) GetType() objects.SpicyType {
	return objects.ClassType
}

// ToString returns e.g. "<class Greeter>".
func (c *Class) ToString() string {
	return fmt.Sprintf("<class %s>", c.ClassName)
}

// ToObject returns the same form as ToString with the superclass, if
// any, named.
func (c *Class) ToObject() string {
	if c.SuperClass != nil {
		return fmt.Sprintf("<class %s : %s>", c.ClassName, c.SuperClass.ClassName)
	}
	return c.ToString()
}
