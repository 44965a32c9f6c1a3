/*
File : spicy/function/instance.go
*/
package function

import (
	"fmt"

	"github.com/spicylang/spicy/objects"
)

// Instance represents an object created by calling a class. It holds a
// reference to its class and an open field map: assignment may create
// any field name. Method lookups fall through to the class chain; the
// evaluator binds the found method to the instance.
type Instance struct {
	Class  *Class
	Fields map[string]objects.SpicyObject
}

// NewInstance creates an empty instance of the given class.
func NewInstance(class *Class) *Instance {
	return &Instance{
		Class:  class,
		Fields: make(map[string]objects.SpicyObject),
	}
}

// Get reads a field, falling back to a method on the class chain.
// Fields shadow methods. The returned method is unbound; binding to
// the instance is the evaluator's job.
func (i *Instance) Get(name string) (objects.SpicyObject, bool) {
	if value, ok := i.Fields[name]; ok {
		return value, true
	}
	if method, ok := i.Class.FindMethod(name); ok {
		return method, true
	}
	return nil, false
}

// Set writes a field; any name is permitted.
func (i *Instance) Set(name string, value objects.SpicyObject) {
	i.Fields[name] = value
}

// GetType returns the type identifier for instances.
func (i *Instance) GetType() objects.SpicyType {
	return objects.InstanceType
}

// ToString returns e.g. "<instance of Greeter>".
func (i *Instance) ToString() string {
	return fmt.Sprintf("<instance of %s>", i.Class.ClassName)
}

// ToObject returns the same form plus the field count.
func (i *Instance) ToObject() string {
	return fmt.Sprintf("<instance of %s (%d fields)>", i.Class.ClassName, len(i.Fields))
}
