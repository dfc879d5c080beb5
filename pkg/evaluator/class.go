package evaluator

import "github.com/MrXploisLite/CodingYok/pkg/diagnostics"

// Class is a user-defined or built-in kelas. Methods hold *Function values
// for user classes and *Builtin values for the built-in exception classes.
type Class struct {
	Name      string
	Super     *Class
	Methods   map[string]Value
	exception bool
}

func (*Class) cyvalue() {}

// FindMethod looks name up on the class and then on its ancestors.
func (c *Class) FindMethod(name string) (Value, bool) {
	for k := c; k != nil; k = k.Super {
		if m, ok := k.Methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is other or inherits from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.Super {
		if k == other {
			return true
		}
	}
	return false
}

// IsException reports whether instances of c can be raised.
func (c *Class) IsException() bool {
	for k := c; k != nil; k = k.Super {
		if k.exception {
			return true
		}
	}
	return false
}

// Instance is an object created by calling a class.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (*Instance) cyvalue() {}

// NewInstance creates an instance with no fields.
func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value)}
}

func (i *Instance) exceptionMessage() (string, bool) {
	if !i.Class.IsException() {
		return "", false
	}
	if msg, ok := i.Fields["pesan"]; ok {
		return ToStr(msg), true
	}
	return "", true
}

// BoundMethod pairs a method with the receiver passed as diri.
type BoundMethod struct {
	Receiver Value
	Method   Value
}

func (*BoundMethod) cyvalue() {}

// exceptionInit stores the message under "pesan" and all arguments
// under "args".
func exceptionInit(h Host, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, typeErrorf("__init__ membutuhkan argumen 'diri'")
	}
	self, ok := args[0].(*Instance)
	if !ok {
		return nil, typeErrorf("__init__ membutuhkan instance, bukan '%s'", TypeName(args[0]))
	}
	rest := append([]Value(nil), args[1:]...)
	msg := Str("")
	if len(rest) > 0 {
		s, err := h.Str(rest[0])
		if err != nil {
			return nil, err
		}
		msg = Str(s)
	}
	self.Fields["pesan"] = msg
	self.Fields["args"] = NewTuple(rest)
	return None{}, nil
}

// builtinExceptions holds the exception hierarchy shared by all
// interpreters. The classes are immutable.
var builtinExceptions = newExceptionHierarchy()

func newExceptionHierarchy() map[string]*Class {
	base := &Class{
		Name:      "Exception",
		Methods:   map[string]Value{"__init__": NewBuiltin("__init__", exceptionInit)},
		exception: true,
	}
	classes := map[string]*Class{"Exception": base}
	derive := func(name string, super *Class) *Class {
		c := &Class{Name: name, Super: super, Methods: map[string]Value{}}
		classes[name] = c
		return c
	}
	for _, name := range []string{
		"ValueError", "TypeError", "IndexError", "KeyError", "AttributeError",
		"NameError", "ZeroDivisionError", "OverflowError", "AssertionError", "IOError", "RuntimeError",
	} {
		derive(name, base)
	}
	derive("ModuleNotFoundError", derive("ImportError", base))
	derive("RecursionError", classes["RuntimeError"])
	return classes
}

// ExceptionClass returns the built-in exception class called name.
func ExceptionClass(name string) (*Class, bool) {
	c, ok := builtinExceptions[name]
	return c, ok
}

// newException instantiates the built-in class name with message msg.
func newException(name, msg string) *Instance {
	c, ok := builtinExceptions[name]
	if !ok {
		c = builtinExceptions["Exception"]
	}
	inst := NewInstance(c)
	inst.Fields["pesan"] = Str(msg)
	inst.Fields["args"] = NewTuple([]Value{Str(msg)})
	return inst
}

// exceptionOf returns the exception object for a caught runtime error,
// materializing one from the error code when the error came from the
// interpreter itself.
func exceptionOf(rt *RuntimeError) *Instance {
	if rt.Exception == nil {
		name, ok := exceptionClassFor[rt.Code]
		if !ok {
			name = "RuntimeError"
		}
		rt.Exception = newException(name, rt.Message)
	}
	return rt.Exception
}

// codeForException picks the diagnostic code reported when inst escapes
// the program uncaught.
func codeForException(inst *Instance) string {
	for k := inst.Class; k != nil; k = k.Super {
		if builtinExceptions[k.Name] == k {
			if code, ok := codeForClass[k.Name]; ok {
				return code
			}
		}
	}
	return diagnostics.ERaised
}
