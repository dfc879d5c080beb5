package evaluator

func (ev *evaluator) getAttr(obj Value, name string) (Value, error) {
	switch o := obj.(type) {
	case *Instance:
		if v, ok := o.Fields[name]; ok {
			return v, nil
		}
		if m, ok := o.Class.FindMethod(name); ok {
			return &BoundMethod{Receiver: o, Method: m}, nil
		}
		return nil, attrErrorf("Objek '%s' tidak memiliki atribut '%s'", o.Class.Name, name)
	case *Class:
		if m, ok := o.FindMethod(name); ok {
			return m, nil
		}
		if name == "__name__" {
			return Str(o.Name), nil
		}
		return nil, attrErrorf("Kelas '%s' tidak memiliki atribut '%s'", o.Name, name)
	case *Module:
		if v, ok := o.Get(name); ok {
			return v, nil
		}
		return nil, attrErrorf("Modul '%s' tidak memiliki atribut '%s'", o.Name, name)
	}
	if m, ok := hostMethod(obj, name); ok {
		return m, nil
	}
	return nil, attrErrorf("Objek '%s' tidak memiliki atribut '%s'", TypeName(obj), name)
}

func setAttr(obj Value, name string, val Value) error {
	switch o := obj.(type) {
	case *Instance:
		o.Fields[name] = val
		return nil
	case *Module:
		return attrErrorf("Namespace modul '%s' tidak dapat diubah", o.Name)
	}
	return attrErrorf("Tidak dapat mengatur atribut '%s' pada objek '%s'", name, TypeName(obj))
}

// hostMethod binds a method of a built-in type to its receiver.
func hostMethod(obj Value, name string) (Value, bool) {
	var table map[string]methodFunc
	switch obj.(type) {
	case Str:
		table = strMethods
	case *List:
		table = listMethods
	case *Dict:
		table = dictMethods
	case *Set:
		table = setMethods
	case *Tuple:
		table = tupleMethods
	default:
		return nil, false
	}
	m, ok := table[name]
	if !ok {
		return nil, false
	}
	return NewBuiltin(name, func(h Host, args []Value) (Value, error) {
		return m(h, obj, args)
	}), true
}

type methodFunc func(h Host, recv Value, args []Value) (Value, error)

// HostMethodNames lists the methods of a built-in type, for the REPL's
// completion and the help text.
func HostMethodNames(typeName string) []string {
	var table map[string]methodFunc
	switch typeName {
	case "teks":
		table = strMethods
	case "daftar":
		table = listMethods
	case "kamus":
		table = dictMethods
	case "himpunan":
		table = setMethods
	case "tupel":
		table = tupleMethods
	}
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sortStrings(names)
	return names
}

func arity(name string, args []Value, lo, hi int) error {
	if len(args) < lo || len(args) > hi {
		if lo == hi {
			return typeErrorf("%s() membutuhkan %d argumen, diberikan %d", name, lo, len(args))
		}
		return typeErrorf("%s() membutuhkan %d sampai %d argumen, diberikan %d", name, lo, hi, len(args))
	}
	return nil
}
