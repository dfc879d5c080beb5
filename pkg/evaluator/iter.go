package evaluator

// iterate calls fn for each element of v until fn returns false or an
// error. Lists are walked live, so appends during a loop are visited.
func (ev *evaluator) iterate(v Value, fn func(item Value) (bool, error)) error {
	switch c := v.(type) {
	case *List:
		for i := 0; i < len(c.Items); i++ {
			if more, err := fn(c.Items[i]); err != nil || !more {
				return err
			}
		}
		return nil
	case *Tuple:
		return eachItem(c.Items, fn)
	case Str:
		for _, r := range string(c) {
			if more, err := fn(Str(string(r))); err != nil || !more {
				return err
			}
		}
		return nil
	case *Dict:
		return eachItem(c.Keys(), fn)
	case *Set:
		return eachItem(c.Items(), fn)
	case *Generator:
		for {
			item, ok, err := c.Next(ev.ctx)
			if err != nil || !ok {
				return err
			}
			if more, err := fn(item); err != nil || !more {
				return err
			}
		}
	}
	return typeErrorf("Objek '%s' tidak dapat diiterasi", TypeName(v))
}

func eachItem(items []Value, fn func(item Value) (bool, error)) error {
	for _, it := range items {
		if more, err := fn(it); err != nil || !more {
			return err
		}
	}
	return nil
}

// collect materializes the elements of an iterable.
func (ev *evaluator) collect(v Value) ([]Value, error) {
	switch c := v.(type) {
	case *List:
		return append([]Value(nil), c.Items...), nil
	case *Tuple:
		return append([]Value(nil), c.Items...), nil
	}
	var out []Value
	err := ev.iterate(v, func(item Value) (bool, error) {
		out = append(out, item)
		return true, nil
	})
	return out, err
}
