package form

import "reflect"

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case nil:
		return nil
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		clone := make([]string, len(typed))
		copy(clone, typed)
		return clone
	}
	return copyReflect(reflect.ValueOf(value)).Interface()
}

// copyReflect clones slices, arrays and maps of any element type. Other
// kinds are returned as they are.
func copyReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		return copyReflect(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		clone := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			clone.Index(i).Set(copyElem(rv.Index(i)))
		}
		return clone
	case reflect.Array:
		clone := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			clone.Index(i).Set(copyElem(rv.Index(i)))
		}
		return clone
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		clone := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), copyElem(iter.Value()))
		}
		return clone
	default:
		return rv
	}
}

// copyElem clones one element so it stays assignable to its container.
func copyElem(elem reflect.Value) reflect.Value {
	if elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return reflect.Zero(elem.Type())
		}
		return copyReflect(elem.Elem())
	}
	return copyReflect(elem)
}
