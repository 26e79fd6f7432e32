package engine

import (
	"fmt"
	"reflect"
	"strconv"
)

// unsetValue marks a data slot that has never been written.
type unsetValue struct{}

// checkAndUpdateBinding records value at index and reports whether it
// differs from the value recorded there before. An index that was never
// written, including index == len(bindings), always reports a change.
func checkAndUpdateBinding(bindings *[]any, index int, value any) bool {
	b := *bindings
	if index >= len(b) {
		for len(b) <= index {
			b = append(b, unsetValue{})
		}
		b[index] = value
		*bindings = b
		return true
	}
	if _, unset := b[index].(unsetValue); !unset && sameValue(b[index], value) {
		return false
	}
	b[index] = value
	return true
}

// setData overwrites a data slot without diffing, growing the slice.
func setData(n *VNode, index int, value any) {
	for len(n.data) <= index {
		n.data = append(n.data, unsetValue{})
	}
	n.data[index] = value
}

// sameValue is strict equality: == for comparable values, reference
// identity for maps and slices. Functions never compare equal.
func sameValue(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case nil:
		return b == nil
	}
	if b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}

// toString converts a bound value to its native string form.
func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
