package i18n

import "strings"

// Lookup walks a dotted path from v. It stops at the first segment that
// cannot be followed and reports false; there are no partial results.
func (v Value) Lookup(path string) (Value, bool) {
	if v.IsNull() {
		return Value{}, false
	}

	cur := v
	for _, segment := range strings.Split(path, ".") {
		next, ok := cur.Child(segment)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}

// Resolve looks up path in root and returns it as a T. The fallback is
// returned when the path does not resolve, when it resolves to null, or when
// the value is not a T. T may be Value itself to get the raw node.
func Resolve[T any](root Value, path string, fallback T) T {
	v, ok := root.Lookup(path)
	if !ok || v.IsNull() {
		return fallback
	}
	if t, ok := any(v).(T); ok {
		return t
	}
	if t, ok := v.Interface().(T); ok {
		return t
	}
	return fallback
}

// ResolveString is Resolve for strings: any non-string value yields fallback.
func ResolveString(root Value, path, fallback string) string {
	return Resolve(root, path, fallback)
}
