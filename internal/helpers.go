package internal

import "strconv"

// ContextValue returns the value stored under key, or the zero value of T.
//
// Example:
//
//	claims := internal.ContextValue[accounts.Claims](c, internal.JWTClaimsKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param retrieves a typed URL parameter. Unparseable values yield the zero value.
func Param[T ~string | ~int | ~int64 | ~bool](c Context, name string) T {
	v, _ := convertParam[T](c.Param(name))
	return v
}

// QueryDefault retrieves a typed query parameter with a default value.
// Returns defaultValue if the parameter is empty or cannot be parsed.
func QueryDefault[T ~string | ~int | ~int64 | ~bool](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// PositiveQuery reads an integer query parameter that must be at least 1.
// Missing, malformed, or non-positive values yield def; values above max are clamped.
// A max of 0 disables the upper bound.
func PositiveQuery(c Context, name string, def, max int) int {
	v := QueryDefault(c, name, def)
	if v < 1 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

func convertParam[T ~string | ~int | ~int64 | ~bool](raw string) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		out = raw
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		out = v
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		out = v
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		out = v
	default:
		return zero, false
	}
	return out.(T), true
}
