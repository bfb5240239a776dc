package schema

// Field-level coercion helpers. Each one reads a single key from a raw
// object and returns either a usable value or the caller's default; they
// never fail. Numbers arriving from encoding/json are float64, but maps
// built in Go code carry native ints, so number extraction handles both.

func object(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func array(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func coerceString(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func coerceBool(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func coerceNumber(m map[string]any, key string, def float64) float64 {
	if n, ok := number(m[key]); ok {
		return n
	}
	return def
}

// coerceMin returns the value when it is at least min, def otherwise.
func coerceMin(m map[string]any, key string, def, min float64) float64 {
	if n, ok := number(m[key]); ok && n >= min {
		return n
	}
	return def
}

func coercePositive(m map[string]any, key string, def float64) float64 {
	if n, ok := number(m[key]); ok && n > 0 {
		return n
	}
	return def
}

func coerceNonNegative(m map[string]any, key string, def float64) float64 {
	if n, ok := number(m[key]); ok && n >= 0 {
		return n
	}
	return def
}

// coerceEnum returns the value when it is one of valid, the first valid
// entry otherwise.
func coerceEnum(m map[string]any, key string, valid []string) string {
	if s, ok := m[key].(string); ok {
		for _, v := range valid {
			if s == v {
				return s
			}
		}
	}
	return valid[0]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
