package myft

// Sanitize returns a copy of data where every "true" or "false" string held by a map
// key or a Param is replaced by the matching boolean. Maps, slices and Params are
// walked recursively. Strings directly inside slices and any other value are left
// untouched.
func Sanitize(data any) any {
	return sanitize(data, false)
}

func sanitize(v any, field bool) any {
	switch t := v.(type) {
	case string:
		if field {
			switch t {
			case "true":
				return true
			case "false":
				return false
			}
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = sanitize(x, true)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = sanitize(x, true)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = sanitize(x, false)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = sanitize(x, false)
		}
		return out
	case Params:
		out := make(Params, len(t))
		for i, p := range t {
			out[i] = Param{Key: p.Key, Value: sanitize(p.Value, true)}
		}
		return out
	default:
		return v
	}
}
