package services

// Accessors for decoded JSON bodies. Update handlers apply only the keys
// actually present in the request, so presence and value are reported
// separately.

// fieldString reports whether the key is present, and its string value
// (explicit null reads as the empty string).
func fieldString(data map[string]interface{}, key string) (string, bool) {
	value, ok := data[key]
	if !ok {
		return "", false
	}
	s, _ := value.(string)
	return s, true
}

// fieldFloatPtr reports presence and the value as a nullable float.
func fieldFloatPtr(data map[string]interface{}, key string) (*float64, bool) {
	value, ok := data[key]
	if !ok {
		return nil, false
	}
	if f, isFloat := value.(float64); isFloat {
		return &f, true
	}
	return nil, true
}

// fieldUintPtr reports presence and the value as a nullable unsigned id.
// JSON numbers decode as float64.
func fieldUintPtr(data map[string]interface{}, key string) (*uint, bool) {
	value, ok := data[key]
	if !ok {
		return nil, false
	}
	if f, isFloat := value.(float64); isFloat && f > 0 {
		id := uint(f)
		return &id, true
	}
	return nil, true
}

// fieldBool returns the value when present and a boolean, else the
// fallback.
func fieldBool(data map[string]interface{}, key string, fallback bool) bool {
	if value, ok := data[key]; ok {
		if b, isBool := value.(bool); isBool {
			return b
		}
	}
	return fallback
}

// fieldInt reports presence and the value as an int.
func fieldInt(data map[string]interface{}, key string) (int, bool) {
	value, ok := data[key]
	if !ok {
		return 0, false
	}
	f, isFloat := value.(float64)
	if !isFloat {
		return 0, true
	}
	return int(f), true
}

// fieldStringSlice reports presence and the value as a string slice,
// dropping non-string elements.
func fieldStringSlice(data map[string]interface{}, key string) ([]string, bool) {
	value, ok := data[key]
	if !ok {
		return nil, false
	}
	raw, isSlice := value.([]interface{})
	if !isSlice {
		return []string{}, true
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, isString := item.(string); isString {
			out = append(out, s)
		}
	}
	return out, true
}
