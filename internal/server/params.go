package server

import (
	"fmt"
	"math"

	"github.com/mj1618/undecorate/internal/platform"
)

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// windowIDParam reads a window id given either as a hex string ("0x3a00007")
// or as a number.
func windowIDParam(params map[string]interface{}, key string) (uint32, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	switch id := v.(type) {
	case string:
		return platform.ParseWindowID(id)
	case float64:
		if id < 0 || id > math.MaxUint32 || id != math.Trunc(id) {
			return 0, fmt.Errorf("invalid %s: %v", key, id)
		}
		return uint32(id), nil
	case int:
		if id < 0 || int64(id) > math.MaxUint32 {
			return 0, fmt.Errorf("invalid %s: %v", key, id)
		}
		return uint32(id), nil
	}
	return 0, fmt.Errorf("invalid %s: %v", key, v)
}
