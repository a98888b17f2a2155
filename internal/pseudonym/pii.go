package pseudonym

import (
	"math"

	"github.com/samber/lo"
)

// piiKeys are the top-level keys that mark a record as carrying PII
var piiKeys = []string{"name", "email", "phone", "address"}

// ContainsPII reports whether record has a non-empty value on any PII key.
// It is a coarse check on a fixed key set, not a content scan.
func ContainsPII(record map[string]any) bool {
	if record == nil {
		return false
	}
	return lo.SomeBy(piiKeys, func(k string) bool {
		return isSet(record[k])
	})
}

// isSet treats nil, false, zero numbers and empty strings as unset.
// Any other value, including empty collections, counts as set.
func isSet(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case int:
		return x != 0
	case int64:
		return x != 0
	case int32:
		return x != 0
	default:
		return true
	}
}
