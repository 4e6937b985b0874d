package contract

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Resolve walks a dotted field path through v. Numeric segments index into arrays; the empty path
// is v itself. It returns false if any segment is missing or the value at that point has the wrong
// shape, so callers never have to guard against the response being something unexpected.
func Resolve(v ldvalue.Value, path string) (ldvalue.Value, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch cur.Type() {
		case ldvalue.ObjectType:
			if !hasKey(cur, seg) {
				return ldvalue.Null(), false
			}
			cur = cur.GetByKey(seg)
		case ldvalue.ArrayType:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= cur.Count() {
				return ldvalue.Null(), false
			}
			cur = cur.GetByIndex(i)
		default:
			return ldvalue.Null(), false
		}
	}
	return cur, true
}

// GetByKey returns null both for a missing key and for a key whose value is null; presence
// matters to matchers, so check the key list.
func hasKey(obj ldvalue.Value, key string) bool {
	for _, k := range obj.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// JoinPath joins field path segments, skipping empty ones.
func JoinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}
