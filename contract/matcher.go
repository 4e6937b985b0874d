package contract

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Matcher decides whether a resolved field value is acceptable. present is false when the field
// path did not resolve, in which case actual is null.
type Matcher interface {
	Match(actual ldvalue.Value, present bool) bool
	// String describes the expected value, for diagnostics.
	String() string
}

// Value converts an arbitrary Go value (including ldvalue.Value) into an ldvalue.Value.
func Value(v interface{}) ldvalue.Value {
	if lv, ok := v.(ldvalue.Value); ok {
		return lv
	}
	return ldvalue.CopyArbitraryValue(v)
}

// EqualsMatcher matches a value that is deeply equal to Want. Numbers compare by value, so 1 and
// 1.0 are equal.
type EqualsMatcher struct {
	Want ldvalue.Value
}

// Equals matches a present field equal to v.
func Equals(v interface{}) Matcher {
	return EqualsMatcher{Want: Value(v)}
}

func (m EqualsMatcher) Match(actual ldvalue.Value, present bool) bool {
	return present && actual.Equal(m.Want)
}

func (m EqualsMatcher) String() string {
	return m.Want.JSONString()
}

type oneOfMatcher struct {
	wants []ldvalue.Value
}

// OneOf matches a present field equal to any of values.
func OneOf(values ...interface{}) Matcher {
	m := oneOfMatcher{}
	for _, v := range values {
		m.wants = append(m.wants, Value(v))
	}
	return m
}

func (m oneOfMatcher) Match(actual ldvalue.Value, present bool) bool {
	if !present {
		return false
	}
	for _, w := range m.wants {
		if actual.Equal(w) {
			return true
		}
	}
	return false
}

func (m oneOfMatcher) String() string {
	ss := make([]string, 0, len(m.wants))
	for _, w := range m.wants {
		ss = append(ss, w.JSONString())
	}
	return "one of [" + strings.Join(ss, ", ") + "]"
}

type presentMatcher struct{ want bool }

// Present matches any value, including null, as long as the field exists.
func Present() Matcher { return presentMatcher{want: true} }

// Absent matches only when the field does not exist.
func Absent() Matcher { return presentMatcher{want: false} }

func (m presentMatcher) Match(_ ldvalue.Value, present bool) bool {
	return present == m.want
}

func (m presentMatcher) String() string {
	if m.want {
		return "present"
	}
	return "absent"
}

type typeMatcher struct{ t ldvalue.ValueType }

// OfType matches a present field of the given JSON type.
func OfType(t ldvalue.ValueType) Matcher { return typeMatcher{t: t} }

// IsArray matches a present JSON array, which may be empty.
func IsArray() Matcher { return typeMatcher{t: ldvalue.ArrayType} }

// IsObject matches a present JSON object.
func IsObject() Matcher { return typeMatcher{t: ldvalue.ObjectType} }

func (m typeMatcher) Match(actual ldvalue.Value, present bool) bool {
	return present && actual.Type() == m.t
}

func (m typeMatcher) String() string {
	return "a JSON " + m.t.String()
}

type nonEmptyStringMatcher struct{}

// NonEmptyString matches a present string of at least one character.
func NonEmptyString() Matcher { return nonEmptyStringMatcher{} }

func (nonEmptyStringMatcher) Match(actual ldvalue.Value, present bool) bool {
	return present && actual.Type() == ldvalue.StringType && actual.StringValue() != ""
}

func (nonEmptyStringMatcher) String() string {
	return "a non-empty string"
}
