// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package readenv

import (
	"reflect"
	"strings"
	"unicode/utf8"
)

// MaskChar is the character repeated in place of a sensitive value.
const MaskChar = "*"

// MaxMaskLength caps the mask so it does not reveal the length of long secrets.
const MaxMaskLength = 20

// SensitiveKeywords are the lowercase substrings that mark a variable name as
// holding a credential.
var SensitiveKeywords = []string{"key", "secret", "password", "token", "api"}

// Policy classifies variable names as sensitive.
// Implementations must be safe for concurrent use.
type Policy interface {
	IsSensitive(name string) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc func(name string) bool

// IsSensitive calls f(name).
func (f PolicyFunc) IsSensitive(name string) bool {
	return f(name)
}

// KeywordPolicy reports a name as sensitive when its lowercase form contains
// any of the SensitiveKeywords. Matching is by substring, so SECRETARY and
// MONKEY_NAME both match.
type KeywordPolicy struct{}

// IsSensitive implements Policy.
func (KeywordPolicy) IsSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range SensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// AnyOf returns a Policy that reports a name as sensitive when any of the
// given policies does. Nil entries are skipped, including typed nils such as
// a nil *celpolicy.Policy or a nil PolicyFunc.
func AnyOf(policies ...Policy) Policy {
	set := make([]Policy, 0, len(policies))
	for _, p := range policies {
		if !isNil(p) {
			set = append(set, p)
		}
	}
	return PolicyFunc(func(name string) bool {
		for _, p := range set {
			if p.IsSensitive(name) {
				return true
			}
		}
		return false
	})
}

func isNil(p Policy) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// Mask returns MaskChar repeated once per character of value, up to MaxMaskLength.
func Mask(value string) string {
	return strings.Repeat(MaskChar, min(utf8.RuneCountInString(value), MaxMaskLength))
}
