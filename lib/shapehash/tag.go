// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// TagKey is the struct tag key that carries name overrides.
const TagKey = "typehash"

// lookupOverride returns the override in tag, if any. Unlike
// reflect.StructTag.Lookup, which stops silently at the first syntax
// error and returns the first of several duplicate keys, it reports a
// repeated key as ErrDuplicateOverride and a malformed or empty value,
// or one containing control characters, as ErrMalformedOverride. Syntax errors in tags that never mention TagKey
// belong to other packages and are ignored.
func lookupOverride(tag reflect.StructTag) (string, bool, error) {
	var (
		value string
		found bool
	)
	remaining := string(tag)
	for remaining != "" {
		remaining = strings.TrimLeft(remaining, " ")
		if remaining == "" {
			break
		}

		// Key: a run of non-space, non-control characters up to ':'.
		i := 0
		for i < len(remaining) && remaining[i] > ' ' && remaining[i] != ':' && remaining[i] != '"' && remaining[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(remaining) || remaining[i] != ':' || remaining[i+1] != '"' {
			if strings.Contains(remaining, TagKey+":") {
				return "", false, fmt.Errorf("%w: tag %q", ErrMalformedOverride, string(tag))
			}
			return value, found, nil
		}
		key := remaining[:i]
		remaining = remaining[i+1:]

		// Value: a Go double-quoted string.
		i = 1
		for i < len(remaining) && remaining[i] != '"' {
			if remaining[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(remaining) {
			if key == TagKey || strings.Contains(remaining, TagKey+":") {
				return "", false, fmt.Errorf("%w: unterminated value in tag %q", ErrMalformedOverride, string(tag))
			}
			return value, found, nil
		}
		quoted := remaining[:i+1]
		remaining = remaining[i+1:]

		if key != TagKey {
			continue
		}
		if found {
			return "", false, fmt.Errorf("%w: tag %q", ErrDuplicateOverride, string(tag))
		}
		unquoted, err := strconv.Unquote(quoted)
		if err != nil {
			return "", false, fmt.Errorf("%w: %s", ErrMalformedOverride, quoted)
		}
		if unquoted == "" {
			return "", false, fmt.Errorf("%w: empty name", ErrMalformedOverride)
		}
		if strings.ContainsFunc(unquoted, unicode.IsControl) {
			return "", false, fmt.Errorf("%w: control character in %s", ErrMalformedOverride, quoted)
		}
		value, found = unquoted, true
	}
	return value, found, nil
}
