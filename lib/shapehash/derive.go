// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"fmt"
	"reflect"
	"strings"
)

// deriveStruct reads a composite description from a struct type:
//
//   - exported fields become members in declaration order, named by
//     their `typehash` tag or their identifier
//   - embedded exported fields are anonymous members unless tagged
//   - unexported fields are ignored, but a struct whose fields are all
//     unexported is opaque and fails with ErrUnsupportedKind
//   - blank (_) fields are never members; one of them may carry the
//     type-level override in its `typehash` tag
//
// The canonical type name is the override, else the declared name with
// any type argument list removed.
func deriveStruct(t reflect.Type) (string, []FieldDef, error) {
	var (
		typeName     string
		typeOverride bool
		hidden       int
		fields       []FieldDef
	)
	for index := 0; index < t.NumField(); index++ {
		field := t.Field(index)
		override, ok, err := lookupOverride(field.Tag)
		if err != nil {
			return "", nil, definitionError(t, "field "+field.Name, err)
		}

		if field.Name == "_" {
			if !ok {
				continue
			}
			if typeOverride {
				return "", nil, definitionError(t, "type name", ErrDuplicateOverride)
			}
			typeName, typeOverride = override, true
			continue
		}
		if !field.IsExported() {
			hidden++
			continue
		}

		name := field.Name
		switch {
		case ok:
			name = override
		case field.Anonymous:
			name = AnonymousName
		}
		fields = append(fields, FieldDef{Name: name, Type: field.Type})
	}

	if len(fields) == 0 && hidden > 0 {
		return "", nil, definitionError(t, "", fmt.Errorf("%w: struct with only unexported fields", ErrUnsupportedKind))
	}
	if !typeOverride {
		typeName = declaredName(t)
	}
	if typeName == "" {
		return "", nil, definitionError(t, "", ErrUnnamedType)
	}
	return typeName, fields, nil
}

// declaredName returns t's identifier without package path or type
// arguments: "Pair[int,string]" becomes "Pair".
func declaredName(t reflect.Type) string {
	name := t.Name()
	if bracket := strings.IndexByte(name, '['); bracket >= 0 {
		name = name[:bracket]
	}
	return name
}
