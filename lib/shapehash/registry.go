// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shapehash

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"
)

// FieldDef is one member of a manual definition. An empty Name makes
// the member anonymous.
type FieldDef struct {
	Name string
	Type reflect.Type
}

// VariantDef is one variant of a manual enum definition.
type VariantDef struct {
	Name   string
	Fields []FieldDef
}

// definition is the front-end description of a composite: what
// DefineStruct, DefineEnum, RegisterEnum, and struct derivation all
// produce before member types are resolved.
type definition struct {
	name     string
	enum     bool
	fields   []FieldDef
	variants []VariantDef
}

// Registry resolves Go types to shapes and caches the result. Each type
// is built at most once; later requests return the cached shape. Alias
// and definition registration must happen before the affected type is
// first resolved.
//
// A Registry is safe for concurrent use. Shape construction is
// serialized under one lock; the shapes it returns are immutable and can
// be hashed concurrently. Because the lock is held while a Shaper runs,
// a Shaper resolves nested types through the Resolver it is given,
// never through the Registry itself.
type Registry struct {
	logger *slog.Logger

	mu          sync.Mutex
	aliases     map[reflect.Type]reflect.Type
	definitions map[reflect.Type]definition
	shapes      map[reflect.Type]Shape
}

// NewRegistry returns an empty registry. Built-in aliases and
// primitives need no registration. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		logger:      logger,
		aliases:     make(map[reflect.Type]reflect.Type),
		definitions: make(map[reflect.Type]definition),
		shapes:      make(map[reflect.Type]Shape),
	}
}

var defaultRegistry = NewRegistry(nil)

// Default returns the process-wide registry used by Of and MustOf.
func Default() *Registry { return defaultRegistry }

// Alias declares that representation has exactly the shape of
// canonical. The canonical type may itself be an alias. A declaration
// that would close a cycle fails with ErrAliasCycle.
func (r *Registry) Alias(representation, canonical reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUndefined(representation); err != nil {
		return err
	}
	if _, err := r.resolveAlias(canonical, []reflect.Type{representation}); err != nil {
		return definitionError(representation, "alias", err)
	}
	r.aliases[representation] = canonical
	r.logger.Debug("registered shape alias",
		"representation", representation.String(),
		"canonical", canonical.String(),
	)
	return nil
}

// AliasOf is the generic form of Registry.Alias.
func AliasOf[Representation, Canonical any](r *Registry) error {
	return r.Alias(reflect.TypeFor[Representation](), reflect.TypeFor[Canonical]())
}

// DefineStruct registers a struct shape for t by hand, bypassing struct
// tag derivation. Field types are resolved when t is first hashed.
func (r *Registry) DefineStruct(t reflect.Type, name string, fields ...FieldDef) error {
	return r.define(t, definition{name: name, fields: append([]FieldDef(nil), fields...)})
}

// DefineEnum registers an enum shape for t by hand. This is how
// constant-based enums (type Color int; const Red Color = iota ...) get
// variant names, since reflection cannot see constants.
func (r *Registry) DefineEnum(t reflect.Type, name string, variants ...VariantDef) error {
	copied := make([]VariantDef, len(variants))
	for index, variant := range variants {
		copied[index] = VariantDef{Name: variant.Name, Fields: append([]FieldDef(nil), variant.Fields...)}
	}
	return r.define(t, definition{name: name, enum: true, variants: copied})
}

// EnumOption configures RegisterEnum.
type EnumOption func(*enumOptions)

type enumOptions struct {
	names []string
}

// Rename overrides the canonical name of an enum. At most one Rename may
// be given.
func Rename(name string) EnumOption {
	return func(options *enumOptions) {
		options.names = append(options.names, name)
	}
}

// RegisterEnum registers a Go sum type: an interface implemented by a
// closed, ordered set of variant structs. Each variant's canonical name
// and members are derived exactly as for a struct. Variant order is the
// order given and is part of the shape.
func (r *Registry) RegisterEnum(iface reflect.Type, variants []reflect.Type, options ...EnumOption) error {
	if iface.Kind() != reflect.Interface {
		return definitionError(iface, "", fmt.Errorf("%w: enum must be an interface, got %s", ErrUnsupportedKind, iface.Kind()))
	}

	var configured enumOptions
	for _, option := range options {
		option(&configured)
	}
	name := declaredName(iface)
	switch len(configured.names) {
	case 0:
	case 1:
		if configured.names[0] == "" {
			return definitionError(iface, "enum name", ErrMalformedOverride)
		}
		name = configured.names[0]
	default:
		return definitionError(iface, "enum name", ErrDuplicateOverride)
	}

	definitions := make([]VariantDef, 0, len(variants))
	for _, variant := range variants {
		if !variant.Implements(iface) && !reflect.PointerTo(variant).Implements(iface) {
			return definitionError(iface, "variant "+variant.String(), ErrNotEnumVariant)
		}
		structType := variant
		if structType.Kind() == reflect.Pointer {
			structType = structType.Elem()
		}
		if structType.Kind() != reflect.Struct {
			return definitionError(iface, "variant "+variant.String(), fmt.Errorf("%w: variant must be a struct", ErrUnsupportedKind))
		}
		variantName, fields, err := deriveStruct(structType)
		if err != nil {
			return err
		}
		definitions = append(definitions, VariantDef{Name: variantName, Fields: fields})
	}
	return r.define(iface, definition{name: name, enum: true, variants: definitions})
}

func (r *Registry) define(t reflect.Type, def definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUndefined(t); err != nil {
		return err
	}
	if _, isAlias := r.explicitAlias(t); isAlias {
		return definitionError(t, "", fmt.Errorf("%w: type is an alias", ErrDuplicateDefinition))
	}
	if def.name == "" {
		return definitionError(t, "", ErrUnnamedType)
	}
	r.definitions[t] = def
	r.logger.Debug("registered shape definition",
		"type", t.String(),
		"name", def.name,
		"enum", def.enum,
	)
	return nil
}

// checkUndefined fails if t already has an alias, a definition, or a
// built shape. Caller holds r.mu.
func (r *Registry) checkUndefined(t reflect.Type) error {
	if _, exists := r.aliases[t]; exists {
		return definitionError(t, "", fmt.Errorf("%w: already aliased", ErrDuplicateDefinition))
	}
	if _, exists := r.definitions[t]; exists {
		return definitionError(t, "", ErrDuplicateDefinition)
	}
	if _, exists := r.shapes[t]; exists {
		return definitionError(t, "", fmt.Errorf("%w: shape already built", ErrDuplicateDefinition))
	}
	return nil
}

// ShapeOf returns the shape of t, building and caching it on first use.
func (r *Registry) ShapeOf(t reflect.Type) (Shape, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resolver := &Resolver{registry: r, active: make(map[reflect.Type]bool)}
	return resolver.ShapeOf(t)
}

// Digest returns the digest of t's shape under algorithm. Errors come
// only from shape construction.
func (r *Registry) Digest(t reflect.Type, algorithm Algorithm) (Digest, error) {
	shape, err := r.ShapeOf(t)
	if err != nil {
		return nil, err
	}
	return Sum(shape, algorithm), nil
}

// ShapeFor returns the shape of T in the default registry.
func ShapeFor[T any]() (Shape, error) {
	return defaultRegistry.ShapeOf(reflect.TypeFor[T]())
}

// Of returns the digest of T's shape in the default registry.
func Of[T any](algorithm Algorithm) (Digest, error) {
	return defaultRegistry.Digest(reflect.TypeFor[T](), algorithm)
}

// MustOf is like Of but panics if T's shape cannot be built. Shape
// failures are defects in the type definition, so this is the usual
// form in package-level variables and init functions.
func MustOf[T any](algorithm Algorithm) Digest {
	digest, err := Of[T](algorithm)
	if err != nil {
		panic(err)
	}
	return digest
}
