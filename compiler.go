package fcbuffer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// FieldDef is one field of a StructDef, in declaration order. Order
// matters: it is both the struct's fromObject/toObject field order and
// its wire order.
type FieldDef struct {
	Name string
	Type string
}

// StructDef is the object form of a schema entry that defines a struct
// (spec.md §4.2/§6). Base, if non-empty, names another entry in the
// same Schema whose fields precede this struct's own, both in plain
// value output and on the wire.
type StructDef struct {
	Base   string
	Fields []FieldDef
}

// MapDef is the object form of a schema entry that defines a named
// `map([key, value])` type (spec.md §4.1).
type MapDef struct {
	Key   string
	Value string
}

// Schema is the declarative input to Compile (spec.md §4.3). Each value
// is either a bare type expression string (an alias), a StructDef, or a
// MapDef.
type Schema map[string]any

// Registry holds every codec a successful Compile produced, keyed by
// its schema type name. Built-in primitives are available through the
// type expressions used to build these codecs, not as direct entries.
type Registry struct {
	codecs   map[string]Codec
	defaults bool
}

// Get looks up a compiled type by name.
func (r *Registry) Get(name string) (Codec, bool) {
	c, ok := r.codecs[name]
	return c, ok
}

// MustGet looks up a compiled type by name, panicking if it isn't
// present. Intended for call sites where the schema is a known
// constant, not caller input.
func (r *Registry) MustGet(name string) Codec {
	c, ok := r.codecs[name]
	if !ok {
		panic(fmt.Sprintf("fcbuffer: unknown type %q", name))
	}
	return c
}

// Names returns every compiled type name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.codecs))
	for name := range r.codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustCompile calls Compile and panics if it returns any errors.
// Intended for program startup with a schema baked into the binary, not
// for schemas loaded from caller-controlled input.
func MustCompile(schema Schema, config Config) *Registry {
	reg, errs := Compile(schema, config)
	if len(errs) > 0 {
		panic(fmt.Sprintf("fcbuffer: schema compile failed: %v", errs))
	}
	return reg
}

// schemaEntry is the classified form of one Schema value.
type schemaEntry struct {
	name   string
	alias  string
	def    *StructDef
	mapdef *MapDef
}

// unresolvedTypeError wraps a resolution-failure sentinel (ErrMissingType,
// ErrCycle) with the actual leaf name lookup failed to resolve, so the
// callers that turn it into a SchemaError can name that leaf in the
// rendered message instead of only the path that led to it.
type unresolvedTypeError struct {
	name string
	err  error
}

func (e *unresolvedTypeError) Error() string { return fmt.Sprintf("%s: %s", e.err, e.name) }
func (e *unresolvedTypeError) Unwrap() error { return e.err }

// isBareAlias reports whether alias, parsed as a type expression, is
// exactly the single leaf name leaf with no vector/set/optional
// wrapping — the "top-level entry is an alias to nothing known" case
// spec.md §4.3 calls out for `Unrecognized type <name>` rather than the
// generic `Missing <name>`.
func isBareAlias(alias, leaf string) bool {
	expr, err := parseTypeExpr(alias)
	return err == nil && expr.kind == exprName && expr.name == leaf
}

// Compile is the Schema Compiler (spec.md §4.3). It runs in five
// phases — syntactic validation, reference collection, resolution,
// topological construction, and override application — accumulating
// every problem it finds rather than stopping at the first, so a
// caller sees every error in one pass.
func Compile(schema Schema, config Config) (*Registry, []error) {
	ctx := context.Background()
	emitCompileStart(ctx)
	start := time.Now()

	var errs []error

	// Phase 1: syntactic validation and classification.
	byName := make(map[string]schemaEntry, len(schema))
	names := make([]string, 0, len(schema))
	for name, raw := range schema {
		names = append(names, name)
		switch v := raw.(type) {
		case string:
			byName[name] = schemaEntry{name: name, alias: v}
		case StructDef:
			d := v
			byName[name] = schemaEntry{name: name, def: &d}
		case *StructDef:
			byName[name] = schemaEntry{name: name, def: v}
		case MapDef:
			m := v
			byName[name] = schemaEntry{name: name, mapdef: &m}
		case *MapDef:
			byName[name] = schemaEntry{name: name, mapdef: v}
		default:
			errs = append(errs, newSchemaErrorWithName(ErrExpectingFieldsOrBase, name, name))
		}
	}
	sort.Strings(names)

	// A struct entry must declare at least one of fields or base (spec.md
	// §4.3 step 1, §8 scenario 9).
	for _, name := range names {
		if e := byName[name]; e.def != nil && e.def.Base == "" && len(e.def.Fields) == 0 {
			errs = append(errs, newSchemaErrorWithName(ErrExpectingFieldsOrBase, name, name))
		}
	}

	if config.CustomTypes != nil {
		for name := range config.CustomTypes {
			if _, collides := byName[name]; collides {
				errs = append(errs, newSchemaError(ErrDuplicateType, name))
			}
		}
	}

	factory := newFactory(config)

	// Override application starts here rather than at the end: a
	// type-level override must apply everywhere that type is used,
	// including as another struct's field type, not just when the
	// name is looked up directly from the Registry.
	overrides, err := buildOverrideSet(config.Override)
	if err != nil {
		errs = append(errs, err)
		overrides = &overrideSet{}
	}
	wrapOverride := func(name string, codec Codec) Codec {
		if codec == nil {
			return nil
		}
		if stages := overrides.typeOverrides(name); len(stages) > 0 {
			return wrapTypeOverride(codec, name, stages)
		}
		return codec
	}

	// Phase 2: create struct skeletons up front so base references and
	// field references can resolve regardless of declaration order.
	skeletons := make(map[string]*Struct)
	for _, name := range names {
		if e := byName[name]; e.def != nil {
			skeletons[name] = NewStruct(name, nil)
		}
	}

	// base-chain cycle detection, ahead of wiring.
	for _, name := range names {
		e := byName[name]
		if e.def == nil || e.def.Base == "" {
			continue
		}
		visited := map[string]bool{name: true}
		cur := e.def.Base
		for cur != "" {
			if visited[cur] {
				errs = append(errs, newSchemaError(ErrCycle, name+".base"))
				break
			}
			visited[cur] = true
			next, ok := byName[cur]
			if !ok {
				errs = append(errs, newSchemaErrorWithName(ErrMissingType, name+".base", cur))
				break
			}
			if next.def == nil {
				// An alias used as a struct base is rejected the same way
				// a wholly missing base is: inheritance requires a
				// struct, not a primitive or alias (spec.md §4.3).
				errs = append(errs, newSchemaErrorWithName(ErrMissingType, name+".base", cur))
				break
			}
			cur = next.def.Base
		}
	}

	// Phase 3: resolution. lookup tries the factory (primitives and
	// custom types), then struct skeletons, then aliases and map
	// defs, resolving the latter two lazily and memoizing the result.
	resolved := make(map[string]Codec)
	resolving := make(map[string]bool)

	var lookup func(name string) (Codec, error)
	lookup = func(name string) (Codec, error) {
		if c, err := factory.lookup(name); err != nil {
			return nil, err
		} else if c != nil {
			return wrapOverride(name, c), nil
		}
		if s, ok := skeletons[name]; ok {
			return wrapOverride(name, s), nil
		}
		if c, ok := resolved[name]; ok {
			return c, nil
		}
		e, ok := byName[name]
		if !ok || e.def != nil {
			return nil, &unresolvedTypeError{name: name, err: ErrMissingType}
		}
		if resolving[name] {
			return nil, ErrCycle
		}
		resolving[name] = true
		defer func() { resolving[name] = false }()

		var codec Codec
		var err error
		switch {
		case e.mapdef != nil:
			var key, value Codec
			key, err = lookup(e.mapdef.Key)
			if err == nil {
				value, err = lookup(e.mapdef.Value)
			}
			if err == nil {
				codec, err = NewMap(key, value)
			}
		default:
			var expr *typeExpr
			expr, err = parseTypeExpr(e.alias)
			if err == nil {
				codec, err = resolveTypeExpr(expr, lookup)
			} else {
				err = ErrFormat
			}
		}
		if err != nil {
			return nil, err
		}
		codec = wrapOverride(name, codec)
		resolved[name] = codec
		return codec, nil
	}

	// Resolve every alias/map entry up front so unused ones still
	// surface compile errors.
	for _, name := range names {
		e := byName[name]
		if e.def != nil {
			continue
		}
		if _, err := lookup(name); err != nil {
			var unresolved *unresolvedTypeError
			if errors.As(err, &unresolved) {
				// A top-level entry that is a bare alias to a name
				// nothing else resolves is "Unrecognized", not
				// "Missing" — spec.md §4.3's distinction between the
				// two phrasings of the same underlying failure.
				if e.mapdef == nil && isBareAlias(e.alias, unresolved.name) {
					errs = append(errs, newSchemaErrorWithName(ErrUnrecognizedType, name, unresolved.name))
				} else {
					errs = append(errs, newSchemaErrorWithName(ErrMissingType, name, unresolved.name))
				}
				continue
			}
			errs = append(errs, newSchemaError(err, name))
		}
	}

	// Phase 4: topological construction of struct fields. Skeleton
	// pointers were created in phase 2, so field order here doesn't
	// matter for forward references; only base wiring must happen
	// before fields that might reference it.
	for _, name := range names {
		e := byName[name]
		if e.def == nil {
			continue
		}
		skel := skeletons[name]
		if e.def.Base != "" {
			if base, ok := skeletons[e.def.Base]; ok {
				skel.setBase(base)
			}
		}
		for _, fd := range e.def.Fields {
			expr, err := parseTypeExpr(fd.Type)
			if err != nil {
				errs = append(errs, newSchemaError(ErrFormat, name+".fields."+fd.Name))
				continue
			}
			codec, err := resolveTypeExpr(expr, lookup)
			if err != nil {
				var unresolved *unresolvedTypeError
				if errors.As(err, &unresolved) {
					errs = append(errs, newSchemaErrorWithName(ErrMissingType, name+".fields."+fd.Name, unresolved.name))
				} else {
					errs = append(errs, newSchemaError(err, name+".fields."+fd.Name))
				}
				continue
			}
			if err := skel.Add(fd.Name, codec); err != nil {
				errs = append(errs, newSchemaError(ErrDuplicateField, name+".fields."+fd.Name))
			}
		}
		emitStructBuilt(ctx, name, len(e.def.Fields), e.def.Base != "")
	}

	// Phase 5: field-level override application. These attach directly
	// to the struct itself rather than wrapping a Codec, and must
	// happen before any struct is first used (which freezes it).
	for name, byField := range overrides.fields {
		skel, ok := skeletons[name]
		if !ok {
			errs = append(errs, fmt.Errorf("override target %q is not a struct", name))
			continue
		}
		for field, stages := range byField {
			for stage, fn := range stages {
				ffn, ok := fn.(FieldOverrideFunc)
				if !ok {
					errs = append(errs, fmt.Errorf("override %s.%s has the wrong function type for a field override", name, field))
					continue
				}
				_ = skel.SetFieldOverride(field, stage, ffn)
			}
		}
	}

	finalCodecs := make(map[string]Codec, len(byName))
	for _, name := range names {
		e := byName[name]
		var codec Codec
		if e.def != nil {
			codec = wrapOverride(name, skeletons[name])
		} else {
			codec = resolved[name]
		}
		if codec == nil {
			continue
		}
		finalCodecs[name] = codec
	}

	emitCompileComplete(ctx, time.Since(start), len(skeletons), len(errs))
	if len(errs) > 0 {
		return nil, errs
	}
	reg := &Registry{codecs: finalCodecs, defaults: config.Defaults}
	if config.Debug {
		if report, err := reg.DebugReport().Render(); err == nil {
			emitSchemaDebug(ctx, report)
		}
	}
	return reg, nil
}
