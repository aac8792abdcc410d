package fcbuffer

// factory is the Type Factory (spec.md §4.1/§6): the catalog of built-in
// primitives plus any caller-supplied custom types, consulted by the
// Schema Compiler while resolving type expressions.
type factory struct {
	primitives  map[string]Codec
	customTypes map[string]CustomTypeFactory
	customCache map[string]Codec
}

func newFactory(config Config) *factory {
	return &factory{
		primitives: map[string]Codec{
			"uint8":     &uintCodec{name: "uint8", bits: 8},
			"uint16":    &uintCodec{name: "uint16", bits: 16},
			"uint32":    &uintCodec{name: "uint32", bits: 32},
			"uint64":    &uintCodec{name: "uint64", bits: 64},
			"int8":      &intCodec{name: "int8", bits: 8},
			"int16":     &intCodec{name: "int16", bits: 16},
			"int32":     &intCodec{name: "int32", bits: 32},
			"int64":     &intCodec{name: "int64", bits: 64},
			"varuint32": &uintCodec{name: "varuint32", bits: 32, varint: true},
			"varint32":  &intCodec{name: "varint32", bits: 32, varint: true},
			"bytes":     &bytesCodec{},
			"string":    &stringCodec{},
			"time":      timeCodec{},
		},
		customTypes: config.CustomTypes,
		customCache: make(map[string]Codec),
	}
}

// lookup resolves name against custom types (which shadow built-ins,
// per Config.CustomTypes), then the built-in primitive catalog, then the
// dynamically-named fixed_bytesN/fixed_stringN family. It returns
// (nil, nil) if name isn't a factory-known type at all, which tells the
// compiler to keep looking at structs and aliases.
func (f *factory) lookup(name string) (Codec, error) {
	if fn, ok := f.customTypes[name]; ok {
		if c, cached := f.customCache[name]; cached {
			return c, nil
		}
		codec, err := fn(nil)
		if err != nil {
			return nil, err
		}
		f.customCache[name] = codec
		return codec, nil
	}
	if c, ok := f.primitives[name]; ok {
		return c, nil
	}
	if n, ok := parseFixedBytesName(name); ok {
		return newFixedBytesCodec(n), nil
	}
	if n, ok := parseFixedStringName(name); ok {
		return newFixedStringCodec(n), nil
	}
	return nil, nil
}
