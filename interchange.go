package fcbuffer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	ibson "github.com/zoobzio/fcbuffer/interchange/bson"
	ijson "github.com/zoobzio/fcbuffer/interchange/json"
	imsgpack "github.com/zoobzio/fcbuffer/interchange/msgpack"
	ixml "github.com/zoobzio/fcbuffer/interchange/xml"
	iyaml "github.com/zoobzio/fcbuffer/interchange/yaml"
	"gopkg.in/yaml.v3"
)

// InterchangeCodec marshals and unmarshals a schema or a plain value to
// and from one wire format, independent of fcbuffer's own binary wire
// format (see wire.Writer/wire.Reader). Each interchange/ submodule
// implements this for one format.
type InterchangeCodec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// interchangeCodecs is the built-in registry of format adapters,
// addressed by content type.
var interchangeCodecs = map[string]InterchangeCodec{
	ijson.ContentType:    ijson.Codec{},
	ixml.ContentType:     ixml.Codec{},
	iyaml.ContentType:    iyaml.Codec{},
	imsgpack.ContentType: imsgpack.Codec{},
	ibson.ContentType:    ibson.Codec{},
}

// LoadSchema unmarshals a Schema from data using the adapter registered
// for contentType. It's the entry point for reading a schema out of a
// JSON, YAML, msgpack, or BSON file rather than constructing a Schema
// literal in Go.
//
// A struct entry's "fields" is, per the Data Model, an ordered mapping
// of field name to type expression — declaration order is significant
// (spec.md §4.2's field order is wire order). JSON and YAML documents
// parse that mapping through a format-specific ordered reader (a
// streaming token scan for JSON, yaml.Node's native key order for YAML)
// so declaration order survives. msgpack and BSON fall back to a
// generic decode into map[string]any, which does not preserve key
// order; their fields are sorted alphabetically instead, trading fidelity
// to declaration order for a result that is at least deterministic. XML
// takes the same path, but encoding/xml cannot decode into a map, so
// LoadSchema returns an error for every XML document.
func LoadSchema(contentType string, data []byte) (Schema, error) {
	switch contentType {
	case ijson.ContentType:
		return schemaFromJSON(data)
	case iyaml.ContentType:
		return schemaFromYAML(data)
	}

	codec, ok := interchangeCodecs[contentType]
	if !ok {
		return nil, fmt.Errorf("fcbuffer: no interchange codec registered for %q", contentType)
	}
	var raw map[string]any
	if err := codec.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return schemaFromRaw(raw)
}

// Marshal encodes a plain value (the output of Codec.ToObject) using the
// adapter registered for contentType.
func Marshal(contentType string, v any) ([]byte, error) {
	codec, ok := interchangeCodecs[contentType]
	if !ok {
		return nil, fmt.Errorf("fcbuffer: no interchange codec registered for %q", contentType)
	}
	return codec.Marshal(v)
}

// Unmarshal decodes a plain value using the adapter registered for
// contentType, suitable as input to Codec.FromObject.
func Unmarshal(contentType string, data []byte, v any) error {
	codec, ok := interchangeCodecs[contentType]
	if !ok {
		return fmt.Errorf("fcbuffer: no interchange codec registered for %q", contentType)
	}
	return codec.Unmarshal(data, v)
}

// schemaFromRaw converts a generically-decoded map (as produced by the
// msgpack and BSON adapters) into a Schema, recognizing the struct and
// map object shapes alongside bare alias strings. Field order within a
// struct's "fields" is not recoverable from a plain map[string]any, so
// fields are sorted by name for a deterministic (if not declaration-order)
// result.
func schemaFromRaw(raw map[string]any) (Schema, error) {
	schema := make(Schema, len(raw))
	for name, v := range raw {
		switch entry := v.(type) {
		case string:
			schema[name] = entry
		case map[string]any:
			if key, value, ok := rawMapDef(entry); ok {
				schema[name] = MapDef{Key: key, Value: value}
				continue
			}
			def, err := rawStructDef(entry)
			if err != nil {
				return nil, fmt.Errorf("fcbuffer: %s: %w", name, err)
			}
			schema[name] = def
		default:
			return nil, fmt.Errorf("fcbuffer: %s: %w", name, ErrExpectingFieldsOrBase)
		}
	}
	return schema, nil
}

func rawMapDef(entry map[string]any) (string, string, bool) {
	key, kok := entry["key"].(string)
	value, vok := entry["value"].(string)
	if kok && vok && len(entry) == 2 {
		return key, value, true
	}
	return "", "", false
}

func rawStructDef(entry map[string]any) (StructDef, error) {
	var base string
	rawBase, hasBase := entry["base"]
	if hasBase {
		b, ok := rawBase.(string)
		if !ok {
			return StructDef{}, ErrExpectingString
		}
		base = b
	}

	rawFields, hasFields := entry["fields"]
	if !hasFields && !hasBase {
		return StructDef{}, ErrExpectingFieldsOrBase
	}

	var fields []FieldDef
	if hasFields {
		m, ok := toStringMap(rawFields)
		if !ok {
			return StructDef{}, ErrExpectingObject
		}
		names := make([]string, 0, len(m))
		for fieldName := range m {
			names = append(names, fieldName)
		}
		sort.Strings(names)
		fields = make([]FieldDef, 0, len(names))
		for _, fieldName := range names {
			typ, ok := m[fieldName].(string)
			if !ok {
				return StructDef{}, ErrExpectingString
			}
			fields = append(fields, FieldDef{Name: fieldName, Type: typ})
		}
	}
	return StructDef{Base: base, Fields: fields}, nil
}

// schemaFromJSON parses a JSON schema document, preserving each struct's
// field declaration order via a streaming token scan rather than a
// decode into map[string]any.
func schemaFromJSON(data []byte) (Schema, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	schema := make(Schema, len(raw))
	for name, v := range raw {
		def, err := jsonSchemaEntry(v)
		if err != nil {
			return nil, fmt.Errorf("fcbuffer: %s: %w", name, err)
		}
		schema[name] = def
	}
	return schema, nil
}

func jsonSchemaEntry(raw json.RawMessage) (any, error) {
	var alias string
	if err := json.Unmarshal(raw, &alias); err == nil {
		return alias, nil
	}
	var entry map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, ErrExpectingFieldsOrBase
	}
	if key, value, ok := rawMapDefJSON(entry); ok {
		return MapDef{Key: key, Value: value}, nil
	}
	return rawStructDefJSON(entry)
}

func rawMapDefJSON(entry map[string]json.RawMessage) (string, string, bool) {
	if len(entry) != 2 {
		return "", "", false
	}
	keyRaw, kok := entry["key"]
	valueRaw, vok := entry["value"]
	if !kok || !vok {
		return "", "", false
	}
	var key, value string
	if err := json.Unmarshal(keyRaw, &key); err != nil {
		return "", "", false
	}
	if err := json.Unmarshal(valueRaw, &value); err != nil {
		return "", "", false
	}
	return key, value, true
}

func rawStructDefJSON(entry map[string]json.RawMessage) (StructDef, error) {
	var base string
	rawBase, hasBase := entry["base"]
	if hasBase {
		if err := json.Unmarshal(rawBase, &base); err != nil {
			return StructDef{}, ErrExpectingString
		}
	}

	rawFields, hasFields := entry["fields"]
	if !hasFields && !hasBase {
		return StructDef{}, ErrExpectingFieldsOrBase
	}

	var fields []FieldDef
	if hasFields {
		var err error
		fields, err = decodeFieldsObjectJSON(rawFields)
		if err != nil {
			return StructDef{}, err
		}
	}
	return StructDef{Base: base, Fields: fields}, nil
}

// decodeFieldsObjectJSON decodes a JSON object mapping field name to
// type-expression string, preserving key order via json.Decoder's
// streaming Token API. Per the Data Model, "fields" is ordered(name ->
// type-expr), not an array of {name, type} objects.
func decodeFieldsObjectJSON(raw json.RawMessage) ([]FieldDef, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, ErrExpectingObject
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, ErrExpectingObject
	}

	var fields []FieldDef
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, ErrExpectingString
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, ErrExpectingString
		}
		var typ string
		if err := dec.Decode(&typ); err != nil {
			return nil, ErrExpectingString
		}
		fields = append(fields, FieldDef{Name: name, Type: typ})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, ErrExpectingObject
	}
	return fields, nil
}

// schemaFromYAML parses a YAML schema document through yaml.Node, whose
// MappingNode.Content naturally preserves key order, rather than
// decoding into map[string]any.
func schemaFromYAML(data []byte) (Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return Schema{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrExpectingObject
	}

	schema := make(Schema, len(root.Content)/2)
	for _, p := range yamlPairs(root) {
		def, err := yamlSchemaEntry(p.value)
		if err != nil {
			return nil, fmt.Errorf("fcbuffer: %s: %w", p.key, err)
		}
		schema[p.key] = def
	}
	return schema, nil
}

type yamlPair struct {
	key   string
	value *yaml.Node
}

func yamlPairs(node *yaml.Node) []yamlPair {
	pairs := make([]yamlPair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, yamlPair{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return pairs
}

func yamlSchemaEntry(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.MappingNode:
		if key, value, ok := yamlMapDef(node); ok {
			return MapDef{Key: key, Value: value}, nil
		}
		return yamlStructDef(node)
	default:
		return nil, ErrExpectingFieldsOrBase
	}
}

func yamlMapDef(node *yaml.Node) (string, string, bool) {
	pairs := yamlPairs(node)
	if len(pairs) != 2 {
		return "", "", false
	}
	var key, value string
	var kok, vok bool
	for _, p := range pairs {
		if p.value.Kind != yaml.ScalarNode {
			return "", "", false
		}
		switch p.key {
		case "key":
			key, kok = p.value.Value, true
		case "value":
			value, vok = p.value.Value, true
		default:
			return "", "", false
		}
	}
	return key, value, kok && vok
}

func yamlStructDef(node *yaml.Node) (StructDef, error) {
	var base string
	var hasBase bool
	var fieldsNode *yaml.Node
	var hasFields bool
	for _, p := range yamlPairs(node) {
		switch p.key {
		case "base":
			if p.value.Kind != yaml.ScalarNode {
				return StructDef{}, ErrExpectingString
			}
			base, hasBase = p.value.Value, true
		case "fields":
			fieldsNode, hasFields = p.value, true
		}
	}
	if !hasFields && !hasBase {
		return StructDef{}, ErrExpectingFieldsOrBase
	}

	var fields []FieldDef
	if hasFields {
		if fieldsNode.Kind != yaml.MappingNode {
			return StructDef{}, ErrExpectingObject
		}
		for _, p := range yamlPairs(fieldsNode) {
			if p.value.Kind != yaml.ScalarNode {
				return StructDef{}, ErrExpectingString
			}
			fields = append(fields, FieldDef{Name: p.key, Type: p.value.Value})
		}
	}
	return StructDef{Base: base, Fields: fields}, nil
}
