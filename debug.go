package fcbuffer

import (
	iyaml "github.com/zoobzio/fcbuffer/interchange/yaml"
)

// DebugFieldReport describes one field of a compiled struct.
type DebugFieldReport struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`

	// Default holds the field's representative default specimen,
	// present only when the Registry was compiled with Config.Defaults.
	Default any `yaml:"default,omitempty"`
}

// DebugTypeReport describes one compiled schema type.
type DebugTypeReport struct {
	Name   string             `yaml:"name"`
	Base   string             `yaml:"base,omitempty"`
	Fields []DebugFieldReport `yaml:"fields,omitempty"`
}

// DebugReport is a human-readable snapshot of a compiled Registry, for
// inspection and documentation rather than anything that affects the
// wire format.
type DebugReport struct {
	Types []DebugTypeReport `yaml:"types"`
}

// DebugReport walks every compiled type in the registry and describes
// its shape. Types that resolve to a struct (directly, through an alias,
// or behind a type-level override) report their base and fields; all
// other types report just a name.
func (r *Registry) DebugReport() DebugReport {
	var report DebugReport
	for _, name := range r.Names() {
		report.Types = append(report.Types, describeType(name, r.codecs[name], r.defaults))
	}
	return report
}

func describeType(name string, codec Codec, withDefaults bool) DebugTypeReport {
	t := DebugTypeReport{Name: name}
	s, ok := unwrapStruct(codec)
	if !ok {
		return t
	}
	if s.base != nil {
		t.Base = s.base.name
	}
	for _, f := range s.fields {
		fr := DebugFieldReport{
			Name:     f.name,
			Type:     typeNameOf(f.codec),
			Required: f.codec.Required(),
		}
		if withDefaults {
			if def, err := f.codec.ToObject(nil, ToObjectConfig{Defaults: true}); err == nil {
				fr.Default = def
			}
		}
		t.Fields = append(t.Fields, fr)
	}
	return t
}

func unwrapStruct(codec Codec) (*Struct, bool) {
	switch c := codec.(type) {
	case *Struct:
		return c, true
	case *overriddenCodec:
		return unwrapStruct(c.base)
	default:
		return nil, false
	}
}

// Render formats the report as YAML, the format a caller would most
// often want to print or save for a schema review.
func (rep DebugReport) Render() ([]byte, error) {
	return iyaml.Codec{}.Marshal(rep)
}
