package fcbuffer

import "github.com/mitchellh/mapstructure"

// Decode converts a plain value (typically the output of Codec.ToObject)
// into target, a pointer to a Go struct or map. Field matching follows
// mapstructure's own rules: case-insensitive name matching, honoring a
// `mapstructure` field tag when present.
//
// This is a convenience on top of the map[string]any plain values
// fcbuffer itself produces; it never touches the wire format.
func Decode(plain any, target any) error {
	return mapstructure.Decode(plain, target)
}

// Encode converts source, a Go struct or map, into a plain value
// suitable as input to Codec.FromObject.
func Encode(source any) (any, error) {
	var out map[string]any
	if err := mapstructure.Decode(source, &out); err != nil {
		return nil, err
	}
	return out, nil
}
