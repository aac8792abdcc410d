// Package yaml adapts gopkg.in/yaml.v3 to fcbuffer's InterchangeCodec
// interface, for schemas carried as YAML and for debug reports.
package yaml

import "gopkg.in/yaml.v3"

// ContentType is the key fcbuffer's interchange registry files this
// adapter under.
const ContentType = "application/yaml"

// Codec implements fcbuffer.InterchangeCodec over gopkg.in/yaml.v3.
type Codec struct{}

func (Codec) ContentType() string { return ContentType }

func (Codec) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }
