// Package json adapts encoding/json to fcbuffer's InterchangeCodec
// interface, for schemas and plain values carried as JSON.
package json

import "encoding/json"

// ContentType is the key fcbuffer's interchange registry files this
// adapter under.
const ContentType = "application/json"

// Codec implements fcbuffer.InterchangeCodec over encoding/json.
type Codec struct{}

func (Codec) ContentType() string { return ContentType }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
