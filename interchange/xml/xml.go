// Package xml adapts encoding/xml to fcbuffer's InterchangeCodec
// interface. encoding/xml handles structs with xml tags and rejects Go
// maps, so map[string]any plain values and schema documents cannot be
// carried as XML.
package xml

import "encoding/xml"

// ContentType is the key fcbuffer's interchange registry files this
// adapter under.
const ContentType = "application/xml"

// Codec implements fcbuffer.InterchangeCodec over encoding/xml.
type Codec struct{}

func (Codec) ContentType() string { return ContentType }

func (Codec) Marshal(v any) ([]byte, error) { return xml.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return xml.Unmarshal(data, v) }
