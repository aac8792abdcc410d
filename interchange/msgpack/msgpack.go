// Package msgpack adapts vmihailenco/msgpack to fcbuffer's
// InterchangeCodec interface, for plain values carried as MessagePack.
package msgpack

import "github.com/vmihailenco/msgpack/v5"

// ContentType is the key fcbuffer's interchange registry files this
// adapter under.
const ContentType = "application/msgpack"

// Codec implements fcbuffer.InterchangeCodec over vmihailenco/msgpack.
type Codec struct{}

func (Codec) ContentType() string { return ContentType }

func (Codec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }
