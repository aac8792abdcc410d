// Package bson adapts go.mongodb.org/mongo-driver/bson to fcbuffer's
// InterchangeCodec interface, for plain values carried as BSON.
package bson

import "go.mongodb.org/mongo-driver/bson"

// ContentType is the key fcbuffer's interchange registry files this
// adapter under.
const ContentType = "application/bson"

// Codec implements fcbuffer.InterchangeCodec over go.mongodb.org/mongo-driver/bson.
type Codec struct{}

func (Codec) ContentType() string { return ContentType }

func (Codec) Marshal(v any) ([]byte, error) { return bson.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return bson.Unmarshal(data, v) }
