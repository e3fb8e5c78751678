// Package json wraps goccy/go-json for column snapshots and CLI output
package json

import (
	"bytes"
	"io"
	"sync"

	gojson "github.com/goccy/go-json"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// GetBuffer gets a pooled bytes.Buffer
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 1024*1024 { // Don't pool very large buffers
		return
	}
	bufferPool.Put(buf)
}

// Marshal is a drop-in replacement for json.Marshal
func Marshal(v interface{}) ([]byte, error) {
	return gojson.Marshal(v)
}

// Unmarshal is a drop-in replacement for json.Unmarshal
func Unmarshal(data []byte, v interface{}) error {
	return gojson.Unmarshal(data, v)
}

// MarshalIndent is a drop-in replacement for json.MarshalIndent
func MarshalIndent(v interface{}, prefix, indent string) ([]byte, error) {
	return gojson.MarshalIndent(v, prefix, indent)
}

func newEncoder(w io.Writer, pretty bool) *gojson.Encoder {
	enc := gojson.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

// Encode writes v to w followed by a newline. The value is rendered into a
// pooled buffer first so a failed encode writes nothing.
func Encode(w io.Writer, v interface{}, pretty bool) error {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := newEncoder(buf, pretty).Encode(v); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// StreamingEncoder writes a sequence of values either as a JSON array or as
// line-delimited JSON.
type StreamingEncoder struct {
	writer  io.Writer
	encoder *gojson.Encoder
	first   bool
	isArray bool
	err     error
}

// NewStreamingEncoder creates a new streaming encoder
func NewStreamingEncoder(w io.Writer, isArray, pretty bool) *StreamingEncoder {
	se := &StreamingEncoder{
		writer:  w,
		encoder: newEncoder(w, pretty),
		first:   true,
		isArray: isArray,
	}
	if isArray {
		se.write("[")
	}
	return se
}

func (se *StreamingEncoder) write(s string) {
	if se.err == nil {
		_, se.err = io.WriteString(se.writer, s)
	}
}

// Encode encodes a single value
func (se *StreamingEncoder) Encode(v interface{}) error {
	if se.isArray && !se.first {
		se.write(",")
	}
	se.first = false
	if se.err != nil {
		return se.err
	}
	se.err = se.encoder.Encode(v)
	return se.err
}

// Close finalizes the encoding
func (se *StreamingEncoder) Close() error {
	if se.isArray {
		se.write("]\n")
	}
	return se.err
}
