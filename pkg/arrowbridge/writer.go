package arrowbridge

import (
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/ajitpratap0/sparsetable/pkg/column"
	"github.com/ajitpratap0/sparsetable/pkg/errors"
)

// Codec selects the compression of written files.
type Codec int

const (
	// CodecNone writes uncompressed buffers.
	CodecNone Codec = iota
	// CodecLZ4 uses LZ4 frames (Arrow IPC) or raw LZ4 (Parquet).
	CodecLZ4
	// CodecZstd uses Zstandard.
	CodecZstd
	// CodecSnappy uses Snappy. Parquet only.
	CodecSnappy
)

var codecNames = map[Codec]string{
	CodecNone:   "none",
	CodecLZ4:    "lz4",
	CodecZstd:   "zstd",
	CodecSnappy: "snappy",
}

func (c Codec) String() string { return codecNames[c] }

// ParseCodec parses a codec name such as "zstd". The empty string is
// CodecNone.
func ParseCodec(s string) (Codec, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return CodecNone, nil
	}
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return CodecNone, errors.Newf(errors.ErrorTypeValidation, "unknown codec %q", s)
}

// WriteIPC writes cols to w as an uncompressed Arrow IPC file holding a
// single record batch.
func WriteIPC(w io.Writer, mem memory.Allocator, cols ...column.Column) error {
	return WriteIPCCompressed(w, mem, CodecNone, cols...)
}

// WriteIPCCompressed is WriteIPC with body compression. Arrow IPC supports
// only LZ4 and Zstandard.
func WriteIPCCompressed(w io.Writer, mem memory.Allocator, codec Codec, cols ...column.Column) error {
	opts := []ipc.Option{ipc.WithAllocator(mem)}
	switch codec {
	case CodecNone:
	case CodecLZ4:
		opts = append(opts, ipc.WithLZ4())
	case CodecZstd:
		opts = append(opts, ipc.WithZstd())
	default:
		return errors.Newf(errors.ErrorTypeCapability, "arrow IPC does not support %v compression", codec)
	}

	rec, err := NewRecord(mem, cols...)
	if err != nil {
		return err
	}
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, append(opts, ipc.WithSchema(rec.Schema()))...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create Arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to close Arrow writer")
	}
	return nil
}

// WriteParquet writes cols to w as a snappy-compressed Parquet file.
func WriteParquet(w io.Writer, mem memory.Allocator, cols ...column.Column) error {
	return WriteParquetCompressed(w, mem, CodecSnappy, cols...)
}

// WriteParquetCompressed is WriteParquet with an explicit codec.
func WriteParquetCompressed(w io.Writer, mem memory.Allocator, codec Codec, cols ...column.Column) error {
	var pc compress.Compression
	switch codec {
	case CodecNone:
		pc = compress.Codecs.Uncompressed
	case CodecLZ4:
		pc = compress.Codecs.Lz4Raw
	case CodecZstd:
		pc = compress.Codecs.Zstd
	case CodecSnappy:
		pc = compress.Codecs.Snappy
	default:
		return errors.Newf(errors.ErrorTypeCapability, "parquet does not support %v compression", codec)
	}

	rec, err := NewRecord(mem, cols...)
	if err != nil {
		return err
	}
	defer rec.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(pc),
		parquet.WithAllocator(mem),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(mem))

	fw, err := pqarrow.NewFileWriter(rec.Schema(), w, props, arrowProps)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to create Parquet writer")
	}
	if err := fw.Write(rec); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to write record batch")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to close Parquet writer")
	}
	return nil
}
