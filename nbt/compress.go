package nbt

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// CompressionKind identifies how an NBT byte stream is wrapped.
type CompressionKind int

const (
	CompressionNone CompressionKind = iota
	CompressionGzip
	CompressionZlib
)

func (k CompressionKind) String() string {
	switch k {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	default:
		return "none"
	}
}

// DetectCompression peeks at the first two bytes of r to classify its
// compression, returning a reader that can be consumed from the start
// regardless of how many bytes were peeked. Magic bytes:
// 1F 8B = gzip, 78 9C / 78 DA / 78 01 = zlib, anything else = raw.
func DetectCompression(r io.Reader) (CompressionKind, io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			// Fewer than two bytes available; treat as raw, len 0/1 is
			// handled by the caller (InvalidRoot on an empty document).
			return CompressionNone, br, nil
		}
		return CompressionNone, nil, wrapError(ErrIoFailure, 0, "failed to peek compression magic", err)
	}
	switch {
	case magic[0] == 0x1F && magic[1] == 0x8B:
		return CompressionGzip, br, nil
	case magic[0] == 0x78 && (magic[1] == 0x9C || magic[1] == 0xDA || magic[1] == 0x01):
		return CompressionZlib, br, nil
	default:
		return CompressionNone, br, nil
	}
}

// WrapDecompress wraps r with the decompressor for the given kind. Callers
// that already know the compression kind (e.g. region chunk headers) can
// skip DetectCompression and call this directly.
func WrapDecompress(kind CompressionKind, r io.Reader) (io.Reader, error) {
	switch kind {
	case CompressionGzip:
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, wrapError(ErrIoFailure, 0, "failed to open gzip stream", err)
		}
		return gr, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, wrapError(ErrIoFailure, 0, "failed to open zlib stream", err)
		}
		return zr, nil
	case CompressionNone:
		return r, nil
	default:
		return nil, newError(ErrIoFailure, 0, "unknown compression kind")
	}
}

// WrapCompress wraps w with the compressor for the given kind. The returned
// io.WriteCloser must be closed to flush any buffered compressed output.
func WrapCompress(kind CompressionKind, w io.Writer) (io.WriteCloser, error) {
	switch kind {
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZlib:
		return zlib.NewWriter(w), nil
	case CompressionNone:
		return nopWriteCloser{w}, nil
	default:
		return nil, newError(ErrIoFailure, 0, "unknown compression kind")
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
