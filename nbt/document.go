package nbt

import (
	"bytes"
	"io"
	"os"
)

// Document is a named root TAG_Compound together with the source it was
// read from, if any, and the compression it should be written back with.
type Document struct {
	RootName    string
	Root        *Node
	Path        string
	Compression CompressionKind
}

// LoadReader detects r's compression, parses exactly one root TAG_Compound
// from it, and returns the resulting Document. opts may be nil.
func LoadReader(r io.Reader, opts *ParseOptions) (*Document, error) {
	kind, wrapped, err := DetectCompression(r)
	if err != nil {
		return nil, err
	}
	decompressed, err := WrapDecompress(kind, wrapped)
	if err != nil {
		return nil, err
	}
	if closer, ok := decompressed.(io.Closer); ok {
		defer closer.Close()
	}

	builder := NewTreeBuilder()
	if err := Parse(decompressed, builder, opts); err != nil {
		return nil, err
	}
	if builder.Err() != nil {
		return nil, builder.Err()
	}
	return &Document{
		RootName:    builder.RootName(),
		Root:        builder.Root(),
		Compression: kind,
	}, nil
}

// Load reads and parses the NBT file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapError(ErrIoFailure, -1, "failed to open NBT file", err)
	}
	defer f.Close()

	doc, err := LoadReader(f, nil)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// WriteTo serializes d to w, compressed per d.Compression.
func (d *Document) WriteTo(w io.Writer) error {
	var buf bytes.Buffer
	if err := WriteTree(NewWriter(&buf), d.RootName, d.Root); err != nil {
		return err
	}

	compressor, err := WrapCompress(d.Compression, w)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(compressor); err != nil {
		return wrapError(ErrIoFailure, -1, "failed to write compressed NBT", err)
	}
	return compressor.Close()
}

// Save writes d back to its Path, or to path if non-empty.
func (d *Document) Save(path string) error {
	if path == "" {
		path = d.Path
	}
	f, err := os.Create(path)
	if err != nil {
		return wrapError(ErrIoFailure, -1, "failed to create NBT file", err)
	}
	defer f.Close()
	return d.WriteTo(f)
}
