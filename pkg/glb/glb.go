package glb

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Container constants.
const (
	Magic     uint32 = 0x46546C67 // "glTF"
	Version   uint32 = 2
	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"

	HeaderSize      = 12
	ChunkHeaderSize = 8
)

var (
	ErrInvalidMagic       = errors.New("invalid glTF magic")
	ErrUnsupportedVersion = errors.New("unsupported glTF container version")
	ErrChunkLength        = errors.New("chunk length mismatch")
	ErrMissingJSON        = errors.New("missing JSON chunk")
	ErrTooLarge           = errors.New("container exceeds 4 GiB")
)

// Header is the 12-byte file header.
type Header struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// ChunkHeader precedes every chunk payload. Length includes the padding.
type ChunkHeader struct {
	Length uint32
	Type   uint32
}

// File is a parsed container.
type File struct {
	Header   Header
	Document Document
	// JSON is the raw JSON chunk payload including trailing padding.
	JSON []byte
	// BIN is the binary chunk payload including padding, nil when the file
	// has no binary chunk.
	BIN []byte
}

// Padded returns n rounded up to a multiple of four.
func Padded(n int) int {
	return (n + 3) &^ 3
}

// Encode serializes doc and the binary payload into a container. The JSON
// chunk is padded with spaces and the BIN chunk with zeros; both declared
// lengths include the padding. An empty bin omits the BIN chunk.
func Encode(doc *Document, bin []byte) ([]byte, error) {
	var js bytes.Buffer
	enc := json.NewEncoder(&js)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding JSON chunk: %w", err)
	}
	jsonData := bytes.TrimRight(js.Bytes(), "\n")

	jsonLen := Padded(len(jsonData))
	binLen := Padded(len(bin))
	total := HeaderSize + ChunkHeaderSize + jsonLen
	if len(bin) > 0 {
		total += ChunkHeaderSize + binLen
	}
	if uint64(total) > math.MaxUint32 {
		return nil, ErrTooLarge
	}

	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, Magic)
	out = binary.LittleEndian.AppendUint32(out, Version)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))

	out = binary.LittleEndian.AppendUint32(out, uint32(jsonLen))
	out = binary.LittleEndian.AppendUint32(out, ChunkJSON)
	out = append(out, jsonData...)
	out = append(out, bytes.Repeat([]byte{' '}, jsonLen-len(jsonData))...)

	if len(bin) > 0 {
		out = binary.LittleEndian.AppendUint32(out, uint32(binLen))
		out = binary.LittleEndian.AppendUint32(out, ChunkBIN)
		out = append(out, bin...)
		out = append(out, make([]byte, binLen-len(bin))...)
	}

	if len(out) != total {
		return nil, fmt.Errorf("wrote %d bytes, declared %d: %w", len(out), total, ErrChunkLength)
	}
	return out, nil
}

// Write encodes a container into w.
func Write(w io.Writer, doc *Document, bin []byte) (int64, error) {
	data, err := Encode(doc, bin)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Open reads and parses a container file.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return Parse(data)
}

// Read parses a container from r.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a complete container. The first chunk must be JSON; a BIN
// chunk may follow. Chunks of other types are skipped.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("reading header: %w", ErrChunkLength)
	}
	if f.Header.Magic != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, f.Header.Magic)
	}
	if f.Header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Header.Version)
	}
	if int(f.Header.Length) != len(data) {
		return nil, fmt.Errorf("header declares %d bytes, file has %d: %w", f.Header.Length, len(data), ErrChunkLength)
	}

	offset := HeaderSize
	for chunk := 0; offset < len(data); chunk++ {
		if len(data)-offset < ChunkHeaderSize {
			return nil, fmt.Errorf("chunk %d: truncated header: %w", chunk, ErrChunkLength)
		}
		h := ChunkHeader{
			Length: binary.LittleEndian.Uint32(data[offset:]),
			Type:   binary.LittleEndian.Uint32(data[offset+4:]),
		}
		offset += ChunkHeaderSize
		if h.Length%4 != 0 || int(h.Length) > len(data)-offset {
			return nil, fmt.Errorf("chunk %d: length %d: %w", chunk, h.Length, ErrChunkLength)
		}
		payload := data[offset : offset+int(h.Length)]
		offset += int(h.Length)

		switch {
		case chunk == 0 && h.Type != ChunkJSON:
			return nil, ErrMissingJSON
		case chunk == 0:
			f.JSON = payload
		case h.Type == ChunkBIN && f.BIN == nil:
			f.BIN = payload
		}
	}
	if f.JSON == nil {
		return nil, ErrMissingJSON
	}

	if err := json.Unmarshal(f.JSON, &f.Document); err != nil {
		return nil, fmt.Errorf("decoding JSON chunk: %w", err)
	}
	return f, nil
}

// Validate checks the parsed document against its binary chunk.
func (f *File) Validate() error {
	return Validate(&f.Document, f.BIN)
}
