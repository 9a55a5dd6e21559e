package glb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/multierr"
)

// triangle returns a one-triangle document and its binary payload: three
// float positions followed by three uint16 indices.
func triangle(indices ...uint16) (*Document, []byte) {
	var bin []byte
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		bin = binary.LittleEndian.AppendUint32(bin, math.Float32bits(f))
	}
	for _, i := range indices {
		bin = binary.LittleEndian.AppendUint16(bin, i)
	}

	doc := &Document{
		Asset:  Asset{Version: "2.0", Generator: "test"},
		Scene:  Ptr(0),
		Scenes: []Scene{{Nodes: []int{0}}},
		Nodes:  []Node{{Name: "Tri", Mesh: Ptr(0)}},
		Meshes: []Mesh{{
			Name: "Tri",
			Primitives: []Primitive{{
				Attributes: map[string]int{AttrPosition: 0},
				Indices:    Ptr(1),
				Mode:       Ptr(ModeTriangles),
			}},
		}},
		Accessors: []Accessor{
			{BufferView: Ptr(0), ComponentType: ComponentFloat, Count: 3, Type: TypeVec3,
				Min: []float32{0, 0, 0}, Max: []float32{1, 1, 0}},
			{BufferView: Ptr(1), ComponentType: ComponentUnsignedShort, Count: len(indices), Type: TypeScalar},
		},
		BufferViews: []BufferView{
			{Buffer: 0, ByteLength: 36, Target: TargetArrayBuffer},
			{Buffer: 0, ByteOffset: 36, ByteLength: 2 * len(indices), Target: TargetElementArrayBuffer},
		},
		Buffers: []Buffer{{ByteLength: len(bin)}},
	}
	return doc, bin
}

func TestEncodeLayout(t *testing.T) {
	doc, bin := triangle(0, 1, 2)
	data, err := Encode(doc, bin)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if got := binary.LittleEndian.Uint32(data[0:]); got != Magic {
		t.Errorf("magic = 0x%08x", got)
	}
	if got := binary.LittleEndian.Uint32(data[4:]); got != Version {
		t.Errorf("version = %d", got)
	}
	if got := binary.LittleEndian.Uint32(data[8:]); int(got) != len(data) {
		t.Errorf("declared length %d, wrote %d", got, len(data))
	}
	if len(data)%4 != 0 {
		t.Errorf("length %d not 4-byte aligned", len(data))
	}

	jsonLen := int(binary.LittleEndian.Uint32(data[12:]))
	if jsonLen%4 != 0 {
		t.Errorf("JSON chunk length %d not aligned", jsonLen)
	}
	if got := binary.LittleEndian.Uint32(data[16:]); got != ChunkJSON {
		t.Errorf("first chunk type = 0x%08x", got)
	}
	jsonEnd := HeaderSize + ChunkHeaderSize + jsonLen
	if data[jsonEnd-1] != ' ' && data[jsonEnd-1] != '}' {
		t.Errorf("JSON chunk ends with %q, want space padding", data[jsonEnd-1])
	}

	binLen := int(binary.LittleEndian.Uint32(data[jsonEnd:]))
	if binLen != Padded(len(bin)) {
		t.Errorf("BIN chunk length %d, want %d", binLen, Padded(len(bin)))
	}
	if got := binary.LittleEndian.Uint32(data[jsonEnd+4:]); got != ChunkBIN {
		t.Errorf("second chunk type = 0x%08x", got)
	}
	binStart := jsonEnd + ChunkHeaderSize
	if !bytes.Equal(data[binStart:binStart+len(bin)], bin) {
		t.Error("BIN payload differs from input")
	}
	for _, b := range data[binStart+len(bin):] {
		if b != 0 {
			t.Fatalf("BIN padding byte %d, want 0", b)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	doc, bin := triangle(0, 1, 2)
	data, err := Encode(doc, bin)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if int(f.Header.Length) != HeaderSize+2*ChunkHeaderSize+len(f.JSON)+len(f.BIN) {
		t.Errorf("chunk sizes do not add up to header length %d", f.Header.Length)
	}
	if got := f.Document.Nodes[0].Name; got != "Tri" {
		t.Errorf("node name = %q", got)
	}
	if *f.Document.Meshes[0].Primitives[0].Indices != 1 {
		t.Error("indices accessor lost")
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	again, err := Encode(&f.Document, f.BIN[:f.Document.Buffers[0].ByteLength])
	if err != nil {
		t.Fatalf("re-Encode: %v", err)
	}
	if !bytes.Equal(again, data) {
		t.Error("re-encoding a parsed container changed its bytes")
	}
}

func TestEncodeWithoutBinary(t *testing.T) {
	doc := &Document{Asset: Asset{Version: "2.0"}}
	data, err := Encode(doc, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.BIN != nil {
		t.Errorf("BIN = %d bytes, want no chunk", len(f.BIN))
	}
}

func TestParseErrors(t *testing.T) {
	doc, bin := triangle(0, 1, 2)
	good, err := Encode(doc, bin)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	mutate := func(fn func([]byte) []byte) []byte {
		return fn(bytes.Clone(good))
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", good[:8], ErrChunkLength},
		{"magic", mutate(func(b []byte) []byte { b[0] = 'x'; return b }), ErrInvalidMagic},
		{"version", mutate(func(b []byte) []byte { b[4] = 1; return b }), ErrUnsupportedVersion},
		{"truncated", mutate(func(b []byte) []byte { return b[:len(b)-4] }), ErrChunkLength},
		{"chunk overrun", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], uint32(len(b)))
			return b
		}), ErrChunkLength},
		{"unaligned chunk", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[12:], binary.LittleEndian.Uint32(b[12:])-1)
			return b
		}), ErrChunkLength},
		{"bin first", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[16:], ChunkBIN)
			return b
		}), ErrMissingJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Document)
		index  uint16
		want   error
	}{
		{"index out of range", nil, 3, ErrIndexOutOfRange},
		{"accessor past view", func(d *Document) { d.Accessors[0].Count = 4 }, 2, ErrOutOfBounds},
		{"view past buffer", func(d *Document) { d.BufferViews[1].ByteLength = 64 }, 2, ErrOutOfBounds},
		{"missing mesh", func(d *Document) { d.Nodes[0].Mesh = Ptr(5) }, 2, ErrInvalidReference},
		{"missing scene node", func(d *Document) { d.Scenes[0].Nodes = []int{1} }, 2, ErrInvalidReference},
		{"missing material", func(d *Document) { d.Meshes[0].Primitives[0].Material = Ptr(0) }, 2, ErrInvalidReference},
		{"buffer length", func(d *Document) { d.Buffers[0].ByteLength = 10 }, 2, ErrChunkLength},
		{"asset version", func(d *Document) { d.Asset.Version = "1.0" }, 2, ErrUnsupportedVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, bin := triangle(0, 1, tt.index)
			if tt.modify != nil {
				tt.modify(doc)
			}
			err := Validate(doc, bin)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateCollectsAll(t *testing.T) {
	doc, bin := triangle(0, 1, 2)
	doc.Nodes[0].Mesh = Ptr(3)
	doc.Scenes[0].Nodes = []int{7}
	err := Validate(doc, bin)
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("got %d errors, want 2: %v", got, err)
	}
}

func TestOpen(t *testing.T) {
	doc, bin := triangle(0, 1, 2)
	path := filepath.Join(t.TempDir(), "tri.glb")
	var buf bytes.Buffer
	if _, err := Write(&buf, doc, bin); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(f.Document.Accessors) != 2 {
		t.Errorf("accessors = %d", len(f.Document.Accessors))
	}
}
