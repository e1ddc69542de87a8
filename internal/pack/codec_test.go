package pack

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// buildArchive compresses the literal text and prepends the marker,
// mirroring what the original packer produces.
func buildArchive(t *testing.T, literal string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString(Marker)
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(literal)); err != nil {
		t.Fatalf("compressing test payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing test payload: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    *Document
		wantErr error
	}{
		{
			name:  "concrete scenario",
			input: nil, // built below
			want: &Document{
				Tree: map[string][]byte{"a/b.txt": []byte("hi")},
				DirIndex: map[string]DirEntry{
					"a": {Files: []string{"b.txt"}, Dirs: []string{}},
				},
			},
		},
		{
			name:    "empty buffer",
			input:   []byte{},
			wantErr: ErrMissingHeader,
		},
		{
			name:    "missing marker",
			input:   []byte("PACKED\nwhatever"),
			wantErr: ErrMissingHeader,
		},
		{
			name:    "marker not at start",
			input:   append([]byte{0x00}, []byte(Marker)...),
			wantErr: ErrMissingHeader,
		},
		{
			name:    "malformed compressed stream",
			input:   []byte(Marker + "this is not gzip"),
			wantErr: ErrDecompression,
		},
		{
			name:    "truncated compressed stream",
			input:   nil, // built below
			wantErr: ErrDecompression,
		},
		{
			name:    "payload is not a directory document",
			input:   nil, // built below
			wantErr: ErrCorruptArchive,
		},
	}

	tests[0].input = buildArchive(t, `{'tree': {'a/b.txt': b'hi'}, 'dirinfo': {'a': {'files': ['b.txt'], 'dirs': []}}}`)
	full := buildArchive(t, `{'tree': {}, 'dirinfo': {}}`)
	tests[5].input = full[:len(full)-4]
	tests[6].input = buildArchive(t, `{'nope': 1}`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("Decode() succeeded unexpectedly, wanted error")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// A marker occurring inside the compressed payload must survive decode;
// only the leading marker is stripped.
func TestDecodeMarkerBytesInContent(t *testing.T) {
	doc := &Document{
		Tree: map[string][]byte{
			"marker.bin": []byte("prefix" + Marker + "suffix"),
		},
		DirIndex: map[string]DirEntry{
			"": {Files: []string{"marker.bin"}, Dirs: []string{}},
		},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !bytes.Equal(got.Tree["marker.bin"], doc.Tree["marker.bin"]) {
		t.Errorf("marker bytes corrupted: got %q, want %q", got.Tree["marker.bin"], doc.Tree["marker.bin"])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := &Document{
		Tree: map[string][]byte{
			"resources/images/icon.png": {0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
			"resources/text/readme.txt": []byte("read me\n"),
		},
		DirIndex: map[string]DirEntry{
			"resources":        {Files: []string{}, Dirs: []string{"images", "text"}},
			"resources/images": {Files: []string{"icon.png"}, Dirs: []string{}},
			"resources/text":   {Files: []string{"readme.txt"}, Dirs: []string{}},
		},
	}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte(Marker)) {
		t.Fatalf("encoded archive does not start with marker: %q", data[:16])
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !reflect.DeepEqual(got, doc) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, doc)
	}
}
