package netpbm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ironsheep/image-gradient/internal/raster"
)

func TestDecode_Binary(t *testing.T) {
	data := append([]byte("P5\n3 2\n255\n"), 0, 10, 20, 200, 250, 255)

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if format != FormatBinary {
		t.Errorf("format: got %s, want P5", format)
	}
	if img.Width() != 3 || img.Height() != 2 || img.MaxValue() != 255 {
		t.Errorf("shape: got %dx%d max %d, want 3x2 max 255", img.Width(), img.Height(), img.MaxValue())
	}
	want := []uint16{0, 10, 20, 200, 250, 255}
	for i, s := range img.Samples() {
		if s != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, s, want[i])
		}
	}
}

func TestDecode_CommentsAndWhitespace(t *testing.T) {
	data := append([]byte("P5 # created by a scanner\n# second comment\n  2\t2 # size\n15\r"), 1, 2, 3, 15)

	img, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.MaxValue() != 15 {
		t.Errorf("MaxValue: got %d, want 15", img.MaxValue())
	}
	if img.At(1, 1) != 15 {
		t.Errorf("At(1,1): got %d, want 15", img.At(1, 1))
	}
}

func TestDecode_SixteenBit(t *testing.T) {
	data := append([]byte("P5\n2 1\n1023\n"), 0x03, 0xFF, 0x01, 0x02)

	img, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.At(0, 0) != 1023 {
		t.Errorf("At(0,0): got %d, want 1023", img.At(0, 0))
	}
	if img.At(1, 0) != 258 {
		t.Errorf("At(1,0): got %d, want 258", img.At(1, 0))
	}
}

func TestDecode_Plain(t *testing.T) {
	data := []byte("P2\n# plain\n4 2\n100\n0 1 2 3\n 50 60\n70\n100\n")

	img, format, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if format != FormatPlain {
		t.Errorf("format: got %s, want P2", format)
	}
	if img.At(3, 1) != 100 || img.At(0, 1) != 50 {
		t.Errorf("samples: got %v", img.Samples())
	}
}

func TestDecode_TrailingDataIgnored(t *testing.T) {
	data := append([]byte("P5\n1 1\n255\n"), 7, 'x', 'y')

	img, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.At(0, 0) != 7 {
		t.Errorf("At(0,0): got %d, want 7", img.At(0, 0))
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind error
	}{
		{"empty", nil, ErrTruncated},
		{"not netpbm", []byte("GIF89a"), ErrMalformed},
		{"unknown magic", []byte("P9\n1 1\n255\n\x00"), ErrMalformed},
		{"pixmap", []byte("P6\n1 1\n255\n\x00\x00\x00"), ErrUnsupported},
		{"bitmap", []byte("P4\n8 1\n\x00"), ErrUnsupported},
		{"pam", []byte("P7\nWIDTH 1\n"), ErrUnsupported},
		{"magic glued to width", []byte("P512 2\n255\n"), ErrMalformed},
		{"missing height", []byte("P5\n12"), ErrTruncated},
		{"letter in width", []byte("P5\n1x 2\n255\n"), ErrMalformed},
		{"negative width", []byte("P5\n-1 2\n255\n"), ErrMalformed},
		{"zero width", []byte("P5\n0 2\n255\n"), ErrMalformed},
		{"huge dimensions", []byte("P5\n99999 99999\n255\n"), ErrMalformed},
		{"zero max value", []byte("P5\n1 1\n0\n\x00"), ErrMalformed},
		{"max value too large", []byte("P5\n1 1\n65536\n\x00\x00"), ErrMalformed},
		{"missing raster", []byte("P5\n2 2\n255"), ErrTruncated},
		{"truncated raster", []byte("P5\n2 2\n255\n\x01\x02\x03"), ErrTruncated},
		{"truncated 16-bit raster", []byte("P5\n2 1\n1000\n\x01\x02\x03"), ErrTruncated},
		{"sample above max", []byte("P5\n2 1\n100\n\x01\x65"), ErrMalformed},
		{"16-bit sample above max", []byte("P5\n1 1\n1000\n\x03\xE9"), ErrMalformed},
		{"plain truncated", []byte("P2\n2 2\n255\n1 2 3"), ErrTruncated},
		{"plain sample above max", []byte("P2\n1 1\n9\n10\n"), ErrMalformed},
		{"plain garbage", []byte("P2\n1 1\n9\nab\n"), ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, _, err := Decode(tt.data)
			if img != nil {
				t.Error("Decode returned an image alongside an error")
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Decode: got err %v, want %v", err, tt.kind)
			}
			var decErr *DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("error %T is not *DecodeError", err)
			}
			if decErr.Offset < 0 || decErr.Offset > len(tt.data) {
				t.Errorf("Offset %d outside data of length %d", decErr.Offset, len(tt.data))
			}
		})
	}
}

func TestEncode_BinaryHeader(t *testing.T) {
	img := mustImage(t, 3, 2, 255, []uint16{1, 2, 3, 4, 5, 6})

	data, err := Marshal(img, FormatBinary)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := append([]byte("P5\n3 2\n255\n"), 1, 2, 3, 4, 5, 6)
	if !bytes.Equal(data, want) {
		t.Errorf("encoded bytes: got %q, want %q", data, want)
	}
}

func TestEncode_SixteenBit(t *testing.T) {
	img := mustImage(t, 2, 1, 4095, []uint16{4095, 256})

	data, err := Marshal(img, FormatBinary)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := append([]byte("P5\n2 1\n4095\n"), 0x0F, 0xFF, 0x01, 0x00)
	if !bytes.Equal(data, want) {
		t.Errorf("encoded bytes: got %q, want %q", data, want)
	}
}

func TestEncode_PlainLineLimit(t *testing.T) {
	samples := make([]uint16, 40)
	for i := range samples {
		samples[i] = 65535
	}
	img := mustImage(t, 40, 1, 65535, samples)

	data, err := Marshal(img, FormatPlain)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if len(line) > plainLineLimit {
			t.Errorf("line %d has %d characters, limit %d", i, len(line), plainLineLimit)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		maxValue int
	}{
		{"binary 8-bit", FormatBinary, 255},
		{"binary low max", FormatBinary, 7},
		{"binary 16-bit", FormatBinary, 65535},
		{"plain 8-bit", FormatPlain, 255},
		{"plain 16-bit", FormatPlain, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width, height := 13, 5
			samples := make([]uint16, width*height)
			for i := range samples {
				samples[i] = uint16((i * 37) % (tt.maxValue + 1))
			}
			img := mustImage(t, width, height, tt.maxValue, samples)

			data, err := Marshal(img, tt.format)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			back, format, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if format != tt.format {
				t.Errorf("format: got %s, want %s", format, tt.format)
			}
			if !back.Equal(img) {
				t.Error("decoded image differs from the encoded one")
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncode_Errors(t *testing.T) {
	img := mustImage(t, 1, 1, 255, []uint16{0})

	var encErr *EncodeError
	if err := Encode(failingWriter{}, img, FormatBinary); !errors.As(err, &encErr) {
		t.Errorf("write failure: got %v, want *EncodeError", err)
	}
	if err := Encode(&bytes.Buffer{}, nil, FormatBinary); !errors.As(err, &encErr) {
		t.Errorf("nil image: got %v, want *EncodeError", err)
	}
	if err := Encode(&bytes.Buffer{}, img, Format("P6")); !errors.As(err, &encErr) {
		t.Errorf("unsupported format: got %v, want *EncodeError", err)
	}
}

func mustImage(t *testing.T, width, height, maxValue int, samples []uint16) *raster.Image {
	t.Helper()
	img, err := raster.New(width, height, maxValue, samples)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	return img
}
