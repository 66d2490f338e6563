package netpbm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/image-gradient/internal/raster"
)

// Format identifies a PGM variant by its magic number.
type Format string

const (
	FormatBinary Format = "P5"
	FormatPlain  Format = "P2"
)

// maxPixels bounds width*height so a corrupt header cannot request an
// enormous allocation.
const maxPixels = 1 << 28

// plainLineLimit is the maximum line length of plain (P2) output.
const plainLineLimit = 70

func (f Format) valid() bool {
	return f == FormatBinary || f == FormatPlain
}

// Decode parses a PGM image.
//
// Returns the decoded image, the variant it was stored in, and a
// *DecodeError when the data is not a valid PGM file.
func Decode(data []byte) (*raster.Image, Format, error) {
	d := &decoder{data: data}

	format, err := d.readMagic()
	if err != nil {
		return nil, "", err
	}

	width, err := d.readUint("width")
	if err != nil {
		return nil, "", err
	}
	height, err := d.readUint("height")
	if err != nil {
		return nil, "", err
	}
	maxValue, err := d.readUint("max value")
	if err != nil {
		return nil, "", err
	}

	if width == 0 || height == 0 {
		return nil, "", d.errorf(ErrMalformed, "dimensions %dx%d must be positive", width, height)
	}
	if width*height > maxPixels {
		return nil, "", d.errorf(ErrMalformed, "dimensions %dx%d too large", width, height)
	}
	if maxValue < 1 || maxValue > raster.MaxSampleLimit {
		return nil, "", d.errorf(ErrMalformed, "max value %d outside [1, %d]", maxValue, raster.MaxSampleLimit)
	}

	var samples []uint16
	if format == FormatBinary {
		samples, err = d.readBinary(width*height, maxValue)
	} else {
		samples, err = d.readPlain(width*height, maxValue)
	}
	if err != nil {
		return nil, "", err
	}

	img, err := raster.New(width, height, maxValue, samples)
	if err != nil {
		return nil, "", d.errorf(ErrMalformed, "%v", err)
	}
	return img, format, nil
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) errorf(kind error, format string, args ...any) error {
	return &DecodeError{Kind: kind, Offset: d.pos, Msg: fmt.Sprintf(format, args...)}
}

func (d *decoder) readMagic() (Format, error) {
	if len(d.data) < 2 {
		return "", d.errorf(ErrTruncated, "missing magic number")
	}
	magic := string(d.data[:2])
	if magic[0] != 'P' {
		return "", d.errorf(ErrMalformed, "not a Netpbm file")
	}
	switch magic {
	case string(FormatBinary), string(FormatPlain):
	case "P1", "P3", "P4", "P6", "P7":
		return "", d.errorf(ErrUnsupported, "magic %s is not a graymap", magic)
	default:
		return "", d.errorf(ErrMalformed, "unknown magic number %q", magic)
	}
	d.pos = 2
	if d.pos < len(d.data) && !isSpace(d.data[d.pos]) && d.data[d.pos] != '#' {
		return "", d.errorf(ErrMalformed, "magic number must be followed by whitespace")
	}
	return Format(magic), nil
}

func (d *decoder) skipSpaceAndComments() {
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		switch {
		case isSpace(c):
			d.pos++
		case c == '#':
			for d.pos < len(d.data) && d.data[d.pos] != '\n' && d.data[d.pos] != '\r' {
				d.pos++
			}
		default:
			return
		}
	}
}

// readUint reads one decimal field. The field must end at whitespace, a
// comment or the end of data.
func (d *decoder) readUint(field string) (int, error) {
	d.skipSpaceAndComments()
	if d.pos >= len(d.data) {
		return 0, d.errorf(ErrTruncated, "missing %s", field)
	}

	start := d.pos
	n := 0
	for d.pos < len(d.data) && isDigit(d.data[d.pos]) {
		n = n*10 + int(d.data[d.pos]-'0')
		if n > maxPixels {
			return 0, d.errorf(ErrMalformed, "%s too large", field)
		}
		d.pos++
	}
	if d.pos == start {
		return 0, d.errorf(ErrMalformed, "expected %s, found %q", field, d.data[d.pos])
	}
	if d.pos < len(d.data) && !isSpace(d.data[d.pos]) && d.data[d.pos] != '#' {
		return 0, d.errorf(ErrMalformed, "invalid character %q in %s", d.data[d.pos], field)
	}
	return n, nil
}

func (d *decoder) readBinary(count, maxValue int) ([]uint16, error) {
	if d.pos >= len(d.data) {
		return nil, d.errorf(ErrTruncated, "missing raster")
	}
	if !isSpace(d.data[d.pos]) {
		return nil, d.errorf(ErrMalformed, "max value must be followed by one whitespace byte")
	}
	d.pos++

	bytesPerSample := 1
	if maxValue > 255 {
		bytesPerSample = 2
	}
	need := count * bytesPerSample
	if have := len(d.data) - d.pos; have < need {
		return nil, d.errorf(ErrTruncated, "raster has %d bytes, need %d", have, need)
	}

	samples := make([]uint16, count)
	for i := range samples {
		var s uint16
		if bytesPerSample == 1 {
			s = uint16(d.data[d.pos])
		} else {
			s = uint16(d.data[d.pos])<<8 | uint16(d.data[d.pos+1])
		}
		if int(s) > maxValue {
			return nil, d.errorf(ErrMalformed, "sample %d exceeds max value %d", s, maxValue)
		}
		samples[i] = s
		d.pos += bytesPerSample
	}
	return samples, nil
}

func (d *decoder) readPlain(count, maxValue int) ([]uint16, error) {
	samples := make([]uint16, count)
	for i := range samples {
		v, err := d.readUint("sample")
		if err != nil {
			return nil, err
		}
		if v > maxValue {
			return nil, d.errorf(ErrMalformed, "sample %d exceeds max value %d", v, maxValue)
		}
		samples[i] = uint16(v)
	}
	return samples, nil
}

// Encode writes img to w in the given PGM variant. The header reproduces the
// image's width, height and max value. Any failure is returned as an
// *EncodeError.
func Encode(w io.Writer, img *raster.Image, format Format) error {
	if img == nil {
		return &EncodeError{Err: errors.New("nil image")}
	}
	if !format.valid() {
		return &EncodeError{Err: fmt.Errorf("unsupported format %q", format)}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", format, img.Width(), img.Height(), img.MaxValue())

	if format == FormatBinary {
		writeBinary(bw, img)
	} else {
		writePlain(bw, img)
	}

	if err := bw.Flush(); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}

// Marshal returns the encoded bytes of img.
func Marshal(img *raster.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBinary and writePlain ignore write errors; bufio.Writer keeps the
// first one and Flush reports it.
func writeBinary(bw *bufio.Writer, img *raster.Image) {
	wide := img.MaxValue() > 255
	for y := 0; y < img.Height(); y++ {
		for _, s := range img.Row(y) {
			if wide {
				bw.WriteByte(byte(s >> 8))
			}
			bw.WriteByte(byte(s))
		}
	}
}

func writePlain(bw *bufio.Writer, img *raster.Image) {
	var num []byte
	for y := 0; y < img.Height(); y++ {
		col := 0
		for _, s := range img.Row(y) {
			num = strconv.AppendUint(num[:0], uint64(s), 10)
			if col > 0 {
				if col+1+len(num) > plainLineLimit {
					bw.WriteByte('\n')
					col = 0
				} else {
					bw.WriteByte(' ')
					col++
				}
			}
			bw.Write(num)
			col += len(num)
		}
		bw.WriteByte('\n')
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
