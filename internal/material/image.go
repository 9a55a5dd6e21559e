package material

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// Image errors.
var (
	ErrNoImageData      = errors.New("image has no data")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// MIME types glTF accepts for embedded images.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

type imageFormat int

const (
	formatUnknown imageFormat = iota
	formatPNG
	formatJPEG
	formatBMP
	formatWebP
)

func sniff(data []byte) imageFormat {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return formatPNG
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return formatJPEG
	case bytes.HasPrefix(data, []byte("BM")):
		return formatBMP
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return formatWebP
	}
	return formatUnknown
}

// Embeddable returns image bytes glTF can embed as-is together with their
// MIME type. PNG and JPEG pass through; BMP and WebP are re-encoded as PNG.
func Embeddable(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", ErrNoImageData
	}

	var (
		img image.Image
		err error
	)
	switch sniff(data) {
	case formatPNG:
		return data, MimePNG, nil
	case formatJPEG:
		return data, MimeJPEG, nil
	case formatBMP:
		img, err = bmp.Decode(bytes.NewReader(data))
	case formatWebP:
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, "", ErrUnsupportedImage
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), MimePNG, nil
}
