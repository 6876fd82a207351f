// Package capture turns raw image bytes into the self-contained encoded
// form the rest of the pipeline works with: a media type plus a base64
// payload, addressable by a content hash of the decoded bytes.
package capture

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// EncodedImage is a text-safe representation of an image suitable for
// embedding in a JSON request body.
type EncodedImage struct {
	MediaType string
	Payload   string
}

// Load reads an image file and encodes it. Any readable file is
// accepted; the media type is sniffed from the content.
func Load(path string) (EncodedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("read image: %w", err)
	}
	return FromBytes(data), nil
}

// FromBytes encodes raw image bytes.
func FromBytes(data []byte) EncodedImage {
	return EncodedImage{
		MediaType: http.DetectContentType(data),
		Payload:   base64.StdEncoding.EncodeToString(data),
	}
}

// ParseDataURL splits a data URL (or a bare base64 string) into its
// prefix and payload parts.
func ParseDataURL(s string) (EncodedImage, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return EncodedImage{MediaType: "image/jpeg", Payload: s}, nil
	}
	prefix, payload, ok := strings.Cut(s, ",")
	if !ok {
		return EncodedImage{}, fmt.Errorf("malformed data URL")
	}
	mediaType := strings.TrimPrefix(prefix, "data:")
	mediaType = strings.TrimSuffix(mediaType, ";base64")
	if mediaType == "" {
		mediaType = "image/jpeg"
	}
	return EncodedImage{MediaType: mediaType, Payload: payload}, nil
}

// DataURL renders the image as a browser-style data URL.
func (img EncodedImage) DataURL() string {
	return "data:" + img.MediaType + ";base64," + img.Payload
}

// Bytes decodes the payload back to raw image bytes.
func (img EncodedImage) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(img.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}

// Hash returns the SHA-256 of the decoded image bytes, used as the OCR
// cache key so encoding variance cannot duplicate entries. If the
// payload does not decode, the payload text itself is hashed.
func (img EncodedImage) Hash() string {
	data, err := img.Bytes()
	if err != nil {
		data = []byte(img.Payload)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
