// Package qrcode generates item lookup codes and renders them as scannable
// PNG images embedded in data URIs.
package qrcode

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	qr "github.com/skip2/go-qrcode"
)

const (
	dataURIPrefix = "data:image/png;base64,"
	defaultSize   = 256
)

// UUIDGenerator issues random (version 4) UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

// PNGRenderer encodes a lookup code as a QR code PNG.
type PNGRenderer struct {
	size  int
	level qr.RecoveryLevel
}

// NewPNGRenderer returns a renderer producing size x size images. A
// non-positive size uses 256.
func NewPNGRenderer(size int) *PNGRenderer {
	if size <= 0 {
		size = defaultSize
	}
	return &PNGRenderer{size: size, level: qr.Medium}
}

// Render returns the QR code for code as a data:image/png;base64 URI.
func (r *PNGRenderer) Render(code string) (string, error) {
	png, err := qr.Encode(code, r.level, r.size)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}
