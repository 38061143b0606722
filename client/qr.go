package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// TableQR mirrors the QR endpoint payload: a data-URL PNG plus the menu URL
// it encodes.
type TableQR struct {
	TableNumber string `json:"tableNumber"`
	QRCode      string `json:"qrCode"`
	MenuURL     string `json:"menuUrl"`
}

func (c *Client) TableQRCodes(ctx context.Context) ([]TableQR, error) {
	var codes []TableQR
	err := c.do(ctx, http.MethodGet, "/api/qr/tables", nil, &codes)
	return codes, err
}

func (c *Client) GenerateTableQR(ctx context.Context, tableNumber string) (*TableQR, error) {
	var code TableQR
	if err := c.do(ctx, http.MethodGet, "/api/qr/generate/"+tableNumber, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

// SaveTableQRCodes downloads every table's QR code into dir as
// table-<n>.png, the bulk download behind the admin QR manager.
func (c *Client) SaveTableQRCodes(ctx context.Context, dir string) error {
	codes, err := c.TableQRCodes(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, code := range codes {
		png, err := decodeDataURL(code.QRCode)
		if err != nil {
			return fmt.Errorf("table %s: %w", code.TableNumber, err)
		}
		name := filepath.Join(dir, fmt.Sprintf("table-%s.png", code.TableNumber))
		if err := os.WriteFile(name, png, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	_, encoded, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	return base64.StdEncoding.DecodeString(encoded)
}
