package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/ray-remotestate/tableside/utils"
)

const qrImageSize = 300

type tableQR struct {
	TableNumber string `json:"tableNumber"`
	QRCode      string `json:"qrCode"`
	MenuURL     string `json:"menuUrl"`
}

// GenerateTableQR returns a QR image for one table, encoding the storefront
// menu URL carrying the table number.
func (h *Handler) GenerateTableQR(w http.ResponseWriter, r *http.Request) {
	tableNumber := mux.Vars(r)["tableNumber"]
	if tableNumber == "" {
		utils.RespondError(w, http.StatusBadRequest, "Table number is required")
		return
	}

	qr, err := h.tableQR(tableNumber)
	if err != nil {
		h.serverError(w, "Failed to generate QR code", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, qr)
}

// TableQRCodes returns QR images for every configured table.
func (h *Handler) TableQRCodes(w http.ResponseWriter, r *http.Request) {
	codes := make([]tableQR, 0, h.cfg.TableCount)
	for table := 1; table <= h.cfg.TableCount; table++ {
		qr, err := h.tableQR(fmt.Sprintf("%d", table))
		if err != nil {
			h.serverError(w, "Failed to generate table QR codes", err)
			return
		}
		codes = append(codes, *qr)
	}
	utils.RespondJSON(w, http.StatusOK, codes)
}

func (h *Handler) tableQR(tableNumber string) (*tableQR, error) {
	menuURL := fmt.Sprintf("%s/menu?table=%s", h.cfg.StorefrontURL, tableNumber)

	// highest error correction so the printed code survives table wear
	png, err := qrcode.Encode(menuURL, qrcode.Highest, qrImageSize)
	if err != nil {
		return nil, err
	}

	return &tableQR{
		TableNumber: tableNumber,
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		MenuURL:     menuURL,
	}, nil
}
