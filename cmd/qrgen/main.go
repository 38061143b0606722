// qrgen downloads every table's QR code from a running API server and
// writes them as PNG files, one per table.
package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/ray-remotestate/tableside/client"
)

func main() {
	baseURL := flag.String("url", "http://localhost:5000", "API server base URL")
	outDir := flag.String("out", "qrcodes", "output directory for PNG files")
	flag.Parse()

	api := client.New(*baseURL)
	if err := api.SaveTableQRCodes(context.Background(), *outDir); err != nil {
		logrus.WithError(err).Fatal("failed to download table QR codes")
	}
	logrus.WithField("dir", *outDir).Info("table QR codes saved")
}
