package booking

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"courtside/db"
	"courtside/middleware"
	"courtside/models"
	"courtside/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// qrPayload returns a signed payload "bookingid|facilityid|date|start|sig"
// that front-desk staff can scan to verify a booking wasn't fabricated.
func qrPayload(b *models.Booking) string {
	data := fmt.Sprintf("%s|%s|%s|%s", b.BookingID, b.FacilityID, b.Date, b.StartTime)
	h := hmac.New(sha256.New, middleware.Secret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return data + "|" + sig
}

// BookingReceipt renders a PDF confirmation with an embedded check-in QR
// code for the booking's owner (or an admin).
func BookingReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	b, err := loadOwned(ctx, r, ps.ByName("id"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	var facility models.Facility
	facilityName := b.FacilityID
	if ferr := db.FacilitiesCollection.FindOne(ctx,
		bson.M{"facilityid": b.FacilityID}).Decode(&facility); ferr == nil {
		facilityName = facility.Name
	}

	qrPNG, err := qrcode.Encode(qrPayload(b), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Booking Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Booking ID: %s", b.BookingID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Facility: %s", facilityName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", b.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Time: %s - %s", b.StartTime, b.EndTime))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", b.Status))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
