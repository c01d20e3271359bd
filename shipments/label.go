package shipments

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bazaar/db"
	"bazaar/models"
	"bazaar/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// GET /api/v1/shipment/label/:orderId — renders a printable PDF label with
// both addresses and a QR code of the tracking payload.
func PrintShippingLabel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User is not authenticated")
		return
	}
	orderID := ps.ByName("orderId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx,
		bson.M{"orderid": orderID, "buyerid": userID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	var shipment models.Shipment
	if err := db.ShipmentsCollection.FindOne(ctx,
		bson.M{"orderid": orderID}).Decode(&shipment); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shipment not found for this order")
		return
	}

	var address models.Address
	if err := db.AddressCollection.FindOne(ctx,
		bson.M{"addressid": order.AddressID}).Decode(&address); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Address not found for this order")
		return
	}

	recipientName := "Customer"
	var buyer models.User
	if err := db.UserCollection.FindOne(ctx,
		bson.M{"userid": order.BuyerID}).Decode(&buyer); err == nil {
		recipientName = buyer.FullName
	}

	qrPayload := fmt.Sprintf("%s|%s|%s", shipment.Carrier, shipment.TrackingNumber, order.OrderID)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Shipping Label")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Ship To:")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, recipientName)
	pdf.Ln(6)
	pdf.Cell(0, 8, address.HouseNumber+", "+address.Area)
	pdf.Ln(6)
	pdf.Cell(0, 8, address.City+", "+address.State+" "+strconv.Itoa(address.Pincode))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Phone: "+address.MobileNumber)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Carrier: "+shipment.Carrier)
	pdf.Ln(8)
	pdf.Cell(0, 8, "Tracking #: "+shipment.TrackingNumber)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Order: "+order.OrderID)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=label-"+shipment.TrackingNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
