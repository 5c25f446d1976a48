package sheet

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
)

// ExportColumns is the fixed FF&E export header.
var ExportColumns = []string{
	"Room",
	"Category",
	"Sub-Category",
	"Item Name",
	"Vendor/SKU",
	"Quantity",
	"Size",
	"Status",
	"Finish/Color",
	"Actual Cost",
	"Image Link",
	"Link",
	"Estimated Ship Date",
	"Estimated Delivery Date",
	"Install Date",
	"Shipping To",
	"Tracking Number",
	"Carrier",
	"Order Date",
	"Remarks",
}

// WriteCSV writes the grouped tree as the 20-column FF&E export, one row per
// item, in grouped render order. Fields containing commas, quotes or
// newlines are double-quote escaped.
func WriteCSV(w io.Writer, tree Grouped) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, room := range tree.Rooms {
		for _, cat := range room.Categories {
			for _, sub := range cat.SubCategories {
				for _, item := range sub.Items {
					row := []string{
						room.Room.Name,
						cat.Name,
						sub.Name,
						item.Name,
						item.VendorSKU,
						strconv.Itoa(item.Quantity),
						item.Size,
						item.Status,
						item.FinishColor,
						formatCost(item.ActualCost),
						item.ImageURL,
						item.ProductURL,
						formatDate(item.EstShipDate),
						formatDate(item.EstDeliveryDate),
						formatDate(item.InstallDate),
						item.ShipTo,
						item.TrackingNumber,
						item.Carrier,
						formatDate(item.OrderDate),
						item.Remarks,
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportFileName builds the download name for a project's FF&E CSV.
func ExportFileName(projectName string) string {
	return KebabCase(projectName) + "-ffe-data.csv"
}

// KebabCase lowercases a display name and joins its words with hyphens,
// dropping anything that is not a letter or digit.
func KebabCase(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func formatCost(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
