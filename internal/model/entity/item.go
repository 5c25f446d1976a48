package entity

import (
	"time"
)

// Item is a single furniture/fixture/product record attached to a room.
// Which sheet an item appears on (Walkthrough, Checklist, FF&E) is determined
// solely by its status value.
type Item struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string `json:"project_id" gorm:"size:32;not null;index"`
	RoomID      string `json:"room_id" gorm:"size:32;not null;index"`
	Category    string `json:"category" gorm:"size:64"`
	SubCategory string `json:"sub_category" gorm:"size:64"`
	Name        string `json:"name" gorm:"size:256;not null"`
	Status      string `json:"status" gorm:"size:32;not null;index"`
	Quantity    int    `json:"quantity" gorm:"not null;default:1"`

	VendorSKU       string     `json:"vendor_sku" gorm:"size:128"`
	ActualCost      float64    `json:"actual_cost" gorm:"type:decimal(12,2)"`
	Size            string     `json:"size" gorm:"size:128"`
	FinishColor     string     `json:"finish_color" gorm:"size:128"`
	ImageURL        string     `json:"image_url" gorm:"size:512"`
	ProductURL      string     `json:"product_url" gorm:"size:512"`
	EstShipDate     *time.Time `json:"est_ship_date" gorm:"type:date"`
	EstDeliveryDate *time.Time `json:"est_delivery_date" gorm:"type:date"`
	InstallDate     *time.Time `json:"install_date" gorm:"type:date"`
	ShipTo          string     `json:"ship_to" gorm:"size:256"`
	TrackingNumber  string     `json:"tracking_number" gorm:"size:128"`
	Carrier         string     `json:"carrier" gorm:"size:64"`
	OrderDate       *time.Time `json:"order_date" gorm:"type:date"`
	Remarks         string     `json:"remarks" gorm:"type:text"`

	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}

// Item statuses. Walkthrough and PICKED each define their own sheet; the
// remaining values all live on the FF&E sheet.
const (
	StatusWalkthrough        = "Walkthrough"
	StatusPicked             = "PICKED"
	StatusApproved           = "Approved"
	StatusOrdered            = "Ordered"
	StatusShipped            = "Shipped"
	StatusDeliveredReceiver  = "Delivered to Receiver"
	StatusDeliveredStore     = "Delivered to Store"
	StatusDeliveredJobsite   = "Delivered to Jobsite"
	StatusOnHold             = "On Hold"
	StatusPartiallyDelivered = "Partially Delivered"
	StatusDamaged            = "Damaged"
	StatusBackordered        = "Backordered"
	StatusAtWorkroom         = "At Workroom"
	StatusAskAdvisor         = "Ask Advisor"
	StatusAskClient          = "Ask Client"
	StatusReadyForInstall    = "Ready for Install"
	StatusInstalled          = "Installed"
)

// FFEStatuses is the status set shown on the FF&E sheet.
var FFEStatuses = []string{
	StatusApproved,
	StatusOrdered,
	StatusShipped,
	StatusDeliveredReceiver,
	StatusDeliveredStore,
	StatusDeliveredJobsite,
	StatusOnHold,
	StatusPartiallyDelivered,
	StatusDamaged,
	StatusBackordered,
	StatusAtWorkroom,
	StatusAskAdvisor,
	StatusAskClient,
	StatusReadyForInstall,
	StatusInstalled,
	StatusPicked,
}

var validStatuses = func() map[string]bool {
	m := make(map[string]bool, len(FFEStatuses)+1)
	for _, s := range FFEStatuses {
		m[s] = true
	}
	m[StatusWalkthrough] = true
	return m
}()

// ValidStatus reports whether s is one of the known item statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Grouping defaults applied when an item carries no category or sub-category.
const (
	DefaultCategory    = "Uncategorized"
	DefaultSubCategory = "Misc."
)

// CategoryOrder is the fixed render priority for known categories. Categories
// not in this list sort after all known ones, in encounter order.
var CategoryOrder = []string{
	"LIGHTING",
	"FURNITURE",
	"PLUMBING",
	"APPLIANCES",
	"CABINETS",
	"COUNTERTOPS & TILE",
	"ACCESSORIES",
	"TEXTILES",
	"OUTDOOR",
	"PAINT/WALLPAPER/HARDWARE & FINISHES",
	"ARCHITECTURAL ELEMENTS",
	DefaultCategory,
}

var categoryRank = func() map[string]int {
	m := make(map[string]int, len(CategoryOrder))
	for i, name := range CategoryOrder {
		m[name] = i
	}
	return m
}()

// CategoryRank returns the priority position of a category and whether the
// category is a known one.
func CategoryRank(name string) (int, bool) {
	rank, ok := categoryRank[name]
	return rank, ok
}
