package entity

import (
	"time"
)

// Room is a named space within a project. Deleting a room deletes its items.
type Room struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID string    `json:"project_id" gorm:"size:32;not null;index"`
	Name      string    `json:"name" gorm:"size:128;not null"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []Item `json:"items,omitempty" gorm:"foreignKey:RoomID"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomTypeOrder is the canonical render order for known room names.
// Rooms not in this list sort after all known ones, alphabetically.
var RoomTypeOrder = []string{
	"Entry",
	"Foyer",
	"Living Room",
	"Family Room",
	"Great Room",
	"Formal Dining Room",
	"Dining Room",
	"Breakfast Nook",
	"Kitchen",
	"Butler's Pantry",
	"Pantry",
	"Bar",
	"Wine Cellar",
	"Primary Bedroom",
	"Primary Bathroom",
	"Primary Closet",
	"Guest Bedroom",
	"Guest Bathroom",
	"Bedroom 2",
	"Bedroom 3",
	"Bedroom 4",
	"Bedroom 5",
	"Bathroom 2",
	"Bathroom 3",
	"Bathroom 4",
	"Powder Room",
	"Nursery",
	"Playroom",
	"Office",
	"Study",
	"Library",
	"Den",
	"Media Room",
	"Game Room",
	"Gym",
	"Laundry Room",
	"Mudroom",
	"Hallway",
	"Stairway",
	"Sunroom",
	"Screened Porch",
	"Patio",
	"Deck",
	"Outdoor Kitchen",
	"Pool Area",
	"Garage",
	"Basement",
	"Attic",
}

var roomTypeRank = func() map[string]int {
	m := make(map[string]int, len(RoomTypeOrder))
	for i, name := range RoomTypeOrder {
		m[name] = i
	}
	return m
}()

// RoomTypeRank returns the canonical position of a room name and whether the
// name is in the known vocabulary.
func RoomTypeRank(name string) (int, bool) {
	rank, ok := roomTypeRank[name]
	return rank, ok
}
