package sheet

import (
	"sort"
	"strings"

	"github.com/estdesignco/walkthrough-app/internal/model/entity"
)

// FilterAll matches every room or category.
const FilterAll = "all"

// Filter narrows the item list before grouping. All conditions are ANDed.
type Filter struct {
	// Search is a case-insensitive substring match against item name and
	// vendor SKU. Empty matches everything.
	Search string
	// RoomID is an exact room id, or "all"/empty for every room.
	RoomID string
	// Category is an exact category match (after defaulting), or
	// "all"/empty for every category.
	Category string
}

// Grouped is the derived render tree: Room -> Category -> SubCategory ->
// ordered items. It is recomputed from the flat lists on every change and
// never stored.
type Grouped struct {
	Rooms []RoomGroup
}

// RoomGroup is one room's slice of the tree.
type RoomGroup struct {
	Room       entity.Room
	Categories []CategoryGroup
}

// CategoryGroup is one category bucket within a room.
type CategoryGroup struct {
	Name          string
	SubCategories []SubCategoryGroup
}

// SubCategoryGroup holds the items of one (room, category, sub-category)
// triple, in input order.
type SubCategoryGroup struct {
	Name  string
	Items []entity.Item
}

// Matches reports whether an item passes the filter.
func (f Filter) Matches(item entity.Item) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.VendorSKU), needle) {
			return false
		}
	}
	if f.RoomID != "" && f.RoomID != FilterAll && item.RoomID != f.RoomID {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && effectiveCategory(item) != f.Category {
		return false
	}
	return true
}

func effectiveCategory(item entity.Item) string {
	if item.Category == "" {
		return entity.DefaultCategory
	}
	return item.Category
}

func effectiveSubCategory(item entity.Item) string {
	if item.SubCategory == "" {
		return entity.DefaultSubCategory
	}
	return item.SubCategory
}

// Group projects the flat room and item lists into the ordered tree. It is
// pure: identical inputs always yield an identical tree, and within a bucket
// items keep the order they arrived in.
//
// Rooms render in canonical vocabulary order, unknown names after known ones
// alphabetically. Categories render in fixed priority order, unknown ones
// after known ones in encounter order. A room with no matching items is shown
// only when it is the explicit room filter target.
func Group(rooms []entity.Room, items []entity.Item, f Filter) Grouped {
	byRoom := make(map[string][]entity.Item)
	for _, item := range items {
		if !f.Matches(item) {
			continue
		}
		byRoom[item.RoomID] = append(byRoom[item.RoomID], item)
	}

	ordered := make([]entity.Room, len(rooms))
	copy(ordered, rooms)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, iKnown := entity.RoomTypeRank(ordered[i].Name)
		rj, jKnown := entity.RoomTypeRank(ordered[j].Name)
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return ordered[i].Name < ordered[j].Name
		}
	})

	explicitRoom := f.RoomID != "" && f.RoomID != FilterAll

	var out Grouped
	for _, room := range ordered {
		bucket := byRoom[room.ID]
		if len(bucket) == 0 {
			if !explicitRoom || room.ID != f.RoomID {
				continue
			}
		}
		out.Rooms = append(out.Rooms, RoomGroup{
			Room:       room,
			Categories: groupCategories(bucket),
		})
	}
	return out
}

func groupCategories(items []entity.Item) []CategoryGroup {
	var names []string
	buckets := make(map[string][]entity.Item)
	for _, item := range items {
		cat := effectiveCategory(item)
		if _, seen := buckets[cat]; !seen {
			names = append(names, cat)
		}
		buckets[cat] = append(buckets[cat], item)
	}

	// Known categories by priority, unknown ones keep encounter order.
	sort.SliceStable(names, func(i, j int) bool {
		ri, iKnown := entity.CategoryRank(names[i])
		rj, jKnown := entity.CategoryRank(names[j])
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		default:
			return false
		}
	})

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{
			Name:          name,
			SubCategories: groupSubCategories(buckets[name]),
		})
	}
	return groups
}

func groupSubCategories(items []entity.Item) []SubCategoryGroup {
	var names []string
	buckets := make(map[string][]entity.Item)
	for _, item := range items {
		sub := effectiveSubCategory(item)
		if _, seen := buckets[sub]; !seen {
			names = append(names, sub)
		}
		buckets[sub] = append(buckets[sub], item)
	}

	groups := make([]SubCategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, SubCategoryGroup{Name: name, Items: buckets[name]})
	}
	return groups
}
