package property

import (
	"fmt"
	"strconv"
)

// Item is a single name/value pair supplied by a host.
type Item struct {
	Name  string
	Value any
}

// Pair creates an Item.
func Pair(name string, value any) Item {
	return Item{Name: name, Value: value}
}

// ItemsFromPairs adapts raw [name, value] slices into Items.
// A pair without a second element gets a nil value; a pair without any
// element gets an empty name.
func ItemsFromPairs(pairs [][]any) []Item {
	items := make([]Item, 0, len(pairs))
	for _, p := range pairs {
		var item Item
		if len(p) > 0 {
			if s, ok := p[0].(string); ok {
				item.Name = s
			} else if p[0] != nil {
				item.Name = fmt.Sprint(p[0])
			}
		}
		if len(p) > 1 {
			item.Value = p[1]
		}
		items = append(items, item)
	}
	return items
}

// Row is the display record for one item.
type Row struct {
	// ID is the zero-based position of the item, as a string.
	ID    string
	Name  string
	Value any
}

// FormatRows converts items into rows, one per item, in order.
func FormatRows(items []Item) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Row{
			ID:    strconv.Itoa(i),
			Name:  item.Name,
			Value: item.Value,
		}
	}
	return rows
}
