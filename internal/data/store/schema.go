package store

import "fmt"

// SchemaVersion is bumped whenever collections or indexes change.
const SchemaVersion = 1

const (
	CollectionUsers        = "users"
	CollectionDishes       = "dishes"
	CollectionCartItems    = "cart_items"
	CollectionOrders       = "orders"
	CollectionOrderDetails = "order_details"
	CollectionFavorites    = "favorites"
	CollectionPreferences  = "preferences"
)

const (
	IndexUserID   = "user_id"
	IndexOrderID  = "order_id"
	IndexUserDish = "user_dish"
)

type Index struct {
	Name   string
	Fields []string
	Unique bool
}

type Collection struct {
	Name    string
	AutoKey bool
	Indexes []Index
}

func (c Collection) index(name string) (Index, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// Schema lists every collection created on open.
var Schema = []Collection{
	{Name: CollectionUsers},
	{Name: CollectionDishes},
	{
		Name:    CollectionCartItems,
		AutoKey: true,
		Indexes: []Index{{Name: IndexUserID, Fields: []string{"user_id"}}},
	},
	{
		Name:    CollectionOrders,
		AutoKey: true,
		Indexes: []Index{{Name: IndexUserID, Fields: []string{"user_id"}}},
	},
	{
		Name:    CollectionOrderDetails,
		AutoKey: true,
		Indexes: []Index{{Name: IndexOrderID, Fields: []string{"order_id"}}},
	},
	{
		Name:    CollectionFavorites,
		AutoKey: true,
		Indexes: []Index{
			{Name: IndexUserID, Fields: []string{"user_id"}},
			{Name: IndexUserDish, Fields: []string{"user_id", "dish_id"}, Unique: true},
		},
	},
	{Name: CollectionPreferences},
}

func lookupCollection(name string) (Collection, error) {
	for _, c := range Schema {
		if c.Name == name {
			return c, nil
		}
	}
	return Collection{}, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
}

func lookupIndex(collection, name string) (Collection, Index, error) {
	c, err := lookupCollection(collection)
	if err != nil {
		return Collection{}, Index{}, err
	}
	idx, ok := c.index(name)
	if !ok {
		return Collection{}, Index{}, fmt.Errorf("%w: %s.%s", ErrUnknownIndex, collection, name)
	}
	return c, idx, nil
}
