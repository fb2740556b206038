// Package seed holds the startup catalog and sample accounts.
package seed

import (
	_ "embed"
	"fmt"

	"food-ordering/internal/data/entity"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// User is a sample account. Password is plaintext and hashed on registration.
type User struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone"`
	Password  string `yaml:"password"`
}

type Dish struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	ImageURL    string  `yaml:"image_url"`
	Category    string  `yaml:"category"`
	Ingredients string  `yaml:"ingredients"`
}

type Catalog struct {
	Users  []User `yaml:"users"`
	Dishes []Dish `yaml:"dishes"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(cat.Dishes))
	for _, d := range cat.Dishes {
		if d.ID == "" {
			return nil, fmt.Errorf("parse catalog: dish %q has no id", d.Name)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("parse catalog: duplicate dish id %s", d.ID)
		}
		if d.Price < 0 {
			return nil, fmt.Errorf("parse catalog: dish %s has a negative price", d.ID)
		}
		seen[d.ID] = true
	}
	return &cat, nil
}

func (c *Catalog) EntityDishes() []*entity.Dish {
	dishes := make([]*entity.Dish, len(c.Dishes))
	for i, d := range c.Dishes {
		dishes[i] = &entity.Dish{
			BaseSimple:  entity.BaseSimple{ID: d.ID},
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			ImageURL:    d.ImageURL,
			Category:    d.Category,
			Ingredients: d.Ingredients,
		}
	}
	return dishes
}
