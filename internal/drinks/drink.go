// Package drinks implements the drink menu: the Drink entity, its sqlite
// backed store, request payload validation and the CRUD handlers.
package drinks

// Ingredient is one component of a drink's recipe. All three fields are
// mandatory for every ingredient.
type Ingredient struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Parts float64 `json:"parts"`
}

// Drink is the persistent menu entity. Titles are unique across all drinks;
// uniqueness is enforced by the store.
type Drink struct {
	ID     int64
	Title  string
	Recipe []Ingredient
}

// ShortIngredient is the trimmed per-ingredient view exposed to
// unauthenticated clients: only the color survives.
type ShortIngredient struct {
	Color string `json:"color"`
}

// ShortDrink is the short serialized view of a drink.
type ShortDrink struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// LongDrink is the full serialized view of a drink.
type LongDrink struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Short returns the trimmed view of the drink.
func (d *Drink) Short() ShortDrink {
	recipe := make([]ShortIngredient, len(d.Recipe))
	for i, ing := range d.Recipe {
		recipe[i] = ShortIngredient{Color: ing.Color}
	}
	return ShortDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long returns the full view of the drink.
func (d *Drink) Long() LongDrink {
	recipe := make([]Ingredient, len(d.Recipe))
	copy(recipe, d.Recipe)
	return LongDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}
