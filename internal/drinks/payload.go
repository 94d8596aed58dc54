package drinks

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/example/coffeeshop-api/internal/apierror"
)

type drinkPayload struct {
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Patch is a partial drink update. Title and Recipe are each optional but at
// least one must be present.
type Patch struct {
	Title  string
	Recipe []Ingredient
}

// ParseDrinkPayload decodes and validates a create request body. Validation
// is non-accumulating: the first violation, in body -> title -> recipe ->
// per-ingredient order, wins.
func ParseDrinkPayload(r io.Reader) (title string, recipe []Ingredient, err error) {
	var p drinkPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return "", nil, apierror.BadRequest("No data was provided")
	}

	if p.Title == "" {
		return "", nil, apierror.MissingField("title")
	}
	if len(p.Recipe) == 0 {
		return "", nil, apierror.MissingField("recipe")
	}
	if err := validateRecipe(p.Recipe); err != nil {
		return "", nil, err
	}

	return p.Title, p.Recipe, nil
}

// ParseDrinkPatch decodes and validates an update request body. A recipe, when
// present, is held to the same per-ingredient rules as on create.
func ParseDrinkPatch(r io.Reader) (*Patch, error) {
	var p drinkPayload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, apierror.BadRequest("No data was provided")
	}

	if p.Title == "" && len(p.Recipe) == 0 {
		return nil, apierror.MissingField("recipe/title")
	}
	if len(p.Recipe) > 0 {
		if err := validateRecipe(p.Recipe); err != nil {
			return nil, err
		}
	}

	return &Patch{Title: p.Title, Recipe: p.Recipe}, nil
}

// validateRecipe checks each ingredient in recipe order: name, then color,
// then parts. Parts must be a positive number.
func validateRecipe(recipe []Ingredient) error {
	for i, ing := range recipe {
		if ing.Name == "" {
			return apierror.MissingField(fmt.Sprintf("name of ingredient %d", i+1))
		}
		if ing.Color == "" {
			return apierror.MissingField(fmt.Sprintf("color of ingredient %d", i+1))
		}
		if ing.Parts <= 0 {
			return apierror.MissingField(fmt.Sprintf("parts of ingredient %d", i+1))
		}
	}
	return nil
}
