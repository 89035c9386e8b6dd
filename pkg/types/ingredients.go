package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ingredient references an inventory item consumed by a recipe.
type Ingredient struct {
	InventoryItemID string          `json:"inventoryItemId,omitempty"`
	Name            string          `json:"name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
}

// Ingredients is stored as a JSONB column on recipes.
type Ingredients []Ingredient

// Value implements driver.Valuer.
func (i Ingredients) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner.
func (i *Ingredients) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = nil
		return nil
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	default:
		return fmt.Errorf("unsupported ingredients source %T", src)
	}
}

// NutritionInfo is an optional per-serving nutrition breakdown.
type NutritionInfo struct {
	Calories decimal.Decimal `json:"calories,omitempty"`
	Protein  decimal.Decimal `json:"protein,omitempty"`
	Carbs    decimal.Decimal `json:"carbs,omitempty"`
	Fat      decimal.Decimal `json:"fat,omitempty"`
	Sodium   decimal.Decimal `json:"sodium,omitempty"`
}

// Value implements driver.Valuer.
func (n NutritionInfo) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements sql.Scanner.
func (n *NutritionInfo) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = NutritionInfo{}
		return nil
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return fmt.Errorf("unsupported nutrition source %T", src)
	}
}
