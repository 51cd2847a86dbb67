package model

import (
	"sort"
	"strings"
	"time"
)

// Customization is the set of options a customer picked for one cake:
// one size, any number of toppings (a set of names), one color, one
// flavor, optional free-text instructions. It is a value object; two
// customizations are equal only if every field matches, with toppings
// compared as a set.
type Customization struct {
	Size                string   `json:"size"`
	Toppings            []string `json:"toppings"`
	Color               string   `json:"color"`
	Flavor              string   `json:"flavor"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// Equal is the total equality used for the basket merge key
func (c *Customization) Equal(other *Customization) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Key() == other.Key()
}

// Key returns a canonical representation of the customization,
// stable under topping ordering. The empty string means "no
// customization".
func (c *Customization) Key() string {
	if c == nil {
		return ""
	}
	toppings := append([]string(nil), c.Toppings...)
	sort.Strings(toppings)

	var b strings.Builder
	b.WriteString("size=")
	b.WriteString(c.Size)
	b.WriteString(";toppings=")
	b.WriteString(strings.Join(toppings, ","))
	b.WriteString(";color=")
	b.WriteString(c.Color)
	b.WriteString(";flavor=")
	b.WriteString(c.Flavor)
	b.WriteString(";notes=")
	b.WriteString(c.SpecialInstructions)
	return b.String()
}

// CartItem is one basket line: a product, an optional customization
// and a quantity. Invariant: TotalPrice == UnitPrice * Quantity and
// UnitPrice == product base price + selected option adjustments,
// recomputed on every quantity change.
//
// The (user, product, customization key) identity is unique so that
// concurrent adds of the same configuration cannot fork into two
// lines; losers of the insert race merge into the winner. Basket
// lines are hard-deleted since a soft-deleted row would keep holding
// the merge key.
type CartItem struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	UserID           uint           `gorm:"not null;uniqueIndex:idx_cart_merge_identity" json:"user_id"`
	ProductID        uint           `gorm:"not null;index;uniqueIndex:idx_cart_merge_identity" json:"product_id"`
	Customization    *Customization `gorm:"serializer:json;type:text" json:"customization,omitempty"`
	CustomizationKey string         `gorm:"type:text;uniqueIndex:idx_cart_merge_identity" json:"-"` // canonical merge key, "" when uncustomized
	Quantity         int            `gorm:"not null;default:1" json:"quantity"`
	UnitPrice        float64        `gorm:"not null" json:"unit_price"`
	TotalPrice       float64        `gorm:"not null" json:"total_price"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
