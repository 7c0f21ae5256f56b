package orderview

import "github.com/angelmondragon/orderview-backend/pkg/enums"

// Customizations groups the buyer-supplied personalisations of a line.
type Customizations struct {
	Items []Customization `json:"items"`
}

type Customization struct {
	ID       int64                `json:"id"`
	Quantity int                  `json:"quantity"`
	Fields   []CustomizationField `json:"fields"`
}

type CustomizationField struct {
	Type  enums.CustomizationFieldType `json:"type"`
	Name  string                       `json:"name"`
	Value string                       `json:"value"`
}

// Len returns the number of customizations, zero for a nil receiver.
func (c *Customizations) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

func (c *Customizations) clone() *Customizations {
	if c == nil {
		return nil
	}
	out := &Customizations{Items: make([]Customization, len(c.Items))}
	for i, item := range c.Items {
		fields := make([]CustomizationField, len(item.Fields))
		copy(fields, item.Fields)
		item.Fields = fields
		out.Items[i] = item
	}
	return out
}
