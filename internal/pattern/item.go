// Package pattern defines the visual tokens and puzzle records shared by the
// level generators, the progression engine and every rendering front end.
package pattern

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Shape is the outline drawn for an item.
type Shape string

const (
	ShapeNone     Shape = ""
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeTriangle Shape = "triangle"
	ShapeStar     Shape = "star"
	ShapeHeart    Shape = "heart"
	ShapeArrow    Shape = "arrow"
	ShapeDot      Shape = "dot"
	ShapeSun      Shape = "sun"
	ShapeMoon     Shape = "moon"
	ShapeCloud    Shape = "cloud"
)

// Size is the display scale of an item. The zero value renders as medium.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Value is the numeric or alphabetic payload of an item.
// The zero value means the item carries no value.
type Value struct {
	num     int
	text    string
	numeric bool
	set     bool
}

// Num returns an integer value.
func Num(n int) Value {
	return Value{num: n, numeric: true, set: true}
}

// Text returns a short string value such as a letter.
func Text(s string) Value {
	return Value{text: s, set: true}
}

// Int returns the integer payload and whether the value is numeric.
func (v Value) Int() (int, bool) {
	return v.num, v.numeric
}

// IsZero reports whether no value was set.
func (v Value) IsZero() bool {
	return !v.set
}

// String returns the display form, or "" when unset.
func (v Value) String() string {
	switch {
	case !v.set:
		return ""
	case v.numeric:
		return strconv.Itoa(v.num)
	default:
		return v.text
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and unset as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case !v.set:
		return []byte("null"), nil
	case v.numeric:
		return json.Marshal(v.num)
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = Value{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Num(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("pattern: value must be number or string: %w", err)
	}
	*v = Text(s)
	return nil
}

// Item is an atomic visual token. Items are passed by value and never
// mutated after construction; the With* helpers return modified copies.
type Item struct {
	ID       string `json:"id"`
	Shape    Shape  `json:"shape,omitempty"`
	Color    Color  `json:"color,omitempty"`
	Size     Size   `json:"size,omitempty"`
	Value    Value  `json:"value"`
	Rotation int    `json:"rotation,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

// WithID returns a copy of the item carrying a new identity.
func (it Item) WithID(id string) Item {
	it.ID = id
	return it
}

// WithValue returns a copy of the item with v as its payload.
func (it Item) WithValue(v Value) Item {
	it.Value = v
	return it
}

// WithRotation returns a copy of the item rotated to deg, normalized to [0,360).
func (it Item) WithRotation(deg int) Item {
	it.Rotation = NormalizeRotation(deg)
	return it
}

// NormalizeRotation maps any angle in degrees into [0,360).
func NormalizeRotation(deg int) int {
	return (deg%360 + 360) % 360
}

// VisualKey returns the normalized display tuple of the item. Two items with
// the same key look identical on screen regardless of their ids.
func (it Item) VisualKey() string {
	parts := []string{
		orNone(string(it.Shape)),
		orNone(string(it.Color)),
		orNone(it.Emoji),
		orNone(it.Value.String()),
		string(it.normalizedSize()),
		strconv.Itoa(NormalizeRotation(it.Rotation)),
	}
	return strings.Join(parts, "|")
}

// Equivalent reports whether two items are visually indistinguishable.
func Equivalent(a, b Item) bool {
	return a.VisualKey() == b.VisualKey()
}

func (it Item) normalizedSize() Size {
	if it.Size == "" {
		return SizeMedium
	}
	return it.Size
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
