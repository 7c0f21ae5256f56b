package enums

import "fmt"

// CustomizationFieldType distinguishes uploaded files from free text customizations.
type CustomizationFieldType string

const (
	CustomizationFieldTypeFile CustomizationFieldType = "file"
	CustomizationFieldTypeText CustomizationFieldType = "text"
)

var validCustomizationFieldTypes = []CustomizationFieldType{
	CustomizationFieldTypeFile,
	CustomizationFieldTypeText,
}

// String implements fmt.Stringer.
func (c CustomizationFieldType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomizationFieldType.
func (c CustomizationFieldType) IsValid() bool {
	for _, candidate := range validCustomizationFieldTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomizationFieldType converts raw input into a CustomizationFieldType.
func ParseCustomizationFieldType(value string) (CustomizationFieldType, error) {
	for _, candidate := range validCustomizationFieldTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customization field type %q", value)
}
