package annotate

// Badge is the display form of a reference next to its matched span: a
// label (the reference number) plus an icon identifier chosen from the
// reference type. Mapping an icon identifier to an actual glyph or image
// is the renderer's concern.
type Badge struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// IconSet maps reference types to stable icon identifiers. Unknown types
// fall back to DefaultIcon.
type IconSet map[string]string

// DefaultIcon is the icon identifier for reference types without a
// dedicated icon.
const DefaultIcon = "tag"

// DefaultIcons returns the built-in type-to-icon table.
func DefaultIcons() IconSet {
	return IconSet{
		"table":      "table",
		"column":     "columns",
		"expression": "function",
		"filter":     "filter",
		"metric":     "chart",
		"view":       "eye",
	}
}

// Icon returns the icon identifier for a reference type.
func (s IconSet) Icon(refType string) string {
	if icon, ok := s[refType]; ok && icon != "" {
		return icon
	}
	return DefaultIcon
}

// Badge builds the display badge for a reference.
func (s IconSet) Badge(ref Reference) Badge {
	return Badge{
		Label: ref.Num,
		Icon:  s.Icon(ref.Type),
	}
}

// Icon returns the icon identifier for a reference type using the built-in
// icon table.
func Icon(refType string) string {
	return DefaultIcons().Icon(refType)
}
