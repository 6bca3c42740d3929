package model

// IconType discriminates how a product's display icon is referenced.
// Resolution to an actual asset happens at the presentation boundary;
// the domain only carries the reference.
type IconType string

const (
	IconPreset   IconType = "preset"
	IconUploaded IconType = "uploaded"
)

// IconRef is a tagged reference to a product's display icon: either the
// name of a preset icon or the path of an uploaded image.
type IconRef struct {
	Type      IconType `json:"type"`
	Preset    string   `json:"preset,omitempty"`
	ImagePath string   `json:"imagePath,omitempty"`
}

// Product is an item on the menu. Reference data, immutable within a session.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Icon     IconRef `json:"icon"`
}

// Category groups products on the menu. Reference data.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
