package model

// Category groups services for pricing and reporting.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// DefaultCategories seed the categorias table the first time it is read empty.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Pestañas", Description: "Extensiones y tratamientos de pestañas"},
		{ID: 2, Name: "Cejas", Description: "Diseño, laminado y micropigmentación"},
		{ID: 3, Name: "Uñas", Description: "Manicura y pedicura"},
		{ID: 4, Name: "Otros", Description: "Otros servicios"},
	}
}

// FallbackCategoryID is the category assigned to services auto-created by the
// booking workflow when no active service matches a request.
const FallbackCategoryID int64 = 4
