package product

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"nama"`
	Category    string `json:"kategori"`
	PricePerKg  int    `json:"harga_per_kg"`
	SeasonLabel string `json:"label_musim"`
	Size        string `json:"ukuran"`
	Texture     string `json:"tekstur"`
	ImagePath   string `json:"image_path,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Recommendation is a recipe suggested on a product's detail page.
type Recommendation struct {
	ID        uint   `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"nama"`
	Estimate  string `json:"estimasi"`
}

type ListFilter struct {
	Category string
	Search   string
}

// Input carries the editable product fields from the admin form.
type Input struct {
	Name        string
	Category    string
	PricePerKg  int
	Size        string
	Texture     string
	SeasonLabel string
}
