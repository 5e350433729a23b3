package marketplace

const maxImages = 8

type ListItemRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"max=100"`
	Condition   string   `json:"condition" validate:"max=50"`
	Images      []string `json:"images"`
}

type UploadImagesRequest struct {
	Images []string `json:"images" validate:"required,min=1"`
}

type UploadImagesResponse struct {
	URLs []string `json:"urls"`
}
