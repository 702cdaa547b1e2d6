package catalog

type CreateProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price" validate:"required"`
	Stock int64  `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *string `json:"price,omitempty"`
	Stock *int64  `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

type ProductResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Price  string `json:"price"`
	Stock  int64  `json:"stock"`
	Active bool   `json:"active"`
}

type ImportResultResponse struct {
	Inserted int `json:"inserted"`
}
