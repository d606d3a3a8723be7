package models

// CartLine 比對當下的商品資料副本，不是即時參照
type CartLine struct {
	ProductID   uint   `json:"id"`
	Quantity    uint   `json:"quantity"`
	Name        string `json:"name"`
	Price       uint   `json:"price"`
	Stock       uint   `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"imageURL"`
}

func NewCartLine(product Product, quantity uint) CartLine {
	return CartLine{
		ProductID:   product.ID,
		Quantity:    quantity,
		Name:        product.Name,
		Price:       product.Price,
		Stock:       product.Stock,
		Description: product.Description,
		ImageURL:    product.ImageURL,
	}
}
