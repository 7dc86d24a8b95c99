package services

type CreateServiceRequest struct {
	Name              string   `json:"name"`
	ShortDescription  string   `json:"shortDescription"`
	Description       string   `json:"description"`
	Category          string   `json:"category"`
	Icon              string   `json:"icon"`
	Image             string   `json:"image"`
	Features          []string `json:"features"`
	PriceType         string   `json:"priceType"`
	BasePrice         float64  `json:"basePrice"`
	EstimatedDuration string   `json:"estimatedDuration"`
	IsActive          *bool    `json:"isActive"`
	IsFeatured        bool     `json:"isFeatured"`
	SortOrder         int      `json:"sortOrder"`
}

type UpdateServiceRequest struct {
	Name              *string   `json:"name"`
	ShortDescription  *string   `json:"shortDescription"`
	Description       *string   `json:"description"`
	Category          *string   `json:"category"`
	Icon              *string   `json:"icon"`
	Image             *string   `json:"image"`
	Features          *[]string `json:"features"`
	PriceType         *string   `json:"priceType"`
	BasePrice         *float64  `json:"basePrice"`
	EstimatedDuration *string   `json:"estimatedDuration"`
	IsActive          *bool     `json:"isActive"`
	IsFeatured        *bool     `json:"isFeatured"`
	SortOrder         *int      `json:"sortOrder"`
}
