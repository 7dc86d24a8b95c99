package quote

import "brightline/internal/domain"

type CustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CreateQuoteRequest struct {
	Customer     CustomerInput  `json:"customer"`
	Address      domain.Address `json:"address"`
	ServiceID    *int64         `json:"serviceId"`
	PropertyType string         `json:"propertyType"`
	Description  string         `json:"description"`
	Timeline     string         `json:"timeline"`
	BudgetRange  string         `json:"budgetRange"`
	Attachments  []string       `json:"attachments"`
}

type ItemInput struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type UpdateQuoteRequest struct {
	Status     *string      `json:"status"`
	AdminNotes *string      `json:"adminNotes"`
	Items      *[]ItemInput `json:"items"`
	TaxRate    *float64     `json:"taxRate"`
	ValidUntil *string      `json:"validUntil"`
}

type SendQuoteRequest struct {
	Items           []ItemInput `json:"items"`
	TaxRate         float64     `json:"taxRate"`
	ValidUntil      string      `json:"validUntil"`
	CustomerMessage string      `json:"customerMessage"`
}

type RespondRequest struct {
	Message string `json:"message"`
}

type CounterOfferRequest struct {
	Amount  float64 `json:"amount"`
	Message string  `json:"message"`
}

type Actor struct {
	ID    int64
	Role  string
	Email string
}

func (a Actor) IsAdmin() bool { return domain.IsAdmin(a.Role) }

func toItems(in []ItemInput) []domain.QuoteItem {
	out := make([]domain.QuoteItem, 0, len(in))
	for _, it := range in {
		out = append(out, domain.QuoteItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
