package models

import "time"

type MenuItem struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	PriceINR        float64   `json:"price_inr"`
	PriceUSD        float64   `json:"price_usd"`
	IsAvailable     bool      `json:"is_available"`
	ImageURL        string    `json:"image_url"`
	NutritionalInfo string    `json:"nutritional_info"`
	Vitamins        string    `json:"vitamins"`
	BranchID        uint      `json:"branch_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Price returns the price in the given currency ("INR" or "USD").
func (m MenuItem) Price(currency string) float64 {
	if currency == "USD" {
		return m.PriceUSD
	}
	return m.PriceINR
}
