package core

import "time"

// CustomerData is the record extracted from one transcript. Empty fields were not found.
type CustomerData struct {
	Name                string `json:"name,omitempty"`
	Location            string `json:"location,omitempty"`
	Email               string `json:"email,omitempty"`
	WhatsApp            string `json:"whatsapp,omitempty"`
	BusinessRequirement string `json:"business_requirement,omitempty"`
	SuggestedProduct    string `json:"suggested_product,omitempty"`
	FlyerPreference     string `json:"flyer_preference,omitempty"`
}

func (c CustomerData) IsEmpty() bool {
	return c == CustomerData{}
}

type StoredCustomer struct {
	ID int64 `json:"id"`
	CustomerData
	CreatedAt time.Time `json:"created_at"`
}

const FlyerPreferenceEmail = "email"
