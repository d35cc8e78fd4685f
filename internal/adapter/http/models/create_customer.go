package models

import (
	"errors"
	"strings"
)

type CreateCustomerRequest struct {
	Name string `json:"name"`
}

func (r CreateCustomerRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > 120 {
		return errors.New("name must be at most 120 characters")
	}
	return nil
}

type CreateCustomerResponse struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	CreatedAt  string `json:"createdAt"`
}
