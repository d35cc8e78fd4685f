package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type CustomerController struct {
	service service_interfaces.CustomerService
}

func NewCustomerController(service service_interfaces.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

// RegisterRoutes keeps customer creation outside the auth middleware: the
// upstream system onboards customers before any credentials exist.
func (c *CustomerController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.Handle("/customers", http.HandlerFunc(c.createCustomer))
}

func (c *CustomerController) createCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CreateCustomerResponse]("method not allowed"))
		return
	}

	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CreateCustomerResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateCustomer(r.Context(), req)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
