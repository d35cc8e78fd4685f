package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/domain"
	"github.com/api-sage/ledger-service/internal/logger"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CreateCustomerResponse], error) {
	logger.Info("customer service create customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service create customer validation failed", err, nil)
		return commons.ErrorResponse[models.CreateCustomerResponse]("validation failed", err.Error()), err
	}

	created, err := s.customerRepo.Create(ctx, domain.Customer{
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		logger.Error("customer service create customer repository failed", err, logger.Fields{
			"name": req.Name,
		})
		return commons.ErrorResponse[models.CreateCustomerResponse]("failed to create customer", "Unable to create customer right now"), err
	}

	response := models.CreateCustomerResponse{
		CustomerID: created.ID,
		Name:       created.Name,
		CreatedAt:  created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("customer service create customer success", logger.Fields{
		"customerId": response.CustomerID,
	})

	return commons.SuccessResponse("customer created successfully", response), nil
}
