package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	transferHandler := http.HandlerFunc(c.transfer)
	depositHandler := http.HandlerFunc(c.deposit)
	withdrawHandler := http.HandlerFunc(c.withdraw)

	if authMiddleware != nil {
		transferHandler = authMiddleware(transferHandler).ServeHTTP
		depositHandler = authMiddleware(depositHandler).ServeHTTP
		withdrawHandler = authMiddleware(withdrawHandler).ServeHTTP
	}

	mux.Handle("/transfer-funds", http.HandlerFunc(transferHandler))
	mux.Handle("/deposit-funds", http.HandlerFunc(depositHandler))
	mux.Handle("/withdraw-funds", http.HandlerFunc(withdrawHandler))
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransferResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.TransferFunds(r.Context(), req)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.DepositFundsResponse]("method not allowed"))
		return
	}

	var req models.DepositFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.DepositFundsResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.DepositFunds(r.Context(), req)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransferController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.WithdrawFundsResponse]("method not allowed"))
		return
	}

	var req models.WithdrawFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.WithdrawFundsResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.WithdrawFunds(r.Context(), req)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
