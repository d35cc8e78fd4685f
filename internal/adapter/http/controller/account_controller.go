package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	createHandler := http.HandlerFunc(c.createAccount)
	balanceHandler := http.HandlerFunc(c.getBalance)
	listHandler := http.HandlerFunc(c.listAccounts)

	if authMiddleware != nil {
		createHandler = authMiddleware(createHandler).ServeHTTP
		balanceHandler = authMiddleware(balanceHandler).ServeHTTP
		listHandler = authMiddleware(listHandler).ServeHTTP
	}

	mux.Handle("/accounts", http.HandlerFunc(createHandler))
	mux.Handle("/accounts/balance", http.HandlerFunc(balanceHandler))
	mux.Handle("/customers/accounts", http.HandlerFunc(listHandler))
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CreateAccountResponse]("method not allowed"))
		return
	}

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CreateAccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateAccount(r.Context(), req)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) getBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BalanceResponse]("method not allowed"))
		return
	}

	accountID, err := queryID(r, "accountId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BalanceResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.GetBalance(r.Context(), accountID)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.ListAccountsResponse]("method not allowed"))
		return
	}

	customerID, err := queryID(r, "customerId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ListAccountsResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.ListAccounts(r.Context(), customerID)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func queryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errParam(name)
	}
	return id, nil
}
