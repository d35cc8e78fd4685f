package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger-service/internal/adapter/http/models"
	"github.com/api-sage/ledger-service/internal/commons"
	"github.com/api-sage/ledger-service/internal/usecase/service_interfaces"
)

type StatementController struct {
	service service_interfaces.StatementService
}

func NewStatementController(service service_interfaces.StatementService) *StatementController {
	return &StatementController{service: service}
}

func (c *StatementController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	historyHandler := http.HandlerFunc(c.getHistory)
	statementHandler := http.HandlerFunc(c.getStatement)

	if authMiddleware != nil {
		historyHandler = authMiddleware(historyHandler).ServeHTTP
		statementHandler = authMiddleware(statementHandler).ServeHTTP
	}

	mux.Handle("/accounts/history", http.HandlerFunc(historyHandler))
	mux.Handle("/accounts/statement", http.HandlerFunc(statementHandler))
}

func (c *StatementController) getHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.HistoryResponse]("method not allowed"))
		return
	}

	accountID, err := queryID(r, "accountId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.HistoryResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.GetHistory(r.Context(), accountID)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *StatementController) getStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.StatementResponse]("method not allowed"))
		return
	}

	accountID, err := queryID(r, "accountId")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error()))
		return
	}

	response, err := c.service.GetStatement(r.Context(), accountID)
	if err != nil {
		status := statusFor(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
