package models

type TransferRecordView struct {
	RecordID      int64  `json:"recordId"`
	Kind          string `json:"kind"`
	FromAccountID *int64 `json:"fromAccountId,omitempty"`
	ToAccountID   *int64 `json:"toAccountId,omitempty"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	Timestamp     string `json:"timestamp"`
}

type HistoryResponse struct {
	AccountID int64                `json:"accountId"`
	Records   []TransferRecordView `json:"records"`
}

type StatementEntry struct {
	RecordID              int64  `json:"recordId"`
	Kind                  string `json:"kind"`
	Direction             string `json:"direction"`
	CounterpartyAccountID *int64 `json:"counterpartyAccountId,omitempty"`
	Amount                string `json:"amount"`
	RunningBalance        string `json:"runningBalance"`
	Timestamp             string `json:"timestamp"`
}

type StatementResponse struct {
	AccountID int64            `json:"accountId"`
	Balance   string           `json:"balance"`
	Entries   []StatementEntry `json:"entries"`
}
