package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("Amount must be positive with at most two decimal places")
var ErrSelfTransfer = errors.New("Debit and credit accounts cannot be the same")
var ErrConflict = errors.New("Storage conflict, operation may be retried")
