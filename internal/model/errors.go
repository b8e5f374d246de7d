package model

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrRateLimited         = errors.New("click rate limited")
	ErrMaxTierReached      = errors.New("upgrade already at max tier")
	ErrUnknownProducer     = errors.New("unknown producer")
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNoSave              = errors.New("no save found")
	ErrCorruptSave         = errors.New("corrupt save")
	ErrImplausibleProgress = errors.New("implausible progress")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
