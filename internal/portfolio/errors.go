package portfolio

import "errors"

var (
	ErrForbidden           = errors.New("Only the team lead can commit the portfolio")
	ErrTeamNotFound        = errors.New("Team not found")
	ErrAlreadyFinalized    = errors.New("Portfolio has already been committed")
	ErrMarketClosed        = errors.New("Market is not open for bidding")
	ErrInvalidAllocation   = errors.New("Invalid allocation")
	ErrInsufficientBalance = errors.New("Insufficient balance for this allocation")
)
