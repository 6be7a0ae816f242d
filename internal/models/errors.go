package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Ledger errors
var (
	ErrQuotaExceeded          = errors.New("this pickup would exceed the monthly quota")
	ErrQuantityNotPositive    = errors.New("the quantity of a pickup must be a positive number of sacks")
	ErrPickupDateOutsideMonth = errors.New("the pickup date must be within the month the pickup is recorded for")
)

// Constraint errors
var (
	ErrQuotaOutOfRange       = errors.New("the monthly quota must be between 1 and 3 sacks")
	ErrMonthNumberInvalid    = errors.New("the month number must be between 1 and 12")
	ErrMonthNotUnique        = errors.New("a month for this year and month number already exists")
	ErrDivisionNameNotUnique = errors.New("a division with this name already exists")
	ErrDivisionNameEmpty     = errors.New("the division name must not be empty")
	ErrEmailNotUnique        = errors.New("a profile with this email address already exists")
	ErrEmailEmpty            = errors.New("the email address must not be empty")
)
