package view

import "errors"

var (
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrProductNotLoaded   = errors.New("product not loaded")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAgreementRequired  = errors.New("agreement not accepted")
)
