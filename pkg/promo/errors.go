package promo

import "errors"

var (
	ErrNoPrizes    = errors.New("promo.no_prizes")
	ErrSaveFailed  = errors.New("promo.save_failed")
	ErrNoClientKey = errors.New("promo.no_client_context")
)
