package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/agency_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperrors.NewValidationError("amount", "must be positive"), http.StatusBadRequest},
		{fmt.Errorf("%w: account x", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: only managers may approve", apperrors.ErrPermissionDenied), http.StatusForbidden},
		{apperrors.ErrLockedPeriod, http.StatusConflict},
		{apperrors.ErrNotPending, http.StatusConflict},
		{apperrors.ErrSameAccount, http.StatusConflict},
		{apperrors.ErrDuplicate, http.StatusConflict},
		{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{apperrors.NewAppError(500, "failed to commit transaction", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
