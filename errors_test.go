package session_test

import (
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{
			"connectivity error",
			session.ErrConnectivity,
			session.IsConnectivityError,
			true,
		},
		{
			"wrapped connectivity error",
			goerrors.Wrap(session.ErrConnectivity, goerrors.CategoryOperation, "request failed"),
			session.IsConnectivityError,
			true,
		},
		{
			"invalid credentials",
			session.ErrInvalidCredentials,
			session.IsInvalidCredentialsError,
			true,
		},
		{
			"session expired",
			session.ErrSessionExpired,
			session.IsSessionExpiredError,
			true,
		},
		{
			"plain error matches nothing",
			errors.New("boom"),
			session.IsConnectivityError,
			false,
		},
		{
			"nil error matches nothing",
			nil,
			session.IsSessionExpiredError,
			false,
		},
		{
			"category mismatch",
			session.ErrInvalidCredentials,
			session.IsSessionExpiredError,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.predicate(tt.err))
		})
	}
}

func TestErrorCategories(t *testing.T) {
	var catErr *goerrors.Error

	assert.True(t, errors.As(session.ErrInvalidCredentials, &catErr))
	assert.Equal(t, goerrors.CategoryAuth, catErr.Category)

	assert.True(t, errors.As(session.ErrConnectivity, &catErr))
	assert.Equal(t, goerrors.CategoryOperation, catErr.Category)

	assert.True(t, errors.As(session.ErrSessionExpired, &catErr))
	assert.Equal(t, goerrors.CategoryAuth, catErr.Category)
}
