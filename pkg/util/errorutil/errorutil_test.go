package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type wrappedClassified struct {
	inner *DomainError
}

func (w wrappedClassified) Error() string             { return "wrapped: " + w.inner.Error() }
func (w wrappedClassified) DomainError() *DomainError { return w.inner }

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainError_ClonesDomainError(t *testing.T) {
	original := NewValidation("invalid-uuid", "Invalid UUID").WithArgs(map[string]string{"id": "x"})

	converted := ToDomainError(fmt.Errorf("parse path: %w", original))

	require.NotNil(t, converted)
	assert.NotSame(t, original, converted)
	assert.Equal(t, KindValidation, converted.Kind)
	assert.Equal(t, "invalid-uuid", converted.Code)
	assert.Equal(t, map[string]string{"id": "x"}, converted.Args)

	converted.Args["id"] = "mutated"
	assert.Equal(t, "x", original.Args["id"])
}

func TestToDomainError_UsesClassifiedCapability(t *testing.T) {
	inner := NewUnauthorized("unauthorized", "nope")

	converted := ToDomainError(wrappedClassified{inner: inner})

	assert.Equal(t, KindUnauthorized, converted.Kind)
	assert.Equal(t, "unauthorized", converted.Code)
}

func TestToDomainError_WrapsOpaqueAsInternal(t *testing.T) {
	opaque := errors.New("boom")

	converted := ToDomainError(opaque)

	assert.Equal(t, KindInternal, converted.Kind)
	assert.Equal(t, InternalErrorCode, converted.Code)
	assert.ErrorIs(t, converted, opaque)
}

func TestWithHelpersDoNotMutateReceiver(t *testing.T) {
	base := NewNotFound("user-not-found", "user not found")
	cause := errors.New("no rows")

	withCause := base.WithCause(cause)
	withArgs := base.WithArgs(map[string]string{"id": "1"})

	assert.Nil(t, base.Err)
	assert.Nil(t, base.Args)
	assert.Same(t, cause, withCause.Err)
	assert.Equal(t, "1", withArgs.Args["id"])
}

func TestNew_EmptyCodeFallsBackToInternal(t *testing.T) {
	assert.Equal(t, InternalErrorCode, New(KindServiceFailure, "", "x").Code)
}

func TestIs_MatchesKindAndCode(t *testing.T) {
	err := fmt.Errorf("ctx: %w", NewValidation("invalid-email", "Invalid email address"))

	assert.ErrorIs(t, err, NewValidation("invalid-email", "other text"))
	assert.NotErrorIs(t, err, NewIllegalArgument("invalid-email", ""))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:            http.StatusNotFound,
		KindInternal:            http.StatusInternalServerError,
		KindIllegalArgument:     http.StatusBadRequest,
		KindUnauthorized:        http.StatusUnauthorized,
		KindUnprocessableEntity: http.StatusUnprocessableEntity,
		KindStorageFailure:      http.StatusInternalServerError,
		KindValidation:          http.StatusBadRequest,
		KindServiceFailure:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, status, HTTPStatus(kind))
		})
	}
}

// Property test: conversion is total and preserves classified errors.
func TestProperty_ToDomainError_Total(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		kind := rapid.SampledFrom([]Kind{
			KindNotFound, KindInternal, KindIllegalArgument, KindUnauthorized,
			KindUnprocessableEntity, KindStorageFailure, KindValidation, KindServiceFailure,
		}).Draw(t, "kind")
		code := rapid.StringMatching(`[a-z]{1,10}(-[a-z]{1,10})?`).Draw(t, "code")
		depth := rapid.IntRange(0, 4).Draw(t, "depth")
		classified := rapid.Bool().Draw(t, "classified")

		var err error = errors.New(code)
		if classified {
			err = New(kind, code, "message")
		}
		for i := 0; i < depth; i++ {
			err = fmt.Errorf("layer %d: %w", i, err)
		}

		converted := ToDomainError(err)
		if converted == nil {
			t.Fatal("conversion returned nil for non-nil error")
		}
		if classified && (converted.Kind != kind || converted.Code != code) {
			t.Fatalf("got %s/%s, want %s/%s", converted.Kind, converted.Code, kind, code)
		}
		if !classified && converted.Kind != KindInternal {
			t.Fatalf("opaque error converted to %s", converted.Kind)
		}
	})
}
