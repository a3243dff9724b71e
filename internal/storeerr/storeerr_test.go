package storeerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/deppfellow/contacts-service/internal/errs"
)

func duplicatePhoneError() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: contacts.contacts index: contacts_phone_key dup key: { phone: "555-0100" }`,
		}},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"no documents", mongo.ErrNoDocuments, NoDocuments},
		{"wrapped no documents", fmt.Errorf("find: %w", mongo.ErrNoDocuments), NoDocuments},
		{"duplicate key", duplicatePhoneError(), DuplicateKey},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"other", errors.New("boom"), Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "contacts", "find"))

	err := Wrap(duplicatePhoneError(), "contacts", "insert")

	var storeErr *Error
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, DuplicateKey, storeErr.Code)
	assert.Equal(t, "contacts_phone_key", storeErr.Index)
	assert.Equal(t, "phone", storeErr.Field)
	assert.Equal(t, DuplicateKey, ErrCode(err))
	assert.True(t, mongo.IsDuplicateKeyError(err))

	// Wrapping twice keeps the first classification.
	assert.Same(t, err, Wrap(err, "other", "update"))
}

func TestErrCode_Unwrapped(t *testing.T) {
	assert.Equal(t, Other, ErrCode(errors.New("x")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(mongo.ErrNoDocuments))
	assert.True(t, IsNotFound(Wrap(mongo.ErrNoDocuments, "contacts", "findOne")))
	assert.False(t, IsNotFound(Wrap(errors.New("boom"), "contacts", "findOne")))
}

func TestIsStoreError(t *testing.T) {
	assert.True(t, IsStoreError(Wrap(errors.New("boom"), "contacts", "find")))
	assert.True(t, IsStoreError(duplicatePhoneError()))
	assert.True(t, IsStoreError(mongo.CommandError{Code: 13, Message: "unauthorized"}))
	assert.False(t, IsStoreError(errors.New("boom")))
	assert.False(t, IsStoreError(fmt.Errorf("recovered: %w", errors.New("nil map"))))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "phone", extractColumnForUniqueViolation("contacts_phone_key"))
	assert.Equal(t, "phone", extractColumnForUniqueViolation("unique_contacts_phone"))
	assert.Equal(t, "phone", extractColumnForUniqueViolation("phone_1"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
	assert.Equal(t, "", extractColumnForUniqueViolation("idx"))
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "CONTACT_ALREADY_EXISTS", generateErrorCode("contacts", DuplicateKey))
	assert.Equal(t, "CONTACT_NOT_FOUND", generateErrorCode("contacts", NoDocuments))
	assert.Equal(t, "CONTACT_STORE_TIMEOUT", generateErrorCode("contacts", Timeout))
	assert.Equal(t, "RECORD_STORE_ERROR", generateErrorCode("", Other))
}

func TestFormatMessage(t *testing.T) {
	dup := Wrap(duplicatePhoneError(), "contacts", "insert").(*Error)
	assert.Equal(t, "A contact with this phone already exists", FormatMessage(dup))

	missing := Wrap(mongo.ErrNoDocuments, "contacts", "findOne").(*Error)
	assert.Equal(t, "Contact not found", FormatMessage(missing))
}

func TestHandleError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, HandleError(nil))
	})

	t.Run("http error passes through", func(t *testing.T) {
		in := errs.NewNotFoundError("Contact not found", nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("no documents", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(Wrap(mongo.ErrNoDocuments, "contacts", "findOne")), &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Contact not found", httpErr.Message)
		assert.Equal(t, "CONTACT_NOT_FOUND", httpErr.Code)
	})

	t.Run("duplicate key is a store error", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(Wrap(duplicatePhoneError(), "contacts", "insert")), &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, errs.KindStore, httpErr.Kind)
		assert.Equal(t, "CONTACT_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
		assert.Empty(t, httpErr.Detail)
	})

	t.Run("raw driver error", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.True(t, errors.As(HandleError(errors.New("socket closed")), &httpErr))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "RECORD_STORE_ERROR", httpErr.Code)
	})
}
