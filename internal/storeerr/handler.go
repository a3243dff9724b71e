package storeerr

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/contacts-service/internal/errs"
)

var indexNameRegex = regexp.MustCompile(`index: (\S+)`)

// uniqueKeyRegex matches "<collection>_<field>_key" / "_ukey" index names.
var uniqueKeyRegex = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// Classify maps a raw driver error to a Code.
func Classify(err error) Code {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return NoDocuments
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case mongo.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case mongo.IsNetworkError(err):
		return Network
	default:
		return Other
	}
}

// IsStoreError reports whether err came from the document store, either
// classified by Wrap or straight from the driver.
func IsStoreError(err error) bool {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return true
	}

	if Classify(err) != Other {
		return true
	}

	var serverErr mongo.ServerError
	return errors.As(err, &serverErr)
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return ErrCode(err) == NoDocuments || errors.Is(err, mongo.ErrNoDocuments)
}

// generateErrorCode creates consistent application error codes.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	contacts + DuplicateKey => CONTACT_ALREADY_EXISTS
func generateErrorCode(collection string, code Code) string {
	if collection == "" {
		collection = "RECORD"
	}

	domain := strings.ToUpper(collection)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "STORE_ERROR"
	switch code {
	case NoDocuments:
		action = "NOT_FOUND"
	case DuplicateKey:
		action = "ALREADY_EXISTS"
	case Timeout:
		action = "STORE_TIMEOUT"
	case Network:
		action = "STORE_UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// FormatMessage produces a human readable description of e for logs.
func FormatMessage(e *Error) string {
	entityName := getEntityName(e.Collection)

	switch e.Code {
	case NoDocuments:
		return fmt.Sprintf("%s not found", entityName)
	case DuplicateKey:
		field := humanizeText(e.Field)
		if field == "" {
			field = "Identifier"
		}
		return fmt.Sprintf("A %s with this %s already exists", strings.ToLower(entityName), strings.ToLower(field))
	case Timeout:
		return "The document store did not answer in time"
	case Network:
		return "The document store is unreachable"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName singularizes collection, e.g. "contacts" -> "Contact".
func getEntityName(collection string) string {
	if collection == "" {
		return "Record"
	}

	entity := collection
	if strings.HasSuffix(entity, "s") && len(entity) > 1 {
		entity = entity[:len(entity)-1]
	}
	return humanizeText(entity)
}

// humanizeText converts snake_case into Title Case.
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractIndexName pulls the index name out of an E11000 message.
func extractIndexName(message string) string {
	matches := indexNameRegex.FindStringSubmatch(message)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// extractColumnForUniqueViolation infers the field from a unique index name.
//
// It supports two conventions:
//
//  1. "unique_<collection>_<field>"
//  2. "<collection>_<field>_(key|ukey)"
//
// and falls back to Mongo's default "<field>_1" naming.
func extractColumnForUniqueViolation(indexName string) string {
	if indexName == "" {
		return ""
	}

	if strings.HasPrefix(indexName, "unique_") {
		parts := strings.Split(indexName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyRegex.FindStringSubmatch(indexName); len(matches) > 1 {
		return matches[1]
	}

	if field, ok := strings.CutSuffix(indexName, "_1"); ok {
		return field
	}

	return ""
}

// HandleError converts a store error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - no documents: errs.NewNotFoundError("<Entity> not found")
//   - anything else: errs.NewStoreError, a 500 with the cause attached
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var storeErr *Error
	if !errors.As(err, &storeErr) {
		storeErr = Wrap(err, "", "").(*Error)
	}

	code := generateErrorCode(storeErr.Collection, storeErr.Code)

	if storeErr.Code == NoDocuments {
		return errs.NewNotFoundError(FormatMessage(storeErr), &code).WithCause(err)
	}

	return errs.NewStoreError(code, err)
}
