package services

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Santiago26009/blog-challenge/domain"
)

var (
	errRequired = validation.NewError("required", "This field is required.")
	errBlank    = validation.NewError("blank", "This field may not be blank.")
	errEmail    = validation.NewError("invalid", "Enter a valid email address.")
)

// present fails when the field was absent (or null) in the payload.
func present() validation.Rule {
	return validation.NotNil.ErrorObject(errRequired)
}

// presentIf is present() for full writes and a no-op for partial ones.
func presentIf(required bool) validation.Rule {
	return validation.When(required, present())
}

// notBlank fails on empty strings; absent fields pass.
var notBlank = validation.By(func(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if s, ok := v.(string); ok && s == "" {
		return errBlank
	}
	return nil
})

func maxLength(n int) validation.Rule {
	return validation.RuneLength(0, n).ErrorObject(
		validation.NewError("max_length", fmt.Sprintf("Ensure this field has no more than %d characters.", n)))
}

func minLength(n int) validation.Rule {
	return validation.RuneLength(n, 0).ErrorObject(
		validation.NewError("min_length", fmt.Sprintf("Ensure this field has at least %d characters.", n)))
}

func emailFormat() validation.Rule {
	return is.EmailFormat.ErrorObject(errEmail)
}

// fieldErrors converts ozzo's per-field errors into one validation *domain.Error.
// Fields named in order come first, in that order; the rest follow sorted.
func fieldErrors(err error, order ...string) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	out := &domain.Error{Kind: domain.KindValidation}
	for _, key := range orderedKeys(errs, order) {
		appendFieldError(out, key, errs[key])
	}
	return out
}

func appendFieldError(out *domain.Error, attr string, err error) {
	var nested validation.Errors
	if errors.As(err, &nested) {
		for _, key := range orderedKeys(nested, nil) {
			appendFieldError(out, attr+"."+key, nested[key])
		}
		return
	}
	code := "invalid"
	var ve validation.Error
	if errors.As(err, &ve) {
		code = ve.Code()
	}
	a := attr
	out.Fields = append(out.Fields, domain.FieldError{Code: code, Detail: err.Error(), Attr: &a})
}

func orderedKeys(errs validation.Errors, order []string) []string {
	keys := make([]string, 0, len(errs))
	seen := make(map[string]bool, len(errs))
	for _, k := range order {
		if errs[k] != nil {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k, e := range errs {
		if e != nil && !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
