/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package validator checks step submissions against the step's configured
// required fields and field level validation rules.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pixelforge/beacon/internal/onboarding/model"
)

var validate = validator.New()

// ValidateStepData checks a submitted payload against the step configuration.
// Required fields must be present and non-empty; fields with a configured rule
// are checked against it when present. The result collects all failures rather
// than stopping at the first one.
func ValidateStepData(step *model.Step, payload map[string]interface{}) model.ValidationResult {
	var fieldErrors []model.ValidationError

	for _, field := range step.RequiredFields {
		if isEmptyValue(payload[field]) {
			fieldErrors = append(fieldErrors, model.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s is required", field),
			})
		}
	}

	for field, rawRules := range step.ValidationSchema {
		rules, ok := rawRules.(string)
		if !ok || rules == "" {
			continue
		}

		value, present := payload[field]
		if !present || isEmptyValue(value) {
			// Presence is enforced by the required field list above.
			continue
		}

		err, malformed := checkRules(value, rules)
		if malformed {
			fieldErrors = append(fieldErrors, model.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("%s has an invalid validation rule", field),
			})
			continue
		}
		if err != nil {
			var validationErrs validator.ValidationErrors
			if !errors.As(err, &validationErrs) {
				fieldErrors = append(fieldErrors, model.ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%s has an invalid value", field),
				})
				continue
			}
			for _, fieldErr := range validationErrs {
				fieldErrors = append(fieldErrors, model.ValidationError{
					Field:   field,
					Message: messageForTag(field, fieldErr),
				})
			}
		}
	}

	return model.ValidationResult{
		IsValid: len(fieldErrors) == 0,
		Errors:  fieldErrors,
	}
}

// checkRules runs a rule string against a value. The rule strings come from
// externally authored step configuration, and the validator panics on rules
// naming an undefined tag; that panic is reported as a malformed rule instead
// of escaping to the caller.
func checkRules(value interface{}, rules string) (err error, malformed bool) {
	defer func() {
		if r := recover(); r != nil {
			err = nil
			malformed = true
		}
	}()
	return validate.Var(value, rules), false
}

// messageForTag translates a failed validation tag into a user facing message.
func messageForTag(field string, fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param())
	case "numeric":
		return fmt.Sprintf("%s must be numeric", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}

// isEmptyValue reports whether a submitted value counts as absent.
func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}
