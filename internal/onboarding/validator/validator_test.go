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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/pixelforge/beacon/internal/onboarding/model"
)

type StepValidatorTestSuite struct {
	suite.Suite
	step *model.Step
}

func TestStepValidatorSuite(t *testing.T) {
	suite.Run(t, new(StepValidatorTestSuite))
}

func (suite *StepValidatorTestSuite) SetupTest() {
	suite.step = &model.Step{
		RequiredFields: []string{"name", "email"},
		OptionalFields: []string{"company", "phone"},
		ValidationSchema: map[string]interface{}{
			"name":  "required,min=2,max=200",
			"email": "required,email",
			"phone": "omitempty,min=7,max=20",
		},
	}
}

func (suite *StepValidatorTestSuite) TestValidPayload() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})

	assert.True(suite.T(), result.IsValid)
	assert.Empty(suite.T(), result.Errors)
}

func (suite *StepValidatorTestSuite) TestMissingRequiredFields() {
	result := ValidateStepData(suite.step, map[string]interface{}{})

	assert.False(suite.T(), result.IsValid)
	assert.Len(suite.T(), result.Errors, 2)

	fields := []string{result.Errors[0].Field, result.Errors[1].Field}
	assert.Contains(suite.T(), fields, "name")
	assert.Contains(suite.T(), fields, "email")
}

func (suite *StepValidatorTestSuite) TestBlankStringCountsAsMissing() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "   ",
		"email": "ada@example.com",
	})

	assert.False(suite.T(), result.IsValid)
	assert.Equal(suite.T(), "name", result.Errors[0].Field)
	assert.Equal(suite.T(), "name is required", result.Errors[0].Message)
}

func (suite *StepValidatorTestSuite) TestInvalidEmail() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "not-an-email",
	})

	assert.False(suite.T(), result.IsValid)
	assert.Len(suite.T(), result.Errors, 1)
	assert.Equal(suite.T(), "email", result.Errors[0].Field)
	assert.Equal(suite.T(), "email must be a valid email address", result.Errors[0].Message)
}

func (suite *StepValidatorTestSuite) TestMinLengthViolation() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "A",
		"email": "ada@example.com",
	})

	assert.False(suite.T(), result.IsValid)
	assert.Equal(suite.T(), "name must be at least 2 characters", result.Errors[0].Message)
}

func (suite *StepValidatorTestSuite) TestOptionalFieldValidatedWhenPresent() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"phone": "123",
	})

	assert.False(suite.T(), result.IsValid)
	assert.Equal(suite.T(), "phone", result.Errors[0].Field)
}

func (suite *StepValidatorTestSuite) TestOptionalFieldAbsentIsValid() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
	})

	assert.True(suite.T(), result.IsValid)
}

func (suite *StepValidatorTestSuite) TestMultipleFailuresCollected() {
	result := ValidateStepData(suite.step, map[string]interface{}{
		"name":  "A",
		"email": "nope",
		"phone": "1",
	})

	assert.False(suite.T(), result.IsValid)
	assert.Len(suite.T(), result.Errors, 3)
}

func (suite *StepValidatorTestSuite) TestMalformedRuleReportedNotPanicked() {
	step := &model.Step{
		ValidationSchema: map[string]interface{}{
			// Misspelled tag in externally authored configuration.
			"email": "required,emial",
		},
	}

	var result model.ValidationResult
	assert.NotPanics(suite.T(), func() {
		result = ValidateStepData(step, map[string]interface{}{
			"email": "ada@example.com",
		})
	})

	assert.False(suite.T(), result.IsValid)
	suite.Require().Len(result.Errors, 1)
	assert.Equal(suite.T(), "email", result.Errors[0].Field)
	assert.Equal(suite.T(), "email has an invalid validation rule", result.Errors[0].Message)
}

func (suite *StepValidatorTestSuite) TestStepWithoutRules() {
	step := &model.Step{}
	result := ValidateStepData(step, map[string]interface{}{"anything": "goes"})

	assert.True(suite.T(), result.IsValid)
}
