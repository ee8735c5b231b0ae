/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeJSON(t *testing.T) {
	serialized, err := SerializeJSON(map[string]interface{}{"company": "Acme"})
	assert.NoError(t, err)
	assert.Equal(t, `{"company":"Acme"}`, serialized)

	serialized, err = SerializeJSON(nil)
	assert.NoError(t, err)
	assert.Empty(t, serialized)
}

func TestParseJSONMap(t *testing.T) {
	parsed, err := ParseJSONMap(`{"company":"Acme","size":3}`)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", parsed["company"])
	assert.Equal(t, float64(3), parsed["size"])

	parsed, err = ParseJSONMap("")
	assert.NoError(t, err)
	assert.NotNil(t, parsed)
	assert.Empty(t, parsed)

	_, err = ParseJSONMap("{invalid")
	assert.Error(t, err)
}

func TestParseJSONStringArray(t *testing.T) {
	parsed, err := ParseJSONStringArray(`["landing_page","web_app"]`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"landing_page", "web_app"}, parsed)

	parsed, err = ParseJSONStringArray("")
	assert.NoError(t, err)
	assert.NotNil(t, parsed)
	assert.Empty(t, parsed)
}

func TestParseJSONArray(t *testing.T) {
	parsed, err := ParseJSONArray(`[{"action":"back"},{"action":"skip"}]`)
	assert.NoError(t, err)
	assert.Len(t, parsed, 2)
	assert.Equal(t, "back", parsed[0]["action"])
}

func TestDeepCopyMap(t *testing.T) {
	src := map[string]interface{}{
		"company": "Acme",
		"contact": map[string]interface{}{"email": "a@acme.test"},
	}

	dst, err := DeepCopyMap(src)
	assert.NoError(t, err)
	assert.Equal(t, "Acme", dst["company"])

	// Mutating the copy must not affect the source.
	dst["contact"].(map[string]interface{})["email"] = "b@acme.test"
	assert.Equal(t, "a@acme.test", src["contact"].(map[string]interface{})["email"])

	dst, err = DeepCopyMap(nil)
	assert.NoError(t, err)
	assert.Nil(t, dst)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString(" abc\n"))
	assert.Equal(t, "abc", SanitizeString("a\rb\nc"))
}

func TestGenerateUUID(t *testing.T) {
	first := GenerateUUID()
	second := GenerateUUID()

	assert.NotEqual(t, first, second)
	assert.True(t, IsValidUUID(first))
	assert.False(t, IsValidUUID("not-a-uuid"))
}
