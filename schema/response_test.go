package schema

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_Err(t *testing.T) {
	var testCases = []struct {
		description string
		payload     string
		expectErr   bool
	}{
		{description: "result with success code", payload: `{"code":1000,"result":{"token":"x"}}`},
		{description: "result without code", payload: `{"result":[1,2]}`},
		{description: "empty envelope", payload: `{}`},
		{description: "result present with failing code", payload: `{"code":1005,"result":"ok"}`},
		{description: "missing result with failing code", payload: `{"code":1005,"message":"user existed"}`, expectErr: true},
		{description: "null result with failing code", payload: `{"code":9999,"result":null}`, expectErr: true},
		{description: "false result with failing code", payload: `{"code":1006,"result":false}`, expectErr: true},
		{description: "zero result with failing code", payload: `{"code":1006,"result":0}`, expectErr: true},
	}

	for _, testCase := range testCases {
		envelope := &Envelope{}
		if !assert.NoError(t, json.Unmarshal([]byte(testCase.payload), envelope), testCase.description) {
			continue
		}
		err := envelope.Err(http.StatusOK)
		if !testCase.expectErr {
			assert.NoError(t, err, testCase.description)
			continue
		}
		assert.Error(t, err, testCase.description)
		assert.Equal(t, http.StatusOK, StatusCode(err), testCase.description)
	}
}

func TestError(t *testing.T) {
	err := NewError(http.StatusUnauthorized, 1006, "unauthenticated")
	assert.True(t, IsUnauthorized(err))
	assert.Contains(t, err.Error(), "unauthenticated")
	assert.False(t, IsUnauthorized(assert.AnError))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestPage_HasNext(t *testing.T) {
	page := &Page[Order]{Page: PageInfo{Number: 0, TotalPages: 2}}
	assert.True(t, page.HasNext())
	page.Page.Number = 1
	assert.False(t, page.HasNext())
}
