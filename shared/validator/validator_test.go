package validator_test

import (
	"strings"
	"testing"
	"trs/shared/failure"
	"trs/shared/validator"

	"github.com/stretchr/testify/assert"
)

type reserveBody struct {
	FullName    string `json:"full_name"    validate:"required,personname"`
	Email       string `json:"email"        validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"required,digitsonly"`
}

func TestValidate_DecodesAndValidates(t *testing.T) {
	body := `{"full_name":"John Doe","email":"john@example.com","phone_number":"1234567890"}`

	req := reserveBody{}
	err := validator.Validate(strings.NewReader(body), &req)

	assert.NoError(t, err)
	assert.Equal(t, "John Doe", req.FullName)
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	req := reserveBody{}
	err := validator.Validate(strings.NewReader("{not json"), &req)

	assert.Error(t, err)

	var fail *failure.Failure
	assert.ErrorAs(t, err, &fail)
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     reserveBody
		wantErr string
	}{
		{
			name: "valid request",
			req:  reserveBody{FullName: "John Doe", Email: "john@example.com", PhoneNumber: "1234567890"},
		},
		{
			name:    "name with digits",
			req:     reserveBody{FullName: "John Doe123", PhoneNumber: "1234567890"},
			wantErr: "letters and spaces",
		},
		{
			name:    "phone with letter",
			req:     reserveBody{FullName: "John Doe", PhoneNumber: "1234567890a"},
			wantErr: "digits",
		},
		{
			name:    "bad email",
			req:     reserveBody{FullName: "John Doe", Email: "johnexample.com", PhoneNumber: "1234567890"},
			wantErr: "valid email",
		},
		{
			name: "empty email is accepted",
			req:  reserveBody{FullName: "John Doe", PhoneNumber: "1234567890"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("john@example.com", "email"))
	assert.Error(t, validator.ValidateVar("johnexample.com", "email"))
	assert.NoError(t, validator.ValidateVar("", "omitempty,email"))
}
