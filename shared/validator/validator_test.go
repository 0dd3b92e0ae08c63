package validator_test

import (
	"strings"
	"testing"

	"sabai/shared/validator"
)

type reservationPayload struct {
	ReservationDate string `validate:"required,datetime=2006-01-02T15:04:05Z07:00" json:"reservationDate"`
	ShopID          string `validate:"required,uuid"                               json:"shopId"`
	Status          string `validate:"omitempty,oneof=confirmed waitlisted"        json:"status"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *reservationPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: &reservationPayload{
				ReservationDate: "2026-09-01T10:00:00Z",
				ShopID:          "0b9171b5-0dce-4b78-a4ef-3f31a3353a6b",
				Status:          "confirmed",
			},
			expectError: false,
		},
		{
			name: "missing reservation date",
			data: &reservationPayload{
				ShopID: "0b9171b5-0dce-4b78-a4ef-3f31a3353a6b",
			},
			expectError: true,
		},
		{
			name: "malformed date",
			data: &reservationPayload{
				ReservationDate: "2026-09-01 10:00",
				ShopID:          "0b9171b5-0dce-4b78-a4ef-3f31a3353a6b",
			},
			expectError: true,
		},
		{
			name: "invalid status",
			data: &reservationPayload{
				ReservationDate: "2026-09-01T10:00:00Z",
				ShopID:          "0b9171b5-0dce-4b78-a4ef-3f31a3353a6b",
				Status:          "pending",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		body := strings.NewReader(`{"reservationDate":"2026-09-01T10:00:00Z","shopId":"0b9171b5-0dce-4b78-a4ef-3f31a3353a6b"}`)

		var payload reservationPayload
		if err := validator.Validate(body, &payload); err != nil {
			t.Errorf("expected no error, got: %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		body := strings.NewReader(`{"reservationDate":`)

		var payload reservationPayload
		if err := validator.Validate(body, &payload); err == nil {
			t.Error("expected decode error, got nil")
		}
	})
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "massage",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid slot duration",
			field:       60,
			tag:         "oneof=30 60 90 120",
			expectError: false,
		},
		{
			name:        "invalid slot duration",
			field:       45,
			tag:         "oneof=30 60 90 120",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
