package shared_test

import (
	"testing"
	"time"

	"sabai/shared"
	"sabai/shared/constant"
	"sabai/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "valid true string",
			input:    "true",
			expected: boolPtr(true),
		},
		{
			name:     "valid false string",
			input:    "false",
			expected: boolPtr(false),
		},
		{
			name:     "valid 1 string",
			input:    "1",
			expected: boolPtr(true),
		},
		{
			name:     "valid 0 string",
			input:    "0",
			expected: boolPtr(false),
		},
		{
			name:     "invalid string returns nil",
			input:    "invalid",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{
			name:     "zero total returns 1",
			total:    0,
			limit:    10,
			expected: 1,
		},
		{
			name:     "zero limit returns 1",
			total:    100,
			limit:    0,
			expected: 1,
		},
		{
			name:     "exact division",
			total:    100,
			limit:    10,
			expected: 10,
		},
		{
			name:     "remainder rounds up",
			total:    101,
			limit:    10,
			expected: 11,
		},
		{
			name:     "total smaller than limit",
			total:    3,
			limit:    10,
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updatePayload struct {
		Name     string    `db:"name"`
		Capacity int       `db:"timeslot_capacity"`
		NoTag    string    ``
		OpenAt   time.Time `db:"open_time"`
	}

	payload := updatePayload{
		Name:     "Sabai Massage",
		Capacity: 2,
		NoTag:    "skip",
	}

	fields := shared.TransformFields(payload, "admin@example.com")

	if fields["name"] != "Sabai Massage" {
		t.Errorf("expected name to be transformed, got %v", fields["name"])
	}

	if fields["timeslot_capacity"] != 2 {
		t.Errorf("expected capacity to be transformed, got %v", fields["timeslot_capacity"])
	}

	if _, ok := fields["open_time"]; ok {
		t.Error("expected zero time to be skipped")
	}

	if fields[constant.FieldModifiedBy] != "admin@example.com" {
		t.Errorf("expected modified_by to be set, got %v", fields[constant.FieldModifiedBy])
	}

	if _, ok := fields[constant.FieldModifiedAt]; !ok {
		t.Error("expected modified_at to be set")
	}
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("abc-123", "id", "shops")

	where, args := group.GetWhereClause()
	if where != "(shops.id = :id)" {
		t.Errorf("unexpected where clause: %s", where)
	}

	if args["id"] != "abc-123" {
		t.Errorf("expected id arg, got %v", args["id"])
	}
}

func TestBuildCacheKey(t *testing.T) {
	key := shared.BuildCacheKey("shop:get", "abc-123")
	if key != "shop:get:abc-123" {
		t.Errorf("unexpected cache key: %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 25}
	filter := shared.FilterByID("abc-123", "id", "shops")

	key1 := shared.BuildCacheKeyWithQuery("shop:get_all", params, filter)
	key2 := shared.BuildCacheKeyWithQuery("shop:get_all", params, filter)

	if key1 != key2 {
		t.Errorf("expected deterministic cache keys, got %s and %s", key1, key2)
	}

	params.Page = 2

	key3 := shared.BuildCacheKeyWithQuery("shop:get_all", params, filter)
	if key1 == key3 {
		t.Error("expected different cache keys for different pages")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
