package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"movie-bot/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	saigon := time.FixedZone("ICT", 7*60*60)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc", time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC), `"2024-05-01 15:30:00"`},
		{"converted to utc", time.Date(2024, 5, 1, 22, 30, 0, 0, saigon), `"2024-05-01 15:30:00"`},
		{"zero", time.Time{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(response.DateTime(tt.in))
			if err != nil {
				t.Fatalf("unexpected error marshaling DateTime: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}
