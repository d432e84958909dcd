package middleware

import (
	"testing"

	"github.com/playtube/playtube-go/internal/apperr"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		UserName string `validate:"required,min=3"`
		Email    string `validate:"required,email"`
	}

	tests := []struct {
		name    string
		input   form
		wantErr bool
	}{
		{"valid", form{UserName: "maya", Email: "maya@example.com"}, false},
		{"missing userName", form{Email: "maya@example.com"}, true},
		{"userName too short", form{UserName: "ab", Email: "maya@example.com"}, true},
		{"bad email", form{UserName: "maya", Email: "not-an-email"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantErr && err == nil {
				t.Fatal("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if err != nil && apperr.KindOf(err) != apperr.KindValidation {
				t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/videos/0c7f8f6e-3f0a-4f4b-9a1e-111111111111", "/api/v1/videos/:id"},
		{"/api/v1/users/channel/maya", "/api/v1/users/channel/:userName"},
		{"/api/v1/videos", "/api/v1/videos"},
		{"/healthz", "/healthz"},
	}

	for _, tt := range tests {
		if got := sanitizePath(tt.path); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
