package s3_test

import (
	"context"
	"salon/config"
	"salon/infras/otel/mocks"
	"salon/infras/s3"
	"salon/shared/failure"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		url    string
		want   string
	}{
		{name: "own object", domain: "https://cdn.salon.test", url: "https://cdn.salon.test/staff/a/b.png", want: "staff/a/b.png"},
		{name: "trailing slash domain", domain: "https://cdn.salon.test/", url: "https://cdn.salon.test/staff/a.png", want: "staff/a.png"},
		{name: "foreign url", domain: "https://cdn.salon.test", url: "https://example.com/a.png", want: ""},
		{name: "no domain configured", domain: "", url: "https://cdn.salon.test/a.png", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectKeyFromURL(tt.domain, tt.url))
		})
	}

	assert.Equal(t, "https://cdn.salon.test/staff/a.png", s3.PublicURL("https://cdn.salon.test/", "staff/a.png"))
}

func TestNew_Disabled(t *testing.T) {
	cfg := &config.Config{}

	storage := s3.New(cfg, mocks.NewOtel())

	_, err := storage.Upload(context.Background(), "staff", "a.png", "image/png", strings.NewReader("x"), 1)
	assert.Equal(t, failure.ReasonUnimplemented, failure.GetReason(err))
	assert.NoError(t, storage.Delete(context.Background(), "https://cdn.salon.test/a.png"))
	assert.Empty(t, storage.ObjectKey("https://cdn.salon.test/a.png"))
}
