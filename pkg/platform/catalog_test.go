package platform

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalogPlatforms(t *testing.T) {
	got := Default().Platforms()
	want := []string{Facebook, Instagram, LinkedIn, Twitter}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("platforms mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	catalog := Default()
	cases := []struct {
		name     string
		platform string
		template string
		want     error
	}{
		{name: "known", platform: Instagram, template: "post"},
		{name: "uncatalogued template", platform: Instagram, template: "breaking-news"},
		{name: "unknown platform", platform: "myspace", template: "post", want: ErrInvalidPlatform},
		{name: "empty platform", platform: "", template: "post", want: ErrInvalidPlatform},
		{name: "path traversal", platform: Twitter, template: "../secret", want: ErrInvalidTemplateName},
		{name: "upper case", platform: Twitter, template: "Post", want: ErrInvalidTemplateName},
		{name: "empty template", platform: Twitter, template: "", want: ErrInvalidTemplateName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := catalog.Validate(tc.platform, tc.template)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Platform != tc.platform || verr.Template != tc.template {
				t.Fatalf("error carries %q/%q", verr.Platform, verr.Template)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	catalog := Default()
	if got := catalog.Dimensions(Instagram, "story"); got != (Size{Width: 1080, Height: 1920}) {
		t.Fatalf("story size = %+v", got)
	}
	if got := catalog.Dimensions(Twitter, "nothing"); got != DefaultSize {
		t.Fatalf("fallback size = %+v", got)
	}
	described := catalog.Describe(Twitter, "nothing")
	if described.Width != DefaultSize.Width || described.DisplayName != "twitter nothing" {
		t.Fatalf("Describe = %+v", described)
	}
}

func TestRegisterRejectsBadConfig(t *testing.T) {
	catalog := NewCatalog()
	if err := catalog.Register(Config{Platform: "mastodon", Template: "post", Width: 0, Height: 10}); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if err := catalog.Register(Config{Platform: "mastodon", Template: "Bad Name", Width: 10, Height: 10}); !errors.Is(err, ErrInvalidTemplateName) {
		t.Fatalf("expected template name error, got %v", err)
	}
	if err := catalog.Register(Config{Platform: "mastodon", Template: "post", Width: 1200, Height: 630}); err != nil {
		t.Fatalf("register: %v", err)
	}
	cfg, ok := catalog.Lookup("mastodon", "post")
	if !ok || cfg.DisplayName != "mastodon post" {
		t.Fatalf("lookup = %+v, %v", cfg, ok)
	}
	if len(catalog.All()) != 1 {
		t.Fatalf("All = %+v", catalog.All())
	}
}
