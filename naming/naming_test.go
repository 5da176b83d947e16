package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	cases := map[string]string{
		"UserProfile":  "user_profile",
		"userProfile":  "user_profile",
		"user-profile": "user_profile",
		"User Profile": "user_profile",
		"HTTPServer":   "http_server",
		"APIKey2Value": "api_key2_value",
		"user":         "user",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToSnakeCase(in), "input %q", in)
	}
}

func TestToPascalCase(t *testing.T) {
	cases := map[string]string{
		"user_profile": "UserProfile",
		"user-profile": "UserProfile",
		"BlogPost":     "BlogPost",
		"blogPost":     "BlogPost",
		"user profile": "UserProfile",
		"HTTP server":  "HttpServer",
		"user":         "User",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToPascalCase(in), "input %q", in)
	}
}

func TestToKebabCase(t *testing.T) {
	cases := map[string]string{
		"UserProfile":  "user-profile",
		"user_profile": "user-profile",
		"user profile": "user-profile",
		"HTTPServer":   "http-server",
	}
	for in, want := range cases {
		assert.Equal(t, want, ToKebabCase(in), "input %q", in)
	}
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"user":     "users",
		"category": "categories",
		"address":  "addresses",
		"person":   "people",
	}
	for in, want := range cases {
		assert.Equal(t, want, Pluralize(in), "input %q", in)
	}
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{"User", "user1", "user_name", "a", "A1_b2"}
	for _, name := range valid {
		assert.True(t, ValidateIdentifier(name), "expected %q to be valid", name)
	}

	invalid := []string{"", "_user", "1User", "User-Name", "user name", "user.name", "-user"}
	for _, name := range invalid {
		assert.False(t, ValidateIdentifier(name), "expected %q to be invalid", name)
	}
}
