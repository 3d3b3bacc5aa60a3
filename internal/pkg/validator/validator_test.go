package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsAllowedImage(t *testing.T) {
	valid := []string{"face.jpg", "face.JPEG", "snapshot.png", "a.b.jpg"}
	invalid := []string{"face.gif", "face", "face.exe", ".jpgx"}
	for _, name := range valid {
		if !IsAllowedImage(name) {
			t.Errorf("IsAllowedImage(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if IsAllowedImage(name) {
			t.Errorf("IsAllowedImage(%q) = true, want false", name)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-02-30"); ok {
		t.Error("IsValidDate accepted an impossible date")
	}
	if _, ok := IsValidDate("2026-08-28"); !ok {
		t.Error("IsValidDate rejected a valid date")
	}
}
