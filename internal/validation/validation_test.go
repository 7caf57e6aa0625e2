package validation

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"a@b.com",
		"john.doe+filter@sub.domain.co.uk",
		"test123@company-name.org",
		"USER_99%x@domain.io",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"user example.com",
		"user @example.com",
		"@example.com",
		"user@",
		"user@example",
		"user@example.c",
		"user@example.com ",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid 8 chars", "Pass1234", true},
		{"valid 12 chars", "Abcdefghi123", true},
		{"valid minimum digits", "Secret99", true},
		{"empty", "", false},
		{"too short", "Pass123", false},
		{"too long", "Pass123456789", false},
		{"no uppercase", "password1234", false},
		{"two uppercase", "PAssword12", false},
		{"one digit", "Password1", false},
		{"no lowercase", "PASSWORD12", false},
		{"symbol present", "Pass12@4", false},
		{"whitespace present", "Pass 1234", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsValidPassword(tc.password); got != tc.want {
				t.Fatalf("IsValidPassword(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestCountingHelpers(t *testing.T) {
	if got := CountUppercase(""); got != 0 {
		t.Fatalf("CountUppercase(\"\") = %d, want 0", got)
	}
	if got := CountDigits(""); got != 0 {
		t.Fatalf("CountDigits(\"\") = %d, want 0", got)
	}
	if got := CountLowercase(""); got != 0 {
		t.Fatalf("CountLowercase(\"\") = %d, want 0", got)
	}

	if got := CountUppercase("aBcDe12"); got != 2 {
		t.Fatalf("CountUppercase = %d, want 2", got)
	}
	if got := CountDigits("aBcDe12"); got != 2 {
		t.Fatalf("CountDigits = %d, want 2", got)
	}
	if got := CountLowercase("aBcDe12"); got != 3 {
		t.Fatalf("CountLowercase = %d, want 3", got)
	}
}
