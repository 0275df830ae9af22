package input

import (
	"strings"
	"testing"
)

func TestLoginValid(t *testing.T) {
	err := Validate(Login{Email: "a@b.com", Password: "password1"})
	if err != nil {
		t.Errorf("expected valid login, got %v", err)
	}
}

func TestEmailRule(t *testing.T) {
	cases := []struct {
		email string
		ok    bool
	}{
		{"a@b.com", true},
		{"user@x", false},           // no .com suffix
		{"user.example.com", false}, // no @
		{"a@b.org", false},          // the rule is literal: must end in .com
		{"", false},
	}

	for _, tc := range cases {
		err := Validate(Login{Email: tc.email, Password: "password1"})
		if tc.ok && err != nil {
			t.Errorf("email %q: expected valid, got %v", tc.email, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("email %q: expected rejection", tc.email)
		}
	}
}

func TestPasswordLength(t *testing.T) {
	if err := Validate(Login{Email: "a@b.com", Password: "short"}); err == nil {
		t.Error("expected rejection of password under 8 characters")
	}
	if err := Validate(Login{Email: "a@b.com", Password: "12345678"}); err != nil {
		t.Errorf("8-character password should pass, got %v", err)
	}
}

func TestMissingFields(t *testing.T) {
	err := Validate(Register{})
	if err == nil {
		t.Fatal("expected errors for empty register form")
	}
	msg := err.Error()
	for _, want := range []string{"full name is required", "email is required", "password is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestAccountUpdateNewPasswordOptional(t *testing.T) {
	base := AccountUpdate{
		FullName:        "A",
		Email:           "a@b.com",
		CurrentPassword: "password1",
	}

	if err := Validate(base); err != nil {
		t.Errorf("blank new password should be allowed, got %v", err)
	}

	withShort := base
	withShort.NewPassword = "short"
	if err := Validate(withShort); err == nil {
		t.Error("expected rejection of short new password")
	}

	withValid := base
	withValid.NewPassword = "longenough"
	if err := Validate(withValid); err != nil {
		t.Errorf("valid new password should pass, got %v", err)
	}
}

func TestAccountUpdateRequiresCurrentPassword(t *testing.T) {
	err := Validate(AccountUpdate{FullName: "A", Email: "a@b.com"})
	if err == nil || !strings.Contains(err.Error(), "current password is required") {
		t.Errorf("expected current password requirement, got %v", err)
	}
}
