package impl

import (
	"errors"
	"strings"
	"testing"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
)

func TestPasswordHashVerify(t *testing.T) {
	p := NewPasswordServiceArgon2id()

	encoded, err := p.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
	if !p.Verify("s3cret-password", encoded) {
		t.Fatal("correct password rejected")
	}
	if p.Verify("wrong-password", encoded) {
		t.Fatal("wrong password accepted")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	p := NewPasswordServiceArgon2id()
	a, _ := p.Hash("same-input-1")
	b, _ := p.Hash("same-input-1")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestPasswordVerifyMalformed(t *testing.T) {
	p := NewPasswordServiceArgon2id()
	for _, encoded := range []string{"", "plainhash", "$bcrypt$x$y$z", "$argon2id$v=19$bad"} {
		if p.Verify("anything", encoded) {
			t.Errorf("malformed hash %q accepted", encoded)
		}
	}
}

func TestPasswordPolicy(t *testing.T) {
	p := NewPasswordServiceArgon2id()

	tests := []struct {
		password string
		ok       bool
	}{
		{"longenough1", true},
		{"Str0ngPassword", true},
		{"short1", false},
		{"alllettersonly", false},
		{"1234567890", false},
		{"", false},
	}
	for _, tt := range tests {
		err := p.CheckPolicy(tt.password)
		if tt.ok && err != nil {
			t.Errorf("CheckPolicy(%q) = %v, want nil", tt.password, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("CheckPolicy(%q) = nil, want error", tt.password)
			} else if !errors.Is(err, domain.ErrWeakPassword) {
				t.Errorf("CheckPolicy(%q) = %v, want ErrWeakPassword", tt.password, err)
			}
		}
	}
}
