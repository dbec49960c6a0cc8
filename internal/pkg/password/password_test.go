package password

import (
	"strings"
	"testing"
)

func TestHash_Format(t *testing.T) {
	stored, err := Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		t.Fatalf("expected key.salt, got %q", stored)
	}
	if len(parts[0]) != keyLen*2 {
		t.Errorf("expected %d hex chars of key, got %d", keyLen*2, len(parts[0]))
	}
	if len(parts[1]) != saltBytes*2 {
		t.Errorf("expected %d hex chars of salt, got %d", saltBytes*2, len(parts[1]))
	}
}

func TestHash_SaltIsRandom(t *testing.T) {
	a, _ := Hash("same")
	b, _ := Hash("same")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerify(t *testing.T) {
	stored, err := Hash("s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if !Verify("s3cret", stored) {
		t.Error("expected correct password to verify")
	}
	if Verify("S3cret", stored) {
		t.Error("expected wrong password to fail")
	}
	if Verify("", stored) {
		t.Error("expected empty password to fail")
	}
}

func TestVerify_Malformed(t *testing.T) {
	stored, _ := Hash("pw")
	key := stored[:strings.Index(stored, ".")]

	cases := map[string]string{
		"empty":          "",
		"no separator":   key,
		"missing salt":   key + ".",
		"missing key":    ".abcdef",
		"bad hex":        "zz" + key[2:] + ".abcd",
		"short key":      key[:10] + ".abcd",
		"plain password": "pw",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if Verify("pw", in) {
				t.Fatalf("expected %q to fail verification", in)
			}
		})
	}
}

func TestScrypt_ImplementsHasher(t *testing.T) {
	var h Scrypt
	stored, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !h.Verify("pw", stored) {
		t.Fatal("expected round trip to verify")
	}
}
