package ports

// PasswordHasher turns plaintext passwords into stored forms and checks them.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}
