// Package password provides the pluggable password hashing collaborator used
// by identity layers sitting in front of the authorization core.
//
// The core itself never authenticates; it only needs a Hasher contract so
// that callers can swap hashing algorithms without touching authorization
// code. The default implementation uses bcrypt.
//
//	hasher := password.NewBcryptHasher()
//	hash, err := hasher.Hash("s3cret")
//	if err != nil {
//		// Handle hashing failure
//	}
//	if !hasher.Verify("s3cret", hash) {
//		// Wrong password
//	}
package password
