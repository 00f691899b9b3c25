package ports

// PasswordHasher turns a plain-text password into the hash stored on the user.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// PasswordMatcher checks a plain-text password against a stored hash.
type PasswordMatcher interface {
	Matches(hash, password string) (bool, error)
}
