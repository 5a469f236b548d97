// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth manages user accounts and credential checks.

# Password Hashing

Passwords are never stored in plaintext. PasswordHasher abstracts the
algorithm; BcryptHasher is the production implementation:

	hasher := auth.BcryptHasher{Cost: cfg.BcryptCost}

# Sign Up

SignUp validates the input and creates the account:

  - username: 3-80 characters, unique
  - password: at least 6 characters (bcrypt reads at most 72 bytes)
  - confirm_password: must equal password

Every problem is reported as a *models.ValidationError keyed by field. A
username taken between the existence check and the insert is caught by the
unique index and reported the same way.

# Log In

LogIn returns the matching user or models.ErrInvalidCredentials. Unknown
usernames are checked against a dummy hash, so the response (message and
timing) is the same whether the username or the password was wrong.

Session state after a successful login is handled by package session.
*/
package auth
