package engine

import (
	"fmt"

	"github.com/pagecroft/bookstore/internal/auth"
	"github.com/pagecroft/bookstore/internal/validate"
	"github.com/pagecroft/bookstore/pkg/types"
)

// findActive returns the index of the active account with the given id, or
// -1. Deactivated rows are invisible to lookup and login.
func findActive(accounts []types.Account, userID string) int {
	for i := range accounts {
		if accounts[i].Active && accounts[i].UserID == userID {
			return i
		}
	}
	return -1
}

// su pushes a session frame. With a password it authenticates against the
// active account; without one it is a delegated switch, allowed only when
// the current privilege strictly exceeds the target's.
func (e *Engine) su(tokens []string) error {
	if len(tokens) != 2 && len(tokens) != 3 {
		return fmt.Errorf("%w: su takes 1 or 2 arguments", ErrMalformed)
	}
	userID := tokens[1]
	if !validate.Identifier(userID) {
		return fmt.Errorf("%w: user id", ErrValidation)
	}

	accounts, err := e.store.LoadAccounts()
	if err != nil {
		return err
	}
	i := findActive(accounts, userID)
	if i < 0 {
		return fmt.Errorf("%w: unknown user %q", ErrConflict, userID)
	}
	target := accounts[i]

	if len(tokens) == 3 {
		if !auth.VerifyPassword(tokens[2], target.PasswordHash, target.PasswordSalt) {
			return fmt.Errorf("%w: wrong password", ErrDenied)
		}
	} else {
		if !e.sessions.LoggedIn() {
			return fmt.Errorf("%w: password required", ErrDenied)
		}
		if e.sessions.Privilege() <= target.Privilege {
			return fmt.Errorf("%w: cannot switch to equal or higher privilege without password", ErrDenied)
		}
	}

	e.sessions.Push(target.UserID, target.Privilege)
	return nil
}

// logout pops the innermost session frame, dropping its selection.
func (e *Engine) logout() error {
	if err := e.require(types.PrivilegeCustomer); err != nil {
		return err
	}
	if !e.sessions.Pop() {
		return fmt.Errorf("%w: not logged in", ErrConflict)
	}
	return nil
}

// register creates a new active customer account. Anonymous callers are
// allowed.
func (e *Engine) register(tokens []string) error {
	if len(tokens) != 4 {
		return fmt.Errorf("%w: register takes 3 arguments", ErrMalformed)
	}
	userID, password, username := tokens[1], tokens[2], tokens[3]
	if !validate.Identifier(userID) || !validate.Identifier(password) || !validate.Username(username) {
		return fmt.Errorf("%w: register fields", ErrValidation)
	}

	accounts, err := e.store.LoadAccounts()
	if err != nil {
		return err
	}
	if findActive(accounts, userID) >= 0 {
		return fmt.Errorf("%w: user %q exists", ErrConflict, userID)
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	accounts = append(accounts, types.Account{
		UserID:       userID,
		PasswordHash: hash,
		PasswordSalt: salt,
		Privilege:    types.PrivilegeCustomer,
		Username:     username,
		Active:       true,
	})
	return e.store.ReplaceAccounts(accounts)
}

// passwd updates an account password. The current password may be omitted
// only at owner privilege, independent of the target account.
func (e *Engine) passwd(tokens []string) error {
	if err := e.require(types.PrivilegeCustomer); err != nil {
		return err
	}
	if len(tokens) != 3 && len(tokens) != 4 {
		return fmt.Errorf("%w: passwd takes 2 or 3 arguments", ErrMalformed)
	}

	userID := tokens[1]
	var current, next string
	if len(tokens) == 3 {
		if err := e.require(types.PrivilegeOwner); err != nil {
			return err
		}
		next = tokens[2]
	} else {
		current, next = tokens[2], tokens[3]
	}
	if !validate.Identifier(userID) || !validate.Identifier(next) {
		return fmt.Errorf("%w: passwd fields", ErrValidation)
	}
	if current != "" && !validate.Identifier(current) {
		return fmt.Errorf("%w: current password", ErrValidation)
	}

	accounts, err := e.store.LoadAccounts()
	if err != nil {
		return err
	}
	i := findActive(accounts, userID)
	if i < 0 {
		return fmt.Errorf("%w: unknown user %q", ErrConflict, userID)
	}
	if current != "" && !auth.VerifyPassword(current, accounts[i].PasswordHash, accounts[i].PasswordSalt) {
		return fmt.Errorf("%w: wrong password", ErrDenied)
	}

	hash, salt, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	accounts[i].PasswordHash = hash
	accounts[i].PasswordSalt = salt
	return e.store.ReplaceAccounts(accounts)
}

// useradd creates an active account at a privilege strictly below the
// caller's.
func (e *Engine) useradd(tokens []string) error {
	if err := e.require(types.PrivilegeStaff); err != nil {
		return err
	}
	if len(tokens) != 5 {
		return fmt.Errorf("%w: useradd takes 4 arguments", ErrMalformed)
	}
	userID, password, username := tokens[1], tokens[2], tokens[4]

	priv, ok := validate.ParseInt(tokens[3])
	if !ok {
		return fmt.Errorf("%w: privilege", ErrValidation)
	}
	if !types.ValidPrivilege(int(priv)) {
		return fmt.Errorf("%w: privilege %d", ErrValidation, priv)
	}
	if int(priv) >= e.sessions.Privilege() {
		return fmt.Errorf("%w: cannot create privilege %d", ErrDenied, priv)
	}
	if !validate.Identifier(userID) || !validate.Identifier(password) || !validate.Username(username) {
		return fmt.Errorf("%w: useradd fields", ErrValidation)
	}

	accounts, err := e.store.LoadAccounts()
	if err != nil {
		return err
	}
	if findActive(accounts, userID) >= 0 {
		return fmt.Errorf("%w: user %q exists", ErrConflict, userID)
	}

	hash, salt, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	accounts = append(accounts, types.Account{
		UserID:       userID,
		PasswordHash: hash,
		PasswordSalt: salt,
		Privilege:    int(priv),
		Username:     username,
		Active:       true,
	})
	return e.store.ReplaceAccounts(accounts)
}

// deleteUser soft-deactivates an account. The row stays in the record set
// for audit consistency; a target logged in anywhere on the stack cannot be
// deleted.
func (e *Engine) deleteUser(tokens []string) error {
	if err := e.require(types.PrivilegeOwner); err != nil {
		return err
	}
	if len(tokens) != 2 {
		return fmt.Errorf("%w: delete takes 1 argument", ErrMalformed)
	}
	userID := tokens[1]

	accounts, err := e.store.LoadAccounts()
	if err != nil {
		return err
	}
	if findActive(accounts, userID) < 0 {
		return fmt.Errorf("%w: unknown user %q", ErrConflict, userID)
	}
	if e.sessions.Holds(userID) {
		return fmt.Errorf("%w: user %q is logged in", ErrConflict, userID)
	}

	for i := range accounts {
		if accounts[i].UserID == userID {
			accounts[i].Active = false
		}
	}
	return e.store.ReplaceAccounts(accounts)
}
