package types

// Privilege levels. Higher values strictly dominate lower ones; every
// privilege-gated command requires the current session privilege to be at
// least the listed level.
const (
	PrivilegeGuest    = 0
	PrivilegeCustomer = 1
	PrivilegeStaff    = 3
	PrivilegeOwner    = 7
)

// RootUserID is the implicit superuser account seeded on first run.
const RootUserID = "root"

// RootPassword is the seeded superuser password.
const RootPassword = "sjtu"

// ValidPrivilege reports whether p is a privilege level an account may hold.
// Guest (0) is the implicit privilege of an empty session stack and is never
// stored on an account.
func ValidPrivilege(p int) bool {
	return p == PrivilegeCustomer || p == PrivilegeStaff || p == PrivilegeOwner
}

// Account is one row of the accounts record set. Deletion is a soft
// deactivation: the row is retained with Active unset and becomes invisible
// to lookup and login.
type Account struct {
	UserID       string
	PasswordHash string // argon2id hash, base64
	PasswordSalt string // per-account salt, base64
	Privilege    int
	Username     string
	Active       bool
}
