package types

// GuestActor is recorded as the audit actor when no session is active.
const GuestActor = "guest"

// AuditEntry records one processed input line. Every non-blank line appends
// exactly one entry, whether the command succeeded or not.
type AuditEntry struct {
	Actor   string // stack-top user id after the command ran, or GuestActor
	Command string // the raw trimmed input line
}
