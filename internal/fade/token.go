package fade

// Token is the cancellation flag of one operation. Work belonging to an
// operation checks it before any side effect that a newer operation could
// conflict with.
type Token struct {
	cancelled bool
}

// Cancel marks the token. It reports whether this call cancelled it.
func (t *Token) Cancel() bool {
	if t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Cancelled reports whether the owning operation was aborted.
func (t *Token) Cancelled() bool {
	return t.cancelled
}
