package user

// CreateUserInput carries the fields for creating a new user.
// Presence validation happens at the transport layer; the usecase only
// enforces business invariants (uniqueness).
type CreateUserInput struct {
	Name  string
	Email string
}

// UpdateUserInput carries a partial update. Nil pointers mean "keep the
// existing value"; non-nil pointers overwrite, including with an empty string.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// DeleteUserResult carries the confirmation message for a completed deletion.
type DeleteUserResult struct {
	Message string
}
