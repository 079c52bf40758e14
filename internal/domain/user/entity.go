package user

// User represents a user record in the system.
// Instances are transient value objects fetched fresh per operation;
// durable storage belongs entirely to the repository layer.
type User struct {
	ID    int64  // ID is the store-generated unique identifier, immutable after creation
	Name  string // Name is the user's name, unique across all records
	Email string // Email is the user's email address, unique across all records
}
