package consts

// Unified response Locals keys.
const (
	// DETAIL is set by handlers that return data.
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION is set by handlers that only return an operation result.
	// e.g: c.Locals(OPERATION, "")
	OPERATION = "operation"
)

// UserTokenKey is the redis key prefix for stored access tokens.
const UserTokenKey = "atlas:user:token:"
