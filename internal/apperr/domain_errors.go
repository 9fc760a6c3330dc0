package apperr

var (
	// Authentication / ownership
	ErrUnauthenticated = Unauthenticated("unauthorized access")
	ErrNotOwner        = Forbidden("unauthorized access")

	// Lookups. Conversation and message absence is reported identically
	// whether the row is missing or the caller is not a participant.
	ErrUserNotFound         = NotFound("user not found")
	ErrConversationNotFound = NotFound("conversation not found")
	ErrMessageNotFound      = NotFound("message not found")

	// Validation / login
	ErrInvalidRecipient   = InvalidArg("invalid recipient")
	ErrInvalidCredentials = InvalidCredentials("invalid credentials")
	ErrUsernameTaken      = AlreadyExists("username already exists")
	ErrEmailTaken         = AlreadyExists("email already exists")
)
