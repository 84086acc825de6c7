package models

// Response status values used in every JSON envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RegisterResult is the outcome of a registration attempt.
//
// A duplicate email or nick is not an error: AlreadyExists is set and User is
// left empty.
type RegisterResult struct {
	User          User
	AlreadyExists bool
	CreatedBy     *Claims
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User  LoginUser
	Token Token
}

// UserList is a page of users together with the identity of the caller.
type UserList struct {
	UserPage
	LoggedInUser Claims
}

// Response is the JSON envelope written by every user endpoint except the
// paginated list. Optional sections are omitted when empty.
type Response struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	User      any         `json:"user,omitempty"`
	Users     []User      `json:"users,omitempty"`
	Token     string      `json:"token,omitempty"`
	File      *StoredFile `json:"file,omitempty"`
	CreatedBy *Claims     `json:"created_by,omitempty"`
}

// ListResponse is the JSON body of the paginated user listing.
type ListResponse struct {
	Items        []User `json:"items"`
	TotalUsers   int64  `json:"total_users"`
	TotalPages   int64  `json:"total_pages"`
	Page         int    `json:"page"`
	LoggedInUser Claims `json:"logged_in_user"`
}

// ErrorResponse builds an error envelope with the given message.
func ErrorResponse(message string) Response {
	return Response{Status: StatusError, Message: message}
}
