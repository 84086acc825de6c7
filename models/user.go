package models

import (
	"strings"
	"time"
)

// Role values understood by the authorization rules. Only equality with
// [RoleAdmin] grants privileges.
const (
	RoleUser  = "role_user"
	RoleAdmin = "admin"
)

// DefaultImage is the avatar reference assigned to every new account until
// the user uploads their own image.
const DefaultImage = "default.png"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the immutable identifier assigned by the repository on insert.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Surname is an optional family name.
	Surname string `json:"surname,omitempty"`

	// Bio is an optional free-form description.
	Bio string `json:"bio,omitempty"`

	// Nick is the unique, lower-cased public handle.
	Nick string `json:"nick"`

	// Email is the unique, lower-cased login identifier.
	Email string `json:"email"`

	// Password stores the bcrypt digest of the user's password.
	// It is never serialized: no external view may contain it.
	Password string `json:"-"`

	// Role is either [RoleUser] or [RoleAdmin].
	Role string `json:"role"`

	// Image is the stored avatar file name.
	Image string `json:"image"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table holding users. The
// store's query builders and the users migration both refer to it.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginUser is the minimal view of a user returned after a successful login.
type LoginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Nick string `json:"nick"`
}

// RegisterInput carries the fields accepted by the registration endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Surname  string `json:"surname,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Nick     string `json:"nick"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Credentials carries the fields accepted by the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate is the explicit allow-list of fields a user may change on
// their own profile. Anything not listed here (image, role, token claims,
// unknown keys) is dropped while decoding and can never reach the store.
//
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Nick     *string `json:"nick,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserUpdate is the partial update applied by the repository. Password, when
// set, already holds a digest. Image is only set by the avatar upload flow.
type UserUpdate struct {
	Name     *string
	Surname  *string
	Bio      *string
	Nick     *string
	Email    *string
	Password *string
	Image    *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Surname == nil && u.Bio == nil && u.Nick == nil &&
		u.Email == nil && u.Password == nil && u.Image == nil
}

// Apply copies every non-nil field of u onto user and returns the result.
func (u UserUpdate) Apply(user User) User {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Surname != nil {
		user.Surname = *u.Surname
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
	if u.Nick != nil {
		user.Nick = *u.Nick
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Password != nil {
		user.Password = *u.Password
	}
	if u.Image != nil {
		user.Image = *u.Image
	}
	return user
}

// UserFilter narrows paginated listings. A zero filter matches every user.
type UserFilter struct {
	// Role keeps only users with this role when set. Supplied by the ?role=
	// query parameter of the listing.
	Role string
}

// UserPage is a single page of a paginated user listing.
type UserPage struct {
	Items      []User `json:"items"`
	TotalItems int64  `json:"total_items"`
	TotalPages int64  `json:"total_pages"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// NormalizeEmail performs case-insensitive canonicalization.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeNick performs case-insensitive canonicalization.
func NormalizeNick(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
