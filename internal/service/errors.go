package service

import (
	"errors"
	"fmt"
)

var ErrInternal = errors.New("internal server error")

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure the caller caused. Message is safe to show to the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

func invalid(format string, args ...any) error {
	return newError(KindInvalid, fmt.Sprintf(format, args...))
}

var (
	ErrFullnameRequired = newError(KindInvalid, "Fullname is required")
	ErrFullnameTooShort = newError(KindInvalid, "Fullname must be at least 3 letters long")
	ErrEmailRequired    = newError(KindInvalid, "Email is required")
	ErrEmailInvalid     = newError(KindInvalid, "Please provide a valid email address")
	ErrPasswordRequired = newError(KindInvalid, "Password is required")
	ErrPasswordTooShort = newError(KindInvalid, "Password must be at least 6 characters long")
	ErrEmailExists      = newError(KindInvalid, "Email already exists")

	ErrEmailNotFound            = newError(KindForbidden, "Email not found")
	ErrIncorrectPassword        = newError(KindForbidden, "Incorrect password")
	ErrGoogleAccount            = newError(KindForbidden, "Account was created using google. Try logging in with google.")
	ErrNotGoogleAccount         = newError(KindForbidden, "This email was signed up without google. Please log in with password to access the account")
	ErrGoogleAuthFailed         = newError(KindUnauthorized, "Failed to authenticate you with google. Try with some other google account")
	ErrGooglePasswordChange     = newError(KindForbidden, "You can't change account's password because you logged in through google")
	ErrIncorrectCurrentPassword = newError(KindForbidden, "Incorrect current password")
	ErrNoAccessToken            = newError(KindUnauthorized, "No access token")
	ErrInvalidAccessToken       = newError(KindForbidden, "Access token is invalid")

	ErrTitleRequired   = newError(KindInvalid, "You must provide a title")
	ErrDesInvalid      = newError(KindInvalid, "You must provide blog description under 200 characters")
	ErrBannerRequired  = newError(KindInvalid, "You must provide blog banner to publish it")
	ErrContentRequired = newError(KindInvalid, "There must be some blog content to publish it")
	ErrTagsInvalid     = newError(KindInvalid, "Provide tags in order to publish the blog, Maximum 10")
	ErrPostNotFound    = newError(KindNotFound, "Blog not found")
	ErrDraftAccess     = newError(KindForbidden, "you can not access draft blogs")
	ErrNotPostAuthor   = newError(KindForbidden, "You don't have permission to modify this blog")
	ErrUnpublish       = newError(KindForbidden, "You can not turn a published blog back into a draft")

	ErrEmptyComment            = newError(KindInvalid, "Write something to leave a comment")
	ErrCommentNotFound         = newError(KindNotFound, "Comment not found")
	ErrCannotDeleteComment     = newError(KindForbidden, "You can not delete this comment")
	ErrNotificationNotFound    = newError(KindNotFound, "Notification not found")
	ErrUnknownNotificationType = newError(KindInvalid, "Unknown notification filter")

	ErrUserNotFound       = newError(KindNotFound, "User not found")
	ErrUsernameTooShort   = newError(KindInvalid, "Username should be at least 3 letters long")
	ErrBioTooLong         = newError(KindInvalid, "Bio should not be more than 150 characters")
	ErrUsernameTaken      = newError(KindConflict, "username is already taken")
	ErrProfileImgRequired = newError(KindInvalid, "Profile image url is required")
)
