package services

import "errors"

// Typed failures surfaced by the service layer. Handlers map these onto HTTP
// statuses with errors.Is; anything else is a 500.
var (
	ErrManagerNotFound    = errors.New("manager not found")
	ErrMembersNotFound    = errors.New("some users do not exist")
	ErrProjectNotFound    = errors.New("project not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserNotInProject   = errors.New("user not found in project")
	ErrTaskNotFound       = errors.New("task not found")
	ErrStateNotFound      = errors.New("state not found")
	ErrAlreadyMember      = errors.New("user already exists in project")
	ErrInvalidRelation    = errors.New("invalid relation")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
