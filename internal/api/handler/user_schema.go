package handler

import "time"

// signupRequest intentionally has no validate tags: the canonical
// missing-field message for signup is owned by the service layer.
type signupRequest struct {
	ID            string    `json:"_id"`
	Username      string    `json:"username"`
	Password      string    `json:"password"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	LoginID       string    `json:"loginId"`
	Section       string    `json:"section"`
	LastActivity  time.Time `json:"lastActivity"`
	TotalActivity string    `json:"totalActivity"`
}

type signinRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	ID            string    `json:"_id"`
	Username      string    `json:"username" validate:"required"`
	Password      string    `json:"password" validate:"required"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email" validate:"omitempty,email"`
	Role          string    `json:"role" validate:"omitempty,oneof=USER ADMIN FACULTY STUDENT TA"`
	LoginID       string    `json:"loginId"`
	Section       string    `json:"section"`
	LastActivity  time.Time `json:"lastActivity"`
	TotalActivity string    `json:"totalActivity"`
}

// updateUserRequest uses pointer fields so an absent key and an explicit
// empty value are distinguishable; only present keys join the patch.
type updateUserRequest struct {
	Username      *string    `json:"username"`
	Password      *string    `json:"password"`
	FirstName     *string    `json:"firstName"`
	LastName      *string    `json:"lastName"`
	Email         *string    `json:"email"`
	Role          *string    `json:"role" validate:"omitempty,oneof=USER ADMIN FACULTY STUDENT TA"`
	LoginID       *string    `json:"loginId"`
	Section       *string    `json:"section"`
	LastActivity  *time.Time `json:"lastActivity"`
	TotalActivity *string    `json:"totalActivity"`
}

type deleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type updateResponse struct {
	MatchedCount int64 `json:"matchedCount"`
}
