package handler

import "github.com/fai-lds/lds-client/internal/core/domain"

type signUpForm struct {
	Username string `form:"username" validate:"required,alphanum,min=3,max=32"`
	FullName string `form:"fullName" validate:"required,max=120"`
	Email    string `form:"email"    validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

func (f signUpForm) toUser() *domain.User {
	return &domain.User{
		Username: f.Username,
		FullName: f.FullName,
		Email:    f.Email,
		Password: f.Password,
		Type:     domain.UserTypeRegular,
		Active:   true,
	}
}

// redisplay returns the form without the password, for re-rendering.
func (f signUpForm) redisplay() signUpForm {
	f.Password = ""
	return f
}

type updateForm struct {
	Username string `form:"username" validate:"required,alphanum,min=3,max=32"`
	FullName string `form:"fullName" validate:"required,max=120"`
	Email    string `form:"email"    validate:"required,email"`
	Type     string `form:"type"     validate:"required,usertype"`
	Active   bool   `form:"active"`
	Password string `form:"password" validate:"omitempty,min=6"`
}

// toUser builds the payload sent to the backend. The id always comes from
// the route, never from the form body.
func (f updateForm) toUser(id int) *domain.User {
	return &domain.User{
		ID:       id,
		Username: f.Username,
		FullName: f.FullName,
		Email:    f.Email,
		Password: f.Password,
		Type:     domain.UserType(f.Type),
		Active:   f.Active,
	}
}
