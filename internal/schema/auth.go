package schema

// Register is the body of a password sign-up. Passwords are limited to 72 bytes by bcrypt.
type Register struct {
	Email     string  `json:"email" validate:"required,email,max=254"`
	Password  string  `json:"password" validate:"required,min=12,maxbytes=72,notcommon"`
	FirstName *string `json:"firstName,omitempty" validate:"omitnil,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitnil,max=100"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
