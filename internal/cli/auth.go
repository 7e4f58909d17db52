package cli

import (
	"github.com/templui/focusflow/internal/schema"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"FOCUSFLOW_PASSWORD" required:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	user, err := ctx.Client.Login(ctx, schema.Login{Email: c.Email, Password: c.Password})
	if err != nil {
		return err
	}
	err = ctx.saveSession()
	if err != nil {
		return err
	}
	printf(ctx.Out, "Signed in as %s\n", user.Email)
	return nil
}

type RegisterCmd struct {
	Email     string  `arg:"" help:"Account email."`
	Password  string  `help:"Password, at least 12 characters." env:"FOCUSFLOW_PASSWORD" required:""`
	FirstName *string `help:"First name."`
	LastName  *string `help:"Last name."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	user, err := ctx.Client.Register(ctx, schema.Register{
		Email:     c.Email,
		Password:  c.Password,
		FirstName: c.FirstName,
		LastName:  c.LastName,
	})
	if err != nil {
		return err
	}
	err = ctx.saveSession()
	if err != nil {
		return err
	}
	printf(ctx.Out, "Account created for %s\n", user.Email)
	return nil
}

type LogoutCmd struct{}

// Run drops the saved token even when the server call fails.
func (c *LogoutCmd) Run(ctx *Context) error {
	callErr := ctx.Client.Logout(ctx)
	ctx.Config.Token = ""
	err := SaveConfig(ctx.ConfigPath, ctx.Config)
	if err != nil {
		return err
	}
	if callErr != nil {
		return callErr
	}
	printf(ctx.Out, "Signed out\n")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user, err := ctx.Client.User(ctx)
	if err != nil {
		return err
	}

	name := user.Email
	if user.FirstName != nil && *user.FirstName != "" {
		name = *user.FirstName
		if user.LastName != nil && *user.LastName != "" {
			name += " " + *user.LastName
		}
		name += " <" + user.Email + ">"
	}
	printf(ctx.Out, "%s\n", name)
	return nil
}
