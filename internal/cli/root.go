// Package cli is the terminal front end of focusflow: one kong command per
// view, each rendering what the API client returns.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/templui/focusflow/internal/client"
)

type Context struct {
	context.Context
	Client     *client.Client
	Config     *Config
	ConfigPath string
	Out        io.Writer
}

// saveSession stores the client's current token.
func (c *Context) saveSession() error {
	c.Config.Token = c.Client.Token()
	return SaveConfig(c.ConfigPath, c.Config)
}

type CLI struct {
	Server string `help:"API base URL (defaults to the saved server)." env:"FOCUSFLOW_SERVER"`
	Config string `help:"Client config file." type:"path" default:"${config_path}"`

	Login    LoginCmd    `cmd:"" help:"Sign in and remember the session."`
	Register RegisterCmd `cmd:"" help:"Create an account and sign in."`
	Logout   LogoutCmd   `cmd:"" help:"End the saved session."`
	Whoami   WhoamiCmd   `cmd:"" help:"Show the signed-in user."`

	Goals struct {
		List GoalsListCmd `cmd:"" help:"List goals." default:"1"`
		Add  GoalsAddCmd  `cmd:"" help:"Add a goal."`
		Edit GoalsEditCmd `cmd:"" help:"Change fields of a goal."`
		Done GoalsDoneCmd `cmd:"" help:"Mark a goal completed."`
		Rm   GoalsRmCmd   `cmd:"" help:"Delete a goal."`
	} `cmd:"" help:"Manage goals."`

	Focus struct {
		Show FocusShowCmd `cmd:"" help:"Show today's check-in." default:"1"`
		Set  FocusSetCmd  `cmd:"" help:"Update today's check-in."`
	} `cmd:"" help:"Daily check-in."`

	Resources struct {
		List ResourcesListCmd `cmd:"" help:"Browse resources." default:"1"`
		Show ResourcesShowCmd `cmd:"" help:"Read one resource."`
	} `cmd:"" help:"Tips, articles and interview prep."`
}

// Run parses args and executes the selected command, writing to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	var root CLI
	parser, err := kong.New(&root,
		kong.Name("focus"),
		kong.Description("Goals, daily check-ins and resources from the terminal."),
		kong.UsageOnError(),
		kong.Writers(out, out),
		kong.Vars{"config_path": DefaultConfigPath()},
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return err
	}
	if root.Server != "" {
		cfg.Server = root.Server
	}

	c, err := client.New(cfg.Server, client.WithToken(cfg.Token))
	if err != nil {
		return err
	}

	return kctx.Run(&Context{
		Context:    ctx,
		Client:     c,
		Config:     cfg,
		ConfigPath: root.Config,
		Out:        out,
	})
}

var titleCaser = cases.Title(language.English)

// label turns enum values such as "interview_question" into "Interview Question".
func label(value string) string {
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

// ErrorText is the one-line message shown for a failed command. Client errors
// carry the operation and, when the server gave one, its explanation.
func ErrorText(err error) string {
	var cerr *client.Error
	if errors.As(err, &cerr) && cerr.Message != "" {
		return cerr.Op + ": " + cerr.Message
	}
	if errors.As(err, &cerr) && cerr.Err != nil {
		return cerr.Op + ": " + cerr.Err.Error()
	}
	return err.Error()
}
