package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/spf13/cobra"
)

func DevCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the API server with air hot-reload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (defaults to PORT from the environment)")
	return cmd
}

// runDev replaces the process with air, rebuilding cmd/server whenever Go
// sources, migrations or seeded resources change.
func runDev(port string) error {
	air, err := exec.LookPath("air")
	if err != nil {
		fmt.Fprintln(os.Stderr, "air is not installed: go install github.com/air-verse/air@latest")
		return errors.New("air not found")
	}

	args := []string{
		"air",
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "go build -o ./tmp/server ./cmd/server",
		"-build.bin", "./tmp/server",
		"-build.delay", "100",
		"-build.exclude_dir", "bin,tmp,data,_examples",
		"-build.exclude_regex", "_test.go$",
		"-build.include_ext", "go,sql,md",
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
	}

	env := append(os.Environ(), "APP_ENV=development")
	if port != "" {
		env = append(env, "PORT="+port)
	}
	return syscall.Exec(air, args, env)
}
