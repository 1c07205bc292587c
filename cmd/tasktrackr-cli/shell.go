package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrymomot/tasktrackr/pkg/authclient"
)

// session is the part of authclient.Client the shell drives.
type session interface {
	Resolve(ctx context.Context) (authclient.State, error)
	View() authclient.View
	Profile() (authclient.Profile, bool)
	Section() authclient.Section
	Navigate(s authclient.Section) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

type shell struct {
	client       session
	in           *bufio.Reader
	out          io.Writer
	readPassword func() (string, error)
}

// run resolves the identity once, then reads commands until EOF, exit or
// ctx cancellation. Which commands exist depends on the current view.
func (s *shell) run(ctx context.Context) error {
	if _, err := s.client.Resolve(ctx); err != nil {
		s.printf("Could not reach the server: %v\n", err)
	}

	for ctx.Err() == nil {
		s.printf("%s", s.prompt())

		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := err != nil

		if fields := strings.Fields(line); len(fields) > 0 {
			if done := s.dispatch(ctx, fields[0], fields[1:]); done {
				return nil
			}
		}

		if eof {
			s.printf("\n")
			return nil
		}
	}
	return nil
}

func (s *shell) prompt() string {
	if s.client.View() == authclient.ViewShell {
		profile, _ := s.client.Profile()
		return fmt.Sprintf("tasktrackr [%s] %s> ", profile.Email, s.client.Section())
	}
	return "tasktrackr> "
}

func (s *shell) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		s.printf("Bye!\n")
		return true
	case "help":
		s.help()
		return false
	}

	switch s.client.View() {
	case authclient.ViewShell:
		s.shellCommand(ctx, cmd, args)
	default:
		s.loginCommand(ctx, cmd)
	}
	return false
}

func (s *shell) loginCommand(ctx context.Context, cmd string) {
	var submit func(context.Context, string, string) error
	switch cmd {
	case "login":
		submit = s.client.Login
	case "register", "signup":
		submit = s.client.Register
	default:
		s.printf("Unknown command %q. Type help.\n", cmd)
		return
	}

	email, password, err := s.credentials()
	if err != nil {
		s.printf("Input error: %v\n", err)
		return
	}

	if err := submit(ctx, email, password); err != nil {
		s.printf("%s\n", capitalize(err.Error()))
		return
	}

	profile, _ := s.client.Profile()
	s.printf("Welcome, %s.\n", profile.Email)
}

func (s *shell) shellCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "whoami":
		profile, _ := s.client.Profile()
		s.printf("%s (id %s, member since %s)\n", profile.Email, profile.ID, profile.CreatedAt.Format("2006-01-02"))
	case "open":
		if len(args) != 1 {
			s.printf("Usage: open <%s>\n", sectionList())
			return
		}
		if err := s.client.Navigate(authclient.Section(args[0])); err != nil {
			s.printf("No such section. Choose one of: %s\n", sectionList())
		}
	case "logout":
		if err := s.client.Logout(ctx); err != nil {
			s.printf("Logout failed, you are still signed in: %v\n", err)
			return
		}
		s.printf("Signed out.\n")
	default:
		s.printf("Unknown command %q. Type help.\n", cmd)
	}
}

func (s *shell) help() {
	if s.client.View() == authclient.ViewShell {
		s.printf("Commands: whoami, open <%s>, logout, exit\n", sectionList())
		return
	}
	s.printf("Commands: login, register, exit\n")
}

func (s *shell) credentials() (string, string, error) {
	s.printf("Email: ")
	email, err := s.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", err
	}

	s.printf("Password: ")
	password, err := s.readPassword()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", err
	}

	return strings.TrimSpace(email), password, nil
}

func (s *shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func sectionList() string {
	names := make([]string, len(authclient.Sections))
	for i, sec := range authclient.Sections {
		names[i] = string(sec)
	}
	return strings.Join(names, "|")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
