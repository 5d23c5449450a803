package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/term"
)

// errAborted is returned when the operator answers with an empty line
var errAborted = errors.New("aborted")

// prompter asks the operator for input
type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret reads a line without echoing it
	readSecret func() ([]byte, error)
}

func newTerminalPrompter(in *os.File, out io.Writer) *prompter {
	return &prompter{
		in:  bufio.NewReader(in),
		out: out,
		readSecret: func() ([]byte, error) {
			return term.ReadPassword(int(in.Fd()))
		},
	}
}

func (p *prompter) ask(question string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// confirm treats an empty answer as yes
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " (Y/n)")
	if err != nil {
		return false, err
	}

	return answer == "" || strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// email asks until a well-formed address is given
func (p *prompter) email() (string, error) {
	for {
		email, err := p.ask("Email")
		if err != nil {
			return "", err
		}

		if email == "" {
			return "", errAborted
		}

		if err := checkmail.ValidateFormat(email); err != nil {
			_, _ = fmt.Fprintln(p.out, err)
			continue
		}

		return email, nil
	}
}

// password asks until one of at least minPasswordLength characters is given
func (p *prompter) password() (string, error) {
	for {
		_, _ = fmt.Fprint(p.out, "Password: ")
		secret, err := p.readSecret()
		_, _ = fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}

		password := strings.TrimRight(string(secret), "\r\n")
		switch {
		case password == "":
			return "", errAborted
		case len(password) < minPasswordLength:
			_, _ = fmt.Fprintf(p.out, "password must be %d or more characters\n", minPasswordLength)
		default:
			return password, nil
		}
	}
}
