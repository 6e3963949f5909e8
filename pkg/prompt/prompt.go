package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/markberger/rh-cc-exporter/pkg/card"
)

// Read collects login credentials interactively: username echoed, password
// and one-time code read without echo. When in is not a terminal (tests,
// piped input) the secret reads fall back to plain line reads.
func Read(in *os.File, out io.Writer) (card.Credentials, error) {
	reader := bufio.NewReader(in)

	username, err := readLine(reader, out, "username: ")
	if err != nil {
		return card.Credentials{}, err
	}

	password, err := readSecret(in, reader, out, "password: ")
	if err != nil {
		return card.Credentials{}, err
	}

	mfaCode, err := readSecret(in, reader, out, "mfa code: ")
	if err != nil {
		return card.Credentials{}, err
	}

	return card.Credentials{
		Username: username,
		Password: password,
		MFACode:  mfaCode,
	}, nil
}

func readLine(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

func readSecret(in *os.File, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return readLine(reader, out, label)
	}

	fmt.Fprint(out, label)
	secret, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(string(secret)), nil
}
