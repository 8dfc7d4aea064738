package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/passmeter/internal/model"
)

var errNoInput = errors.New("no input: pass it as an argument or on stdin")

// argOrStdin returns the first argument, or the first line of stdin when
// there is none.
func argOrStdin(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errNoInput
}

// checkLength applies the API's password bound.
func checkLength(password string) error {
	if n := utf8.RuneCountInString(password); n > model.MaxPasswordRunes {
		return fmt.Errorf("password is too long (%d characters, max %d)", n, model.MaxPasswordRunes)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
