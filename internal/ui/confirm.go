package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// stdin is swapped for a fixed reader in tests.
var stdin io.Reader = os.Stdin

func readLine() string {
	line, _ := bufio.NewReader(stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

// affirmative reports whether a reply means yes. Empty input is no.
func affirmative(reply string) bool {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes":
		return true
	}
	return false
}

// Confirm asks a yes/no question. Enter defaults to no.
func Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", StyleWarning.Render(prompt))
	return affirmative(readLine())
}

// ConfirmDanger asks in the error color, for irreversible actions like
// deleting a template or removing a wallet key.
func ConfirmDanger(prompt string) bool {
	fmt.Printf("%s [y/N] ", StyleError.Render("⚠ "+prompt))
	return affirmative(readLine())
}

// promptLine asks for one line of free-form input (e.g. a template name).
func promptLine(prompt string) string {
	fmt.Printf("%s: ", StyleMeta.Render(prompt))
	return readLine()
}

// pause blocks until Enter so results stay on screen between the
// dashboard's full-screen views.
func pause() {
	fmt.Print(StyleMeta.Render("press Enter to continue…"))
	readLine()
}
