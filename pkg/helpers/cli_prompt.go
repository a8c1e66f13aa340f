package helpers

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/depot/shredder/pkg/pipeline"
	"golang.org/x/term"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// ErrCancelled is returned when the user aborts an interactive prompt.
var ErrCancelled = errors.New("cancelled")

func PromptForSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	password := strings.TrimSpace(stripANSI(string(bytePassword)))
	fmt.Fprintln(os.Stderr)

	return password, nil
}

func stripANSI(s string) string {
	// Matches ESC followed by bracket and any sequence of characters ending in a letter
	return ansiRegex.ReplaceAllString(s, "")
}

// SelectLanguage asks for the target language, starting from current.
func SelectLanguage(current pipeline.Language) (pipeline.Language, error) {
	options := make([]huh.Option[pipeline.Language], 0, len(pipeline.Languages()))
	for _, lang := range pipeline.Languages() {
		options = append(options, huh.NewOption(lang.Title(), lang))
	}

	selected := current
	err := huh.NewSelect[pipeline.Language]().
		Title("Target Dagger SDK").
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}

	return selected, nil
}
