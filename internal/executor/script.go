package executor

import (
	"fmt"
	"os"
	"strings"
)

type renderedLine struct {
	text  string
	quiet bool
}

// groupExit closes the brace group around each command. A failing group
// ends the script with its status even where errexit does not apply, such
// as the left side of `&&`.
const groupExit = "} || exit $?"

// shellScript turns line-mode commands into one POSIX script. Each command
// is echoed to stderr before it runs unless it is quiet.
func shellScript(lines []renderedLine) string {
	var sb strings.Builder
	for _, l := range lines {
		if !l.quiet {
			sb.WriteString(`printf '%s\n' `)
			sb.WriteString(shellQuote(l.text))
			sb.WriteString(" >&2\n")
		}
		if strings.HasPrefix(strings.TrimSpace(l.text), "#") {
			// an empty group is a syntax error
			sb.WriteString(l.text)
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString("{ ")
		sb.WriteString(l.text)
		sb.WriteString("\n" + groupExit + "\n")
	}
	return sb.String()
}

// interpreterScript joins a shebang body back into file contents.
func interpreterScript(lines []renderedLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// writeScript stores contents in an executable temp file. The returned
// cleanup removes it.
func writeScript(dir, contents string) (string, func(), error) {
	f, err := os.CreateTemp(dir, "burstrun-*")
	if err != nil {
		return "", func() {}, fmt.Errorf("creating script file: %w", err)
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	if _, err := f.WriteString(contents); err != nil {
		_ = f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("writing script file: %w", err)
	}
	if err := f.Chmod(0o700); err != nil {
		_ = f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("writing script file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("writing script file: %w", err)
	}
	return f.Name(), cleanup, nil
}
