package app

import (
	"fmt"
	"strings"
)

// list prints the visible recipes with their signatures and doc comments.
func (a *App) list() error {
	recipes := a.store.Visible()
	width := 0
	for _, r := range recipes {
		width = max(width, len(r.Signature()))
	}

	var sb strings.Builder
	sb.WriteString("Available recipes:\n")
	for _, r := range recipes {
		sig := r.Signature()
		if r.Doc == "" {
			fmt.Fprintf(&sb, "    %s\n", sig)
			continue
		}
		fmt.Fprintf(&sb, "    %-*s # %s\n", width, sig, r.Doc)
	}
	_, err := fmt.Fprint(a.outW, sb.String())
	return err
}
