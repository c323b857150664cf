package shell

import (
	"context"
	"os/exec"
	"strings"

	"github.com/arthur-debert/anek/pkg/errors"
	"github.com/arthur-debert/anek/pkg/logging"
)

// Editor opens path in editor, which may carry its own arguments
// ("code -w"), and waits for it to exit.
func Editor(ctx context.Context, editor, path string, stdio IO) error {
	log := logging.GetLogger("shell.editor")

	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return errors.New(errors.ErrInvalidInput, "no editor configured, set $EDITOR or the editor config key")
	}

	args := append(fields[1:], path)
	log.Debug().Str("editor", fields[0]).Strs("args", args).Msg("Opening editor")

	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrCommandExecute, "editor %s failed on %s", fields[0], path).
			WithDetail("path", path)
	}
	return nil
}
