package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// openInput returns the file named by args[0], or stdin when no argument or
// "-" is given. The returned function closes the input.
func openInput(cmd *cobra.Command, args []string) (io.Reader, func() error, error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() error { return nil }, nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return file, file.Close, nil
}
