package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// promptYesNo prints message followed by "[y/N]: " to out and reads one
// answer line from in. Only "y" and "yes" confirm; EOF declines.
func promptYesNo(in io.Reader, out io.Writer, message string) (bool, error) {
	reader := bufio.NewReader(in)
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes", nil
}
