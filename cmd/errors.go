package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// PrintError prints an error message. With --verbose the technical error is
// shown instead of the user-facing message.
func PrintError(userMsg string, technicalErr error) {
	if viper.GetBool("verbose") && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", technicalErr)
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", userMsg)
}
