package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/mycli/internal/shell"
)

// DetectShell resolves the --shell flag; auto or empty looks at $SHELL
func DetectShell(flag string) string {
	if flag == "" || flag == "auto" {
		return shell.Detect()
	}
	return flag
}

// Hook prints the completion script of shellName for program
func Hook(shellName, program string) error {
	gen, err := shell.NewCodeGenerator(DetectShell(shellName))
	if err != nil {
		return err
	}

	fmt.Print(gen.Generate(program))
	return nil
}
