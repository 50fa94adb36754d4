package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/mycli/internal/setup"
)

// Setup installs the completion hook of program in the startup files of
// shellName, or removes it when uninstall is set
func Setup(shellName, program string, uninstall bool) error {
	shellName = DetectShell(shellName)

	var (
		result *setup.Result
		err    error
	)
	if uninstall {
		result, err = setup.UninstallHook(shellName, program)
	} else {
		result, err = setup.InstallHook(shellName, program)
	}
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	return nil
}
