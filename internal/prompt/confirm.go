package prompt

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm prompts for yes/no confirmation, returning ErrAborted on Ctrl+C.
func Confirm(label string, defaultYes bool) (bool, error) {
	defaultStr := "y/N"
	if defaultYes {
		defaultStr = "Y/n"
	}

	p := promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, defaultStr),
		IsConfirm: true,
	}

	result, err := p.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			return false, ErrAborted
		}
		if err == promptui.ErrAbort {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}

	return strings.ToLower(result) == "y" || strings.ToLower(result) == "yes", nil
}

// ConfirmWithForce returns true immediately when force is set, otherwise
// prompts for confirmation.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}

// ConfirmDestroyCache prompts before an irreversible cache destroy,
// naming the entry count so the operator isn't confirming blind. A
// cache with zero entries skips the prompt entirely under force or not —
// destroying an empty cache carries no data-loss risk worth a prompt.
func ConfirmDestroyCache(cacheName string, entryCount int64, force bool) (bool, error) {
	if force || entryCount == 0 {
		return true, nil
	}
	label := fmt.Sprintf("Destroy cache %q and its %d entries?", cacheName, entryCount)
	return Confirm(label, false)
}
