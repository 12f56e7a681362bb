package prompt

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// Input prompts for text input with an optional default.
func Input(label string, defaultValue string) (string, error) {
	p := promptui.Prompt{Label: label, Default: defaultValue}
	result, err := p.Run()
	return result, wrapError(err)
}

// InputRequired prompts for text input that may not be empty.
func InputRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if input == "" {
				return promptui.ErrAbort
			}
			return nil
		},
	}
	result, err := p.Run()
	return result, wrapError(err)
}

// InputOptional prompts for text input, returning "" if the user just
// presses Enter.
func InputOptional(label string) (string, error) {
	p := promptui.Prompt{Label: label + " (optional)"}
	result, err := p.Run()
	return result, wrapError(err)
}

// InputInt prompts for an integer with a default value.
func InputInt(label string, defaultValue int) (int, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(defaultValue),
		Validate: func(input string) error {
			if _, err := strconv.Atoi(input); err != nil {
				return fmt.Errorf("must be a valid integer")
			}
			return nil
		},
	}
	result, err := p.Run()
	if err != nil {
		return 0, wrapError(err)
	}
	value, _ := strconv.Atoi(result)
	return value, nil
}

// InputAddress prompts for a host:port server address.
func InputAddress(label string, defaultValue string) (string, error) {
	p := promptui.Prompt{Label: label, Default: defaultValue}
	result, err := p.Run()
	return result, wrapError(err)
}
