package display

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question on the terminal. Answering no (or just
// pressing enter) returns false with a nil error; Ctrl-C returns
// promptui.ErrInterrupt.
func Confirm(label string) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := p.Run()
	return confirmed(err)
}

func confirmed(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	}
	return false, err
}
