package questionnaire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/vijay-prabhu/scheme-sahayak/internal/eligibility"
)

// SkipLabel is the menu entry that leaves an optional question unanswered
const SkipLabel = "Skip"

// ErrAborted is returned when the user interrupts the questionnaire
var ErrAborted = errors.New("questionnaire aborted")

// Asker is the terminal interaction the questionnaire needs
type Asker interface {
	// Input reads free text, re-asking until validate accepts it
	Input(label string, validate func(string) error) (string, error)

	// Select shows a menu and returns the chosen index
	Select(label string, items []string) (int, error)
}

// Question is one step of the questionnaire
type Question struct {
	Field   eligibility.Field
	Label   string
	Options []Option
	Max     int
}

// Questions are asked in this order
var Questions = []Question{
	{Field: eligibility.FieldAge, Label: "What is your age?", Max: 120},
	{Field: eligibility.FieldState, Label: "Which state do you live in?", Options: stateOptions()},
	{Field: eligibility.FieldIncome, Label: "What is your annual family income (₹)?"},
	{Field: eligibility.FieldCategory, Label: "What is your social category?", Options: Categories},
	{Field: eligibility.FieldOccupation, Label: "What is your occupation?", Options: Occupations},
	{Field: eligibility.FieldGender, Label: "What is your gender?", Options: Genders},
}

// Run walks through every question, starting from the answers in p.
// Required questions cannot be skipped.
func Run(asker Asker, p eligibility.Profile, required []eligibility.Field) (eligibility.Profile, error) {
	isRequired := make(map[eligibility.Field]bool, len(required))
	for _, f := range required {
		isRequired[f] = true
	}

	for i, q := range Questions {
		label := fmt.Sprintf("[%d/%d] %s", i+1, len(Questions), q.Label)
		value, err := ask(asker, q, label, isRequired[q.Field])
		if err != nil {
			return p, err
		}
		p.Set(q.Field, value)
	}

	if missing := p.Missing(required...); len(missing) > 0 {
		return p, fmt.Errorf("missing required answers: %s", joinFields(missing))
	}
	return p, nil
}

func ask(asker Asker, q Question, label string, required bool) (string, error) {
	if len(q.Options) == 0 {
		if !required {
			label += " (Enter to skip)"
		}
		value, err := asker.Input(label, numberValidator(required, q.Max))
		if err != nil {
			return "", wrapPromptErr(err)
		}
		return strings.TrimSpace(value), nil
	}

	items := make([]string, 0, len(q.Options)+1)
	for _, o := range q.Options {
		items = append(items, o.Label)
	}
	if !required {
		items = append(items, SkipLabel)
	}

	idx, err := asker.Select(label, items)
	if err != nil {
		return "", wrapPromptErr(err)
	}
	if idx < 0 || idx >= len(q.Options) {
		return "", nil
	}
	return q.Options[idx].Value, nil
}

// numberValidator accepts whole numbers, and blank input when not required
func numberValidator(required bool, max int) func(string) error {
	return func(input string) error {
		input = strings.TrimSpace(input)
		if input == "" {
			if required {
				return errors.New("an answer is required")
			}
			return nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 {
			return errors.New("enter a whole number")
		}
		if max > 0 && n > max {
			return fmt.Errorf("enter a number up to %d", max)
		}
		return nil
	}
}

func wrapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}

func joinFields(fields []eligibility.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// PromptAsker asks questions on the terminal with promptui
type PromptAsker struct{}

// Input implements Asker
func (PromptAsker) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: promptui.ValidateFunc(validate),
	}
	return prompt.Run()
}

// Select implements Asker
func (PromptAsker) Select(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
		},
	}
	idx, _, err := prompt.Run()
	return idx, err
}
