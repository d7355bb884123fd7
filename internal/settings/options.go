package settings

import "github.com/abhisek/lingoflow/internal/api"

// Option is one entry of a settings picker.
type Option struct {
	Value string
	Label string
}

// ModelOptions builds the model picker. The selected model is always
// present, labeled "(saved)" when the server did not list it.
func ModelOptions(models []api.Model, selected string) []Option {
	opts := make([]Option, 0, len(models)+1)
	found := false
	for _, m := range models {
		if m.Name == "" {
			continue
		}
		if m.Name == selected {
			found = true
		}
		opts = append(opts, Option{Value: m.Name, Label: m.Label()})
	}
	if selected != "" && !found {
		opts = append(opts, Option{Value: selected, Label: selected + " (saved)"})
	}
	return opts
}

// StringOptions turns plain values into options labeled with themselves.
func StringOptions(values []string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// LanguageOptions labels each language with its flag.
func LanguageOptions(langs []string) []Option {
	opts := make([]Option, len(langs))
	for i, l := range langs {
		opts[i] = Option{Value: l, Label: Flag(l) + " " + l}
	}
	return opts
}
