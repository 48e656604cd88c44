package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// render writes v in the selected format. text is used for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case "text", "":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func output(v any, text func(io.Writer)) {
	if err := render(os.Stdout, format, v, text); err != nil {
		fatal("Error writing output", err)
	}
}
