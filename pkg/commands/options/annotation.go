package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dots/pkg/state"
)

// AnnotationOptions
type AnnotationOptions struct {
	Type string
}

func AddAnnotationArgs(cmd *cobra.Command, o *AnnotationOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		`Annotation type: "milestone" or "journal". Defaults to the suggestion for the day.`)
}

// GetType returns the chosen type and whether one was given.
func (o *AnnotationOptions) GetType() (state.AnnotationType, bool, error) {
	raw := strings.ToLower(strings.TrimSpace(o.Type))
	switch raw {
	case "":
		return state.TypeNone, false, nil
	case "none":
		return state.TypeNone, true, nil
	}
	t := state.AnnotationType(raw)
	if !t.Valid() {
		return "", false, fmt.Errorf("unknown type %q, expected milestone or journal", o.Type)
	}
	return t, true, nil
}
