package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dots/pkg/app"
	"tableflip.dev/dots/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("DOTS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "DOTS_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "DOTS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil {
		return fmt.Errorf("failed to create the dots service")
	}

	doc, err := n.Service.State(ctx)
	if err != nil {
		return err
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Config.path:", n.Config.BasePath())
	tbl.AddRow("Config.key:", n.Config.Key())
	tbl.AddRow("Config.countdown:", n.Config.Countdown())
	tbl.AddRow("Config.log_level:", n.Config.LogLevel())
	tbl.AddRow("Document:", n.Service.Location())
	tbl.AddRow("Annotations:", len(doc.DotsData))
	tbl.AddRow("Focus history:", len(doc.FocusHistory))
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}
