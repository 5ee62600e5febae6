// Command demo is a small windowed celina program: a header window and a
// status window laid out by the layout solver, driven by app.App's tick
// loop. It mirrors the shape of the teacher's cmd/example* programs while
// exercising the window-manager/layout/config stack end to end.
package main

import (
	"fmt"
	"os"
	"time"

	"celina/app"
	"celina/buffer"
	"celina/cell"
	"celina/colors"
	"celina/events"
	"celina/geometry"
	"celina/layout"
	"celina/terminal"
	"celina/windows"

	"github.com/spf13/cobra"
)

func main() {
	var (
		fps     int
		noMouse bool
	)

	root := &cobra.Command{
		Use:   "demo",
		Short: "celina windowed demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(fps, !noMouse)
		},
	}
	root.Flags().IntVar(&fps, "fps", 60, "target render rate")
	root.Flags().BoolVar(&noMouse, "no-mouse", false, "disable mouse capture")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDemo(fps int, mouse bool) error {
	backend := terminal.NewPOSIXBackend()

	cfg := app.DefaultConfig()
	cfg.Title = "celina demo"
	cfg.TargetFPS = fps
	cfg.MouseCapture = mouse
	cfg.WindowMode = true

	a, err := app.New(cfg, backend)
	if err != nil {
		return err
	}

	mgr := a.Manager()

	size, _ := backend.Size()
	rows := layout.Split(layout.New(layout.Vertical, layout.Length(1), layout.Fill(1)),
		geometry.NewRect(0, 0, size.Width, size.Height))
	headerArea, bodyArea := rows[0], rows[1]

	header := mgr.CreateWindow(headerArea, "header")
	body := mgr.Build(bodyArea, "status").
		WithBorder(windows.DefaultBorder()).
		OnKey(func(ev events.KeyEvent) bool {
			return ev.Rune != 'q'
		}).
		Build()
	mgr.Focus(body.ID())

	titleStyle := cell.Default().
		WithForeground(colors.NewRGB(0x61, 0xaf, 0xef)).
		WithModifier(cell.Bold)

	started := time.Now()

	onEvent := func(ev events.Event) bool {
		switch e := ev.(type) {
		case events.QuitEvent:
			return false
		case events.KeyEvent:
			return e.Rune != 'q'
		}
		return true
	}

	onRender := func(buf *buffer.Buffer) {
		header.Buffer().SetString(1, 0, cfg.Title, titleStyle, "")

		status := fmt.Sprintf("frames=%d events=%d ticks=%d uptime=%s (press q to quit)",
			a.Stats().FramesRendered, a.Stats().EventsDrained, a.Stats().TicksRun,
			time.Since(started).Round(time.Second))
		body.Buffer().SetString(1, 1, status, cell.Style{}, "")

		mgr.Composite(buf)
	}

	return a.Run(onEvent, onRender)
}
