// Command codeview is a minimal syntax-highlighting pager: it lexes a
// source file with chroma and paints the styled tokens into a celina
// buffer, scrolling with the arrow keys. It replaces the teacher's
// build-tag-gated "optional" chroma example with one always wired in,
// per the chroma/regexp2 dependency brought in from the rest of the
// example pack.
package main

import (
	"fmt"
	"os"
	"strings"

	"celina/app"
	"celina/buffer"
	"celina/cell"
	"celina/colors"
	"celina/events"
	"celina/terminal"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

type span struct {
	text  string
	style cell.Style
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: codeview <file>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	spans := highlight(path, string(source))

	backend := terminal.NewPOSIXBackend()
	cfg := app.DefaultConfig()
	cfg.Title = "codeview: " + path

	a, err := app.New(cfg, backend)
	if err != nil {
		return err
	}

	scroll := 0
	onEvent := func(ev events.Event) bool {
		key, ok := ev.(events.KeyEvent)
		if !ok {
			return true
		}
		switch {
		case key.Rune == 'q':
			return false
		case key.Code == events.KeyArrowDown:
			scroll++
		case key.Code == events.KeyArrowUp:
			if scroll > 0 {
				scroll--
			}
		case key.Code == events.KeyPageDown:
			scroll += 20
		case key.Code == events.KeyPageUp:
			scroll -= 20
			if scroll < 0 {
				scroll = 0
			}
		}
		return true
	}

	onRender := func(buf *buffer.Buffer) {
		buf.Clear(cell.Empty())
		paintSpans(buf, spans, scroll)
	}

	return a.Run(onEvent, onRender)
}

// highlight tokenises source with the lexer matching path's extension,
// falling back to chroma's plaintext lexer, and flattens the token
// stream into styled spans using the "monokai" chroma style.
func highlight(path, source string) []span {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return []span{{text: source, style: cell.Default()}}
	}

	var spans []span
	for _, token := range iterator.Tokens() {
		spans = append(spans, span{text: token.Value, style: styleFor(style, token.Type)})
	}
	return spans
}

func styleFor(style *chroma.Style, tt chroma.TokenType) cell.Style {
	entry := style.Get(tt)
	s := cell.Default()
	if entry.Colour.IsSet() {
		s = s.WithForeground(colors.ParseHex(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.WithModifier(cell.Bold)
	}
	if entry.Italic == chroma.Yes {
		s = s.WithModifier(cell.Italic)
	}
	if entry.Underline == chroma.Yes {
		s = s.WithModifier(cell.Underline)
	}
	return s
}

// paintSpans lays the token stream into buf one source line per row,
// starting scroll lines into the source and splitting each span on its
// own embedded newlines. Lines are not wrapped: text past the buffer's
// right edge is cut off.
func paintSpans(buf *buffer.Buffer, spans []span, scroll int) {
	area := buf.Area()
	x, line := 0, 0

	for _, sp := range spans {
		parts := strings.Split(sp.text, "\n")
		for i, part := range parts {
			if i > 0 {
				line++
				x = 0
			}
			if part != "" {
				y := line - scroll
				if y >= 0 && y < area.Height {
					buf.SetString(x, y, part, sp.style, "")
				}
				x += len([]rune(part))
			}
		}
	}
}
