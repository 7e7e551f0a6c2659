// Package console implements the interactive terminal front end.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amphitopia/conch/internal/chat"
	"github.com/amphitopia/conch/internal/stt"
	"github.com/amphitopia/conch/internal/tts"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")).
			Bold(true)

	conchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// DefaultTypeDelay is the per-character pace of the conch's typing effect.
const DefaultTypeDelay = 25 * time.Millisecond

const banner = `
   ___________________________________
  /                                   \
 |    T H E   C O N C H                |
 |    voice of the drowned archive     |
  \___________________________________/
`

// Options controls optional console behavior.
type Options struct {
	// Listener enables voice input when non-nil.
	Listener *stt.Listener
	// ListenSeconds is the microphone capture window per voice turn.
	ListenSeconds int
	// TypeDelay is the per-character delay for the typing effect. Zero
	// disables the effect, which tests rely on.
	TypeDelay time.Duration
}

// Console runs the interactive chat loop.
type Console struct {
	engine *chat.Engine
	opts   Options
	in     io.Reader
	out    io.Writer
}

// New creates a console over the engine, reading stdin and writing stdout.
func New(engine *chat.Engine, opts Options) *Console {
	if opts.ListenSeconds <= 0 {
		opts.ListenSeconds = 5
	}
	return &Console{engine: engine, opts: opts, in: os.Stdin, out: os.Stdout}
}

// Run drives the chat loop until the user says goodbye, input is exhausted,
// or the context is cancelled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, bannerStyle.Render(banner))
	fmt.Fprintln(c.out, hintStyle.Render(fmt.Sprintf("backend: %s   speech: %v", c.engine.Backend(), c.engine.SpeechEnabled())))
	if c.opts.Listener != nil {
		fmt.Fprintln(c.out, hintStyle.Render("type 's' and press Enter to speak instead of typing"))
	}
	fmt.Fprintln(c.out)

	welcome := c.engine.Welcome(ctx)
	c.speak(ctx, welcome)

	scanner := bufio.NewScanner(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, promptStyle.Render("You: "))
		if !scanner.Scan() {
			// EOF counts as leaving the cave.
			fmt.Fprintln(c.out)
			c.speak(ctx, c.engine.Goodbye(ctx))
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}

		if message == "s" && c.opts.Listener != nil {
			heard, ok := c.opts.Listener.ListenAndTranscribe(ctx, time.Duration(c.opts.ListenSeconds)*time.Second)
			if !ok {
				fmt.Fprintln(c.out, statusStyle.Render("(the conch heard nothing)"))
				continue
			}
			message = heard
			fmt.Fprintf(c.out, "%s %s\n", promptStyle.Render("You (voice):"), message)
		}

		if !chat.IsExit(message) {
			fmt.Fprintln(c.out, statusStyle.Render("...consulting the archive..."))
		}

		result := c.engine.Reply(ctx, message)
		c.speak(ctx, result)
		if result.IsGoodbye {
			return nil
		}
	}
}

// speak prints a conch line with the typing effect and plays its audio, if
// any, in the background.
func (c *Console) speak(ctx context.Context, result chat.Result) {
	if path, ok := c.engine.AudioPath(result.AudioID); ok {
		go func() {
			if err := tts.PlayFile(path); err != nil {
				slog.Warn("audio playback failed", "error", err)
			}
		}()
	}

	fmt.Fprint(c.out, conchStyle.Render("Conch: "))
	c.typeOut(ctx, result.Text)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out)
}

// typeOut renders text character by character for the oracle feel.
func (c *Console) typeOut(ctx context.Context, text string) {
	styled := conchStyle.Render(text)
	if c.opts.TypeDelay <= 0 {
		fmt.Fprint(c.out, styled)
		return
	}
	for _, r := range text {
		select {
		case <-ctx.Done():
			fmt.Fprint(c.out, conchStyle.Render(string(r)))
			continue
		case <-time.After(c.opts.TypeDelay):
		}
		fmt.Fprint(c.out, conchStyle.Render(string(r)))
	}
}
