package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"novel-reader/reader"
	"novel-reader/text"
	"novel-reader/theme"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <novelId> [chapterId]",
	Short: "Read a chapter in the terminal",
	Long:  "Read a chapter in the terminal. Without a chapter id the first chapter of the novel is opened",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRead,
}

type readArgs struct {
	interactive bool
	fontSize    int
}

var rdArgs readArgs

func init() {
	readCmd.Flags().BoolVarP(&rdArgs.interactive, "interactive", "i", false, "keep reading with prev/next/back commands")
	readCmd.Flags().IntVar(&rdArgs.fontSize, "font-size", reader.DefaultFontSize, "initial font size in px, shown in the settings line")
	RootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	target := reader.Target{NovelId: args[0]}
	if len(args) > 1 {
		target.ChapterId = args[1]
	}

	navigator := reader.NewNavigator(newSource(), logger)
	navigator.OnChange(func(snap reader.Snapshot) {
		if snap.State == reader.Loading {
			color.New(color.FgHiBlack).Fprintln(cmd.ErrOrStderr(), reader.LoadingMessage)
		}
	})
	session := reader.NewSession(navigator, nil)

	prefs := reader.DefaultPreferences()
	prefs.FontSize = reader.ClampFontSize(rdArgs.fontSize)
	tr := &terminalReader{
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		session: session,
		prefs:   prefs,
		theme:   theme.Default,
	}

	snap := session.Open(cmd.Context(), target)
	tr.show(snap)
	if !rdArgs.interactive {
		if snap.State != reader.Ready {
			err := snap.Err
			if err == nil {
				err = reader.ErrNotFound
			}
			return fmt.Errorf("failed to read %v: %w", target.Path(), err)
		}
		return nil
	}
	return tr.loop(cmd.Context(), cmd.InOrStdin())
}

const readPrompt = "[n]ext [p]rev [b]ack [f]orward [+/-] font [s]ettings [t]heme [g <chapterId>] [q]uit > "

// terminalReader drives a reader session from line commands.
type terminalReader struct {
	out     io.Writer
	errOut  io.Writer
	session *reader.Session
	prefs   reader.Preferences
	theme   theme.Theme
}

func (r *terminalReader) loop(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, readPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if quit := r.handle(ctx, strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
	}
}

// handle runs one command line and reports whether the session should end.
func (r *terminalReader) handle(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case "q", "quit":
		return true
	case "n", "next":
		r.move(r.session.Next(ctx))
	case "p", "prev":
		r.move(r.session.Prev(ctx))
	case "b", "back":
		r.move(r.session.Back(ctx))
	case "f", "forward":
		r.move(r.session.Forward(ctx))
	case "g", "go":
		current := r.session.Navigator().Current()
		if arg == "" {
			r.warn("usage: g <chapterId>")
			return false
		}
		r.show(r.session.Open(ctx, reader.Target{NovelId: current.Target.NovelId, ChapterId: strings.TrimSpace(arg)}))
	case "+":
		r.prefs.IncreaseFont()
		r.show(r.session.Navigator().Current())
	case "-":
		r.prefs.DecreaseFont()
		r.show(r.session.Navigator().Current())
	case "s", "settings":
		r.prefs.ToggleSettings()
		r.show(r.session.Navigator().Current())
	case "t", "theme":
		r.theme = r.theme.Next()
		r.show(r.session.Navigator().Current())
	case "":
	default:
		r.warn(fmt.Sprintf("unknown command %q", command))
	}
	return false
}

func (r *terminalReader) move(snap reader.Snapshot, ok bool) {
	if !ok {
		r.warn("nothing there")
		return
	}
	r.show(snap)
}

func (r *terminalReader) warn(msg string) {
	color.New(color.FgYellow).Fprintln(r.errOut, msg)
}

func (r *terminalReader) show(snap reader.Snapshot) {
	if snap.State != reader.Ready {
		color.New(color.FgRed).Fprintln(r.errOut, snap.Message())
		return
	}

	titleColor(r.theme).Fprintln(r.out, snap.Chapter.Title)
	if r.prefs.ShowSettings {
		color.New(color.FgHiBlack).Fprintf(r.out, "Font size: %dpx  Theme: %s\n", r.prefs.FontSize, r.theme)
	}
	fmt.Fprintln(r.out)

	body, err := text.PlainText(snap.Chapter.Content)
	if err != nil {
		r.warn(err.Error())
		body = snap.Chapter.Content
	}
	fmt.Fprintln(r.out, body)
	fmt.Fprintln(r.out)

	nav := color.New(color.FgHiBlack)
	if prev := snap.Prev(); prev != nil {
		nav.Fprintf(r.out, "< Previous: %s\n", prev.Title)
	}
	if next := snap.Next(); next != nil {
		nav.Fprintf(r.out, "> Next: %s\n", next.Title)
	}
}

func titleColor(t theme.Theme) *color.Color {
	switch t {
	case theme.Dark:
		return color.New(color.Bold, color.FgHiWhite)
	case theme.Sepia:
		return color.New(color.Bold, color.FgYellow)
	default:
		return color.New(color.Bold, color.FgBlue)
	}
}
