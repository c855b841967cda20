package cmd

import (
	"fmt"
	"io"
	"novel-reader/library"
	"novel-reader/template"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List the novels in the library",
	Long:  "List every novel of the library index in index order",
	Args:  cobra.NoArgs,
	RunE:  runLibrary,
}

func init() {
	RootCmd.AddCommand(libraryCmd)
}

func runLibrary(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	view := library.New(newSource())
	view.OnChange(func(state library.State) {
		if state == library.Loading {
			color.New(color.FgHiBlack).Fprintln(cmd.ErrOrStderr(), template.LibraryLoadingMessage)
		}
	})

	if err := view.Load(cmd.Context()); err != nil {
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), "Error: "+view.ErrorMessage())
		return fmt.Errorf("failed to load library: %w", err)
	}

	cards := view.Cards()
	if len(cards) == 0 {
		fmt.Fprintln(out, "The library is empty.")
		return nil
	}
	for _, card := range cards {
		printCard(out, card)
	}
	return nil
}

func printCard(w io.Writer, card library.Card) {
	color.New(color.Bold, color.FgCyan).Fprintln(w, card.Title)
	fmt.Fprintf(w, "  by %s\n", card.Author)
	if len(card.Tags) > 0 {
		color.New(color.FgYellow).Fprintf(w, "  %s\n", strings.Join(card.Tags, ", "))
	}
	cover := "No Cover"
	if card.HasCover() {
		cover = card.CoverUrl
	}
	color.New(color.FgHiBlack).Fprintf(w, "  %s  %s\n", card.Link(), cover)
}
