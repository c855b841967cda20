package cmd

import (
	"errors"
	"fmt"
	"io"
	"novel-reader/publisher"
	"novel-reader/utils"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Author a novel and produce its static JSON files",
	Long: "Author a novel as a YAML draft across several commands, then print, export or pack the JSON documents " +
		"the reader fetches. Chapter positions are 1-based",
}

type publishArgs struct {
	draftPath string

	title string
	id    string
	slug  bool
	force bool

	contentFile string
	outDir      string
	outFile     string
	packDir     string
}

var pbArgs publishArgs

var publishInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Start a new draft with one empty chapter",
	Args:  cobra.NoArgs,
	RunE:  runPublishInit,
}

var publishSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a novel field (id, title, author, description, coverUrl, tags)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editDraft(func(d *publisher.Draft) error {
			return d.UpdateNovelField(args[0], args[1])
		})
	},
}

var publishChapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Edit the chapters of the draft",
}

var publishChapterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the chapters of the draft",
	Args:  cobra.NoArgs,
	RunE:  runPublishChapterList,
}

var publishChapterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a chapter",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editDraft(func(d *publisher.Draft) error {
			d.AddChapter()
			fmt.Fprintln(cmd.OutOrStdout(), d.Chapters[len(d.Chapters)-1].Id)
			return nil
		})
	},
}

var publishChapterRmCmd = &cobra.Command{
	Use:   "rm <position>",
	Short: "Remove a chapter; the others keep their order numbers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return editDraft(func(d *publisher.Draft) error {
			return d.RemoveChapter(index)
		})
	},
}

var publishChapterSetCmd = &cobra.Command{
	Use:   "set <position> <field> [value]",
	Short: "Set a chapter field (id, title, content, order)",
	Long:  "Set a chapter field (id, title, content, order). With --file the value is read from a file, or stdin for -",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runPublishChapterSet,
}

var publishChapterRenumberCmd = &cobra.Command{
	Use:   "renumber",
	Short: "Rewrite every chapter order to its position",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editDraft(func(d *publisher.Draft) error {
			d.Renumber()
			return nil
		})
	},
}

var publishEntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Print the library entry to append to novels/novels.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDraftJSON(cmd.OutOrStdout(), (*publisher.Draft).SerializeNovelEntry)
	},
}

var publishMetaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Print novels/{novelId}/meta.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDraftJSON(cmd.OutOrStdout(), (*publisher.Draft).SerializeMetadata)
	},
}

var publishChapterJSONCmd = &cobra.Command{
	Use:   "chapter-json <position>",
	Short: "Print novels/{novelId}/{chapterId}.json for one chapter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return printDraftJSON(cmd.OutOrStdout(), func(d *publisher.Draft) ([]byte, error) {
			if index < 0 || index >= len(d.Chapters) {
				return nil, fmt.Errorf("%w %d", publisher.ErrNoChapter, index)
			}
			return d.SerializeChapter(d.Chapters[index])
		})
	},
}

var publishExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the draft's JSON files under a site directory",
	Args:  cobra.NoArgs,
	RunE:  runPublishExport,
}

var publishPackCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack the draft, or an exported directory, into a zip archive",
	Args:  cobra.NoArgs,
	RunE:  runPublishPack,
}

func init() {
	publishCmd.PersistentFlags().StringVarP(&pbArgs.draftPath, "draft", "d", "draft.yaml", "draft file")

	publishInitCmd.Flags().StringVarP(&pbArgs.title, "title", "t", "", "novel title")
	publishInitCmd.Flags().StringVar(&pbArgs.id, "id", "", "novel id")
	publishInitCmd.Flags().BoolVar(&pbArgs.slug, "slug", false, "derive the novel id from the title when --id is not given")
	publishInitCmd.Flags().BoolVarP(&pbArgs.force, "force", "f", false, "overwrite an existing draft")

	publishChapterSetCmd.Flags().StringVar(&pbArgs.contentFile, "file", "", "read the value from a file, - for stdin")

	publishExportCmd.Flags().StringVarP(&pbArgs.outDir, "out", "o", ".", "site directory to write novels/ into")

	publishPackCmd.Flags().StringVarP(&pbArgs.outFile, "out", "o", "", "archive path, defaults to {novelId}.zip")
	publishPackCmd.Flags().StringVar(&pbArgs.packDir, "dir", "", "pack an exported directory instead of the draft")

	publishChapterCmd.AddCommand(publishChapterListCmd)
	publishChapterCmd.AddCommand(publishChapterAddCmd)
	publishChapterCmd.AddCommand(publishChapterRmCmd)
	publishChapterCmd.AddCommand(publishChapterSetCmd)
	publishChapterCmd.AddCommand(publishChapterRenumberCmd)

	publishCmd.AddCommand(publishInitCmd)
	publishCmd.AddCommand(publishSetCmd)
	publishCmd.AddCommand(publishChapterCmd)
	publishCmd.AddCommand(publishEntryCmd)
	publishCmd.AddCommand(publishMetaCmd)
	publishCmd.AddCommand(publishChapterJSONCmd)
	publishCmd.AddCommand(publishExportCmd)
	publishCmd.AddCommand(publishPackCmd)
	RootCmd.AddCommand(publishCmd)
}

func runPublishInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(pbArgs.draftPath); err == nil && !pbArgs.force {
		return fmt.Errorf("draft %v already exists, use --force to overwrite", pbArgs.draftPath)
	}

	d := publisher.New()
	if err := d.UpdateNovelField("title", pbArgs.title); err != nil {
		return err
	}
	id := pbArgs.id
	if id == "" && pbArgs.slug {
		id = utils.Slug(pbArgs.title)
	}
	if err := d.UpdateNovelField("id", id); err != nil {
		return err
	}
	if err := d.SaveDraft(pbArgs.draftPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "draft saved to %v\n", pbArgs.draftPath)
	return nil
}

func runPublishChapterList(cmd *cobra.Command, args []string) error {
	d, err := publisher.LoadDraft(pbArgs.draftPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, chapter := range d.Chapters {
		fmt.Fprintf(out, "%3d  %-20s  order %-3d  %s\n", i+1, chapter.Id, chapter.Order, chapter.Title)
	}
	for _, mismatch := range d.OrderMismatches() {
		color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "warning: "+mismatch.String())
	}
	return nil
}

func runPublishChapterSet(cmd *cobra.Command, args []string) error {
	index, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	field := args[1]

	var value string
	switch {
	case pbArgs.contentFile == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		value = string(b)
	case pbArgs.contentFile != "":
		b, err := os.ReadFile(pbArgs.contentFile)
		if err != nil {
			return fmt.Errorf("failed to read %v: %w", pbArgs.contentFile, err)
		}
		value = string(b)
	case len(args) == 3:
		value = args[2]
	default:
		return errors.New("a value or --file is required")
	}

	return editDraft(func(d *publisher.Draft) error {
		return d.UpdateChapterField(index, field, value)
	})
}

func runPublishExport(cmd *cobra.Command, args []string) error {
	d, err := publisher.LoadDraft(pbArgs.draftPath)
	if err != nil {
		return err
	}
	written, err := d.Export(pbArgs.outDir)
	if err != nil {
		return fmt.Errorf("failed to export draft: %w", err)
	}
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runPublishPack(cmd *cobra.Command, args []string) error {
	if pbArgs.packDir != "" {
		out := pbArgs.outFile
		if out == "" {
			out = "site.zip"
		}
		if err := utils.ZipDir(pbArgs.packDir, out); err != nil {
			return fmt.Errorf("failed to pack %v: %w", pbArgs.packDir, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	d, err := publisher.LoadDraft(pbArgs.draftPath)
	if err != nil {
		return err
	}
	out := pbArgs.outFile
	if out == "" {
		out = d.BundleName()
	}
	if err := d.Bundle(out); err != nil {
		return fmt.Errorf("failed to pack draft: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// editDraft loads the draft, applies edit and saves it back.
func editDraft(edit func(d *publisher.Draft) error) error {
	d, err := publisher.LoadDraft(pbArgs.draftPath)
	if err != nil {
		return err
	}
	if err := edit(d); err != nil {
		return err
	}
	return d.SaveDraft(pbArgs.draftPath)
}

func printDraftJSON(w io.Writer, serialize func(d *publisher.Draft) ([]byte, error)) error {
	d, err := publisher.LoadDraft(pbArgs.draftPath)
	if err != nil {
		return err
	}
	b, err := serialize(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// parsePosition turns a 1-based chapter position into an index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid chapter position %q", s)
	}
	return n - 1, nil
}
