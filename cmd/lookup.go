package cmd

import (
	"fmt"
	"strings"

	"github.com/kdnguyen/gogaku/internal/study"
	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Look up a word in the Jisho dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		term := strings.Join(args, " ")

		// A single kanji also gets stroke and reading detail.
		if study.IsKanji(term) {
			info, err := study.NewKanjiClient().Lookup(ctx, term)
			if err == nil {
				fmt.Printf("%s  (%d strokes", info.Kanji, info.StrokeCount)
				if info.JLPT > 0 {
					fmt.Printf(", JLPT N%d", info.JLPT)
				}
				fmt.Println(")")
				if len(info.Meanings) > 0 {
					fmt.Println("  meanings:", strings.Join(info.Meanings, ", "))
				}
				if len(info.KunReadings) > 0 {
					fmt.Println("  kun:", strings.Join(info.KunReadings, ", "))
				}
				if len(info.OnReadings) > 0 {
					fmt.Println("  on:", strings.Join(info.OnReadings, ", "))
				}
				fmt.Println()
			}
		}

		entries, err := study.NewDictionaryClient().Search(ctx, term)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No dictionary entries found.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s", e.Word)
			if e.Reading != "" && e.Reading != e.Word {
				fmt.Printf(" (%s)", e.Reading)
			}
			if e.PartOfSpeech != "" {
				fmt.Printf("  [%s]", e.PartOfSpeech)
			}
			fmt.Println()
			if len(e.Definitions) > 0 {
				fmt.Println("  " + strings.Join(e.Definitions, "; "))
			}
		}
		return nil
	},
}
