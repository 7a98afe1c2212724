package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"captions/internal/captionload"
	"captions/internal/config"
	"captions/internal/cueexport"
	"captions/internal/dfxp"
)

const formatTable = "table"

func newParseCommand(ctx *commandContext) *cobra.Command {
	var format string
	var outputPath string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a timed-text document into cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))
			outputPath = strings.TrimSpace(outputPath)
			if format == "" {
				format = formatTable
				if outputPath != "" {
					format = cfg.Export.DefaultFormat
				}
			}
			if format == formatTable && outputPath != "" {
				return fmt.Errorf("table output cannot be written to a file; use --format json or srt")
			}
			var exportFormat cueexport.Format
			if format != formatTable {
				if exportFormat, err = cueexport.ParseFormat(format); err != nil {
					return err
				}
			}

			store, err := ctx.openCache(noCache)
			if err != nil {
				return fmt.Errorf("open cue cache: %w", err)
			}
			if store != nil {
				defer store.Close()
			}
			loader, err := ctx.newLoader(store, 0)
			if err != nil {
				return err
			}

			result, err := loadArgument(cmd, loader, args[0])
			if err != nil {
				return err
			}

			opts := cueexport.Options{FallbackSeconds: cfg.Export.FallbackDisplaySeconds}
			out := cmd.OutOrStdout()
			switch {
			case outputPath != "":
				target, err := config.ExpandPath(outputPath)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				if err := cueexport.WriteFile(target, exportFormat, result.Cues, opts); err != nil {
					return fmt.Errorf("write %s: %w", target, err)
				}
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderStatusLine("Output", statusOK, target, colorize))
				fmt.Fprintln(out, renderStatusLine("Cues", statusInfo, strconv.Itoa(len(result.Cues)), colorize))
				fmt.Fprintln(out, renderStatusLine("Cache", statusInfo, cacheLabel(result), colorize))
				return nil
			case format == formatTable:
				fmt.Fprintln(out, renderCueTable(result.Cues))
				return nil
			default:
				return cueexport.Write(out, exportFormat, result.Cues, opts)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table, json or srt")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write cues to this file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the cue cache")
	return cmd
}

func loadArgument(cmd *cobra.Command, loader *captionload.Service, arg string) (*captionload.Result, error) {
	if arg == "-" {
		return loader.LoadReader(cmd.Context(), cmd.InOrStdin(), "stdin")
	}
	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, fmt.Errorf("resolve input path: %w", err)
	}
	return loader.LoadFile(cmd.Context(), path)
}

func cacheLabel(result *captionload.Result) string {
	if result.Cached {
		return "hit"
	}
	return "miss"
}

func renderCueTable(cues []dfxp.Cue) string {
	rows := make([][]string, 0, len(cues))
	for i, cue := range cues {
		end, duration := "-", "-"
		if value, ok := cue.EndTime(); ok {
			end = formatSeconds(value)
			duration = formatSeconds(cue.Duration())
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			formatSeconds(cue.Begin),
			end,
			duration,
			strings.ReplaceAll(cue.Text, "\r\n", " / "),
		})
	}
	return renderTable(
		[]string{"#", "Begin", "End", "Duration", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}
