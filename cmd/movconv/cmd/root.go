/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/wedsite/wedsite/pkg/clog"
	"github.com/wedsite/wedsite/pkg/mediaconv"
)

var (
	force   bool
	dryRun  bool
	ffmpeg  string
	jobs    int
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "movconv [dir]",
	Short: "Convert .mov gallery videos to .mp4",
	Long: `Finds every .mov file under dir (default ./public/gallery) and converts it
to an H.264/AAC .mp4 next to the original with ffmpeg. Files whose .mp4 is
already newer than the source are skipped unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "public/gallery"
		if len(args) == 1 {
			dir = args[0]
		}

		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		converter := mediaconv.NewConverter(
			mediaconv.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
			mediaconv.Options{FFmpeg: ffmpeg, Force: force, DryRun: dryRun, Jobs: jobs},
		)

		report, err := converter.Convert(cmd.Context(), dir)
		if err != nil {
			log.Fatalf("movconv: %s", err)
		}

		verb := "Converted"
		if dryRun {
			verb = "Would convert"
		}

		for _, job := range report.Converted {
			fmt.Printf("%s %s -> %s\n", verb, job.Source, job.Target)
		}

		for _, job := range report.Skipped {
			clog.UsingCtx("movconv").Debugf("Up to date: %s", job.Target)
		}

		fmt.Printf("%d converted, %d up to date, %d failed\n", len(report.Converted), len(report.Skipped), len(report.Failed))

		if len(report.Failed) > 0 {
			for _, f := range report.Failed {
				log.Errorf("%s: %s", f.Source, f.Err)
			}
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "convert even when an up to date .mp4 exists")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list what would be converted without running ffmpeg")
	rootCmd.Flags().StringVar(&ffmpeg, "ffmpeg", mediaconv.DefaultFFmpeg, "ffmpeg binary to run")
	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "number of conversions to run at once")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log skipped files")
}
