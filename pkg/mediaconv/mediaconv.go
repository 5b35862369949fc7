// Package mediaconv converts QuickTime .mov gallery videos into web
// friendly .mp4 files with ffmpeg.
package mediaconv

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/saracen/walker"
	"github.com/wedsite/wedsite/pkg/clog"
	"golang.org/x/sync/errgroup"
)

const DefaultFFmpeg = "ffmpeg"

// Runner runs an external command.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, sending their output to Stdout
// and Stderr.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

type Options struct {
	FFmpeg string
	Force  bool
	DryRun bool
	Jobs   int
}

// Job is one conversion.
type Job struct {
	Source string
	Target string
}

type Report struct {
	Converted []Job
	Skipped   []Job
	Failed    []Failure
}

type Failure struct {
	Job
	Err error
}

type Converter struct {
	runner Runner
	opts   Options
}

func NewConverter(runner Runner, opts Options) *Converter {
	if opts.FFmpeg == "" {
		opts.FFmpeg = DefaultFFmpeg
	}

	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	return &Converter{runner: runner, opts: opts}
}

// TargetPath is src with its extension replaced by .mp4.
func TargetPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".mp4"
}

// FFmpegArgs are the arguments converting src into an H.264/AAC mp4 that
// can start playing before it is fully downloaded.
func FFmpegArgs(src, dst string) []string {
	return []string{"-y", "-i", src, "-c:v", "libx264", "-c:a", "aac", "-movflags", "+faststart", dst}
}

// FindMovies returns every .mov file under root, matched case
// insensitively, in lexical order. A leading ~ in root is expanded.
func FindMovies(ctx context.Context, root string) ([]string, error) {
	root, err := homedir.Expand(root)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		found []string
	)

	walkFn := func(pathname string, fi os.FileInfo) error {
		if fi.Mode().IsRegular() && strings.EqualFold(filepath.Ext(pathname), ".mov") {
			mu.Lock()
			found = append(found, pathname)
			mu.Unlock()
		}
		return nil
	}

	errCallback := walker.WithErrorCallback(func(pathname string, err error) error {
		clog.UsingCtx("movconv").Warnf("Skipping %s: %s", pathname, err)
		return nil
	})

	if err := walker.WalkWithContext(ctx, root, walkFn, errCallback); err != nil {
		return nil, fmt.Errorf("unable to walk %s: %w", root, err)
	}

	sort.Strings(found)
	return found, nil
}

// Plan splits the movies under root into jobs to run and jobs skipped
// because an mp4 at least as new as the source already exists.
func (c *Converter) Plan(ctx context.Context, root string) (todo, skipped []Job, err error) {
	movies, err := FindMovies(ctx, root)
	if err != nil {
		return nil, nil, err
	}

	for _, src := range movies {
		job := Job{Source: src, Target: TargetPath(src)}
		if !c.opts.Force && upToDate(job) {
			skipped = append(skipped, job)
			continue
		}
		todo = append(todo, job)
	}

	return todo, skipped, nil
}

// Convert runs every planned job with at most Jobs ffmpeg processes at a
// time. A failed job is reported and the rest still run.
func (c *Converter) Convert(ctx context.Context, root string) (Report, error) {
	todo, skipped, err := c.Plan(ctx, root)
	if err != nil {
		return Report{}, err
	}

	report := Report{Skipped: skipped}
	if c.opts.DryRun {
		report.Converted = todo
		return report, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Jobs)

	for _, job := range todo {
		job := job
		g.Go(func() error {
			clog.UsingCtx("movconv").Infof("Converting %s -> %s", job.Source, job.Target)
			err := c.runner.Run(gctx, c.opts.FFmpeg, FFmpegArgs(job.Source, job.Target)...)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				clog.UsingCtx("movconv").Errorf("Conversion of %s failed: %s", job.Source, err)
				report.Failed = append(report.Failed, Failure{Job: job, Err: err})
				return nil
			}

			report.Converted = append(report.Converted, job)
			return nil
		})
	}

	_ = g.Wait()

	sortJobs(report.Converted)
	sort.Slice(report.Failed, func(i, j int) bool { return report.Failed[i].Source < report.Failed[j].Source })

	return report, ctx.Err()
}

func upToDate(job Job) bool {
	dst, err := os.Stat(job.Target)
	if err != nil || dst.Size() == 0 {
		return false
	}

	src, err := os.Stat(job.Source)
	if err != nil {
		return false
	}

	return !dst.ModTime().Before(src.ModTime())
}

func sortJobs(jobs []Job) {
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Source < jobs[j].Source })
}
