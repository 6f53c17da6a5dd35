package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/balkashynov/jobtrack/internal/models"
	"github.com/balkashynov/jobtrack/internal/photos"
)

var photoCmd = &cobra.Command{
	Use:   "photo",
	Short: "Attach, list, remove or save job photos",
}

var photoAddCmd = &cobra.Command{
	Use:   "add <job> <file>...",
	Short: "Attach image files to a job",
	Long: `Attach one or more image files to a job.

Files over the size limit (photos.max_bytes, 3 MiB by default) are rejected
one by one; files that are not images are skipped. Accepted files are saved
together in a single write.`,
	Args: cobra.MinimumNArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		in := photos.Ingester{
			MaxBytes: cfg.Photos.MaxBytes,
			Workers:  cfg.Photos.Workers,
			Log:      appLog,
		}
		res, updated, err := in.Attach(ctx, store, job.ID, args[1:])
		if err != nil {
			printErr(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		for _, r := range res.Rejected {
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s\n", r.Message)
		}
		for _, path := range res.Skipped {
			fmt.Fprintf(w, "Skipped %s (not an image)\n", filepath.Base(path))
		}
		if updated == nil {
			fmt.Fprintln(w, "No photos added.")
			return
		}
		fmt.Fprintf(w, "📷 Added %d photo(s) to %s (%d total)\n", len(res.Photos), updated.JobName, len(updated.Photos))
	}),
}

var photoListCmd = &cobra.Command{
	Use:     "ls <job>",
	Aliases: []string{"list"},
	Short:   "List a job's photos",
	Args:    cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, err := resolveJob(args[0])
		if err != nil {
			printErr(cmd, err)
			return
		}

		w := cmd.OutOrStdout()
		if len(job.Photos) == 0 {
			fmt.Fprintln(w, "No photos.")
			return
		}
		for i, p := range job.Photos {
			mime, data, err := photos.Decode(p)
			if err != nil {
				fmt.Fprintf(w, "%2d. (unreadable: %v)\n", i+1, err)
				continue
			}
			fmt.Fprintf(w, "%2d. %-11s %s\n", i+1, mime, humanize.IBytes(uint64(len(data))))
		}
	}),
}

var photoRemoveCmd = &cobra.Command{
	Use:   "rm <job> <number>",
	Short: "Remove a photo by its number in 'photo ls'",
	Args:  cobra.ExactArgs(2),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, index, err := resolvePhoto(args[0], args[1])
		if err != nil {
			printErr(cmd, err)
			return
		}

		updated, err := store.RemovePhoto(job.ID, index)
		if err != nil {
			printErr(cmd, err)
			return
		}
		if updated == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: photo #%s not found\n", args[1])
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed photo #%d from %s\n", index+1, updated.JobName)
	}),
}

var photoSaveCmd = &cobra.Command{
	Use:   "save <job> <number> [file]",
	Short: "Write a photo back to a file",
	Args:  cobra.RangeArgs(2, 3),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		job, index, err := resolvePhoto(args[0], args[1])
		if err != nil {
			printErr(cmd, err)
			return
		}

		mime, data, err := photos.Decode(job.Photos[index])
		if err != nil {
			printErr(cmd, err)
			return
		}

		dest := fmt.Sprintf("%s-photo-%d%s", shortID(job.ID), index+1, photos.Extension(mime))
		if len(args) == 3 {
			dest = args[2]
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			printErr(cmd, err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💾 Saved %s (%s)\n", dest, humanize.IBytes(uint64(len(data))))
	}),
}

// resolvePhoto turns a job reference and a 1-based photo number into an index
func resolvePhoto(jobRef, number string) (*models.Job, int, error) {
	job, err := resolveJob(jobRef)
	if err != nil {
		return nil, 0, err
	}
	n, err := strconv.Atoi(number)
	if err != nil || n < 1 || n > len(job.Photos) {
		return nil, 0, fmt.Errorf("photo #%s not found (job has %d)", number, len(job.Photos))
	}
	return job, n - 1, nil
}

func init() {
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoListCmd)
	photoCmd.AddCommand(photoRemoveCmd)
	photoCmd.AddCommand(photoSaveCmd)
}
