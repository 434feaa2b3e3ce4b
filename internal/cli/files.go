package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudvault/cloudvault-cli/internal/api"
	"github.com/cloudvault/cloudvault-cli/internal/dashboard"
	"github.com/cloudvault/cloudvault-cli/internal/progress"
)

// newFilesCmd creates the 'files' command group.
func newFilesCmd() *cobra.Command {
	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "File operations (list, upload, download, delete)",
		Long:  `Commands for managing files stored in CloudVault.`,
	}

	filesCmd.AddCommand(newFilesListCmd())
	filesCmd.AddCommand(newFilesUploadCmd())
	filesCmd.AddCommand(newFilesDownloadCmd())
	filesCmd.AddCommand(newFilesDeleteCmd())

	return filesCmd
}

// refreshDashboard fetches the listing and renders cards plus the storage
// bar. Upload and delete call this after a successful mutation; the
// refetch is the only way the cached list ever changes.
func refreshDashboard(ctx context.Context, client *api.Client) error {
	ctrl := dashboard.New(client, os.Stdout)
	if err := ctrl.Refresh(ctx); err != nil {
		return mapAuthErr(err)
	}
	ctrl.RenderAll()
	return nil
}

// newFilesListCmd creates the 'files list' command.
func newFilesListCmd() *cobra.Command {
	var searchQuery string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your stored files",
		Long: `List your stored files with the storage usage bar.

Search and sort run locally on the fetched listing; neither issues an
extra request.

Examples:
  cloudvault files list
  cloudvault files list --search report
  cloudvault files list --sort size`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := newAuthedClient()
			if err != nil {
				return err
			}

			var key dashboard.SortKey
			if sortBy != "" {
				var ok bool
				if key, ok = dashboard.ParseSortKey(sortBy); !ok {
					return fmt.Errorf("--sort must be one of name, size, date")
				}
			}

			fmt.Fprintf(os.Stderr, "⏳ Loading files for %s...\n", sess.DisplayName)

			ctrl := dashboard.New(client, cmd.OutOrStdout())
			if err := ctrl.Refresh(GetContext()); err != nil {
				return mapAuthErr(err)
			}

			view := dashboard.Search(ctrl.Files(), searchQuery)
			if sortBy != "" {
				view = dashboard.Sort(view, key)
			}
			ctrl.Render(view)
			return nil
		},
	}

	cmd.Flags().StringVar(&searchQuery, "search", "", "Show only names containing this text (case-insensitive)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by name, size, or date")

	return cmd
}

// validateUploadSize applies the advisory client-side cap before any
// network call. The backend enforces the authoritative limit.
func validateUploadSize(path string, capMB int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > capMB*1024*1024 {
		return fmt.Errorf("%s is too large: maximum size is %d MB", filepath.Base(path), capMB)
	}
	return nil
}

// newFilesUploadCmd creates the 'files upload' command.
func newFilesUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file> [file...]",
		Short: "Upload files to CloudVault",
		Long: `Upload one or more local files.

Files above the client-side cap (50 MB by default) are rejected before any
request is made. After a successful upload the listing is refetched and
rendered.

Examples:
  cloudvault files upload report.pdf
  cloudvault files upload photo1.jpg photo2.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Reject every oversized file before touching the network.
			for _, path := range args {
				if err := validateUploadSize(path, cfg.UploadCapMB); err != nil {
					return err
				}
			}

			for _, path := range args {
				if err := uploadOne(GetContext(), client, path, progress.NewBar()); err != nil {
					return err
				}
				fmt.Printf("✅ %s uploaded!\n", filepath.Base(path))
			}

			return refreshDashboard(GetContext(), client)
		},
	}

	return cmd
}

// uploadOne sends a single file, driving the progress reporter from the
// transfer callback. The bar starts lazily on the first update, once the
// multipart body size is known.
func uploadOne(ctx context.Context, client *api.Client, path string, rep progress.Reporter) error {
	started := false
	err := client.Upload(ctx, path, func(sent, total int64) {
		if !started {
			rep.Start(total, "⬆ "+filepath.Base(path))
			started = true
		}
		rep.Update(sent)
	})
	rep.Finish()
	return err
}

// newFilesDownloadCmd creates the 'files download' command.
func newFilesDownloadCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download <name>",
		Short: "Resolve a temporary download link for a file",
		Long: `Resolve a temporary download URL for a stored file.

By default the URL is printed for your browser. With --outdir the file is
fetched to that directory instead; the URL carries its own grant, so the
fetch needs no session token.

Examples:
  cloudvault files download report.pdf
  cloudvault files download report.pdf --outdir ./downloads`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			url, err := client.ResolveDownload(GetContext(), name)
			if err != nil {
				GetLogger().Debug().Err(err).Str("file", name).Msg("download resolve failed")
				return errors.New("download failed")
			}

			if outputDir == "" {
				fmt.Println("🔗 Temporary download link (open in your browser):")
				fmt.Println(url)
				return nil
			}

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("cannot create %s: %w", outputDir, err)
			}
			dest := filepath.Join(outputDir, filepath.Base(name))
			out, err := os.Create(dest)
			if err != nil {
				return fmt.Errorf("cannot create %s: %w", dest, err)
			}
			defer out.Close()

			rep := progress.NewBar()
			started := false
			err = client.FetchTo(GetContext(), url, out, func(got, total int64) {
				if !started {
					rep.Start(total, "⬇ "+filepath.Base(name))
					started = true
				}
				rep.Update(got)
			})
			rep.Finish()
			if err != nil {
				GetLogger().Debug().Err(err).Str("file", name).Msg("download fetch failed")
				return errors.New("download failed")
			}

			fmt.Printf("✅ Saved to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "outdir", "", "Fetch the file into this directory instead of printing the URL")

	return cmd
}

// newFilesDeleteCmd creates the 'files delete' command.
func newFilesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored file",
		Long: `Delete a stored file after confirmation.

After a successful delete the listing is refetched and rendered; a failed
delete changes nothing and issues no further requests.

Examples:
  cloudvault files delete old-report.pdf
  cloudvault files delete old-report.pdf --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			client, _, err := newAuthedClient()
			if err != nil {
				return err
			}

			if !newConfirmer(yes).Confirm(fmt.Sprintf("Delete %q?", name)) {
				fmt.Println("Cancelled.")
				return nil
			}

			if err := client.Delete(GetContext(), name); err != nil {
				GetLogger().Debug().Err(err).Str("file", name).Msg("delete request failed")
				return errors.New("delete failed")
			}

			fmt.Println("🗑  File deleted")
			return refreshDashboard(GetContext(), client)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
