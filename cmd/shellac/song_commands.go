package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shellac/internal/library"
)

func newCropCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop <video-id> <start> <end>",
		Short: "Trim a song to a time range, keeping the original",
		Long: `Trim a song to the given time range. The cut is always taken from the
pristine original copy, so cropping again re-derives from the full song
instead of shortening the previous crop. Timestamps accept plain seconds
(90), minute:second notation (1:30), or duration syntax (1m30s).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseTimestamp(args[1])
			if err != nil {
				return err
			}
			end, err := parseTimestamp(args[2])
			if err != nil {
				return err
			}
			trimmer, err := ctx.newTrimmer()
			if err != nil {
				return err
			}
			return ctx.withSong(args[0], func(song *library.Song) error {
				if err := song.Crop(cmd.Context(), trimmer, start, end); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cropped %q to %s - %s\n", song.Metadata.Title, args[1], args[2])
				return nil
			})
		},
	}
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var title, artist, album string

	cmd := &cobra.Command{
		Use:   "edit <video-id>",
		Short: "Edit a song's title, artist, or album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("artist") && !cmd.Flags().Changed("album") {
				return fmt.Errorf("nothing to edit: pass at least one of --title, --artist, --album")
			}
			return ctx.withSong(args[0], func(song *library.Song) error {
				newTitle := song.Metadata.Title
				newArtist := song.Metadata.Artist
				newAlbum := song.Metadata.Album
				if cmd.Flags().Changed("title") {
					newTitle = title
				}
				if cmd.Flags().Changed("artist") {
					newArtist = artist
				}
				if cmd.Flags().Changed("album") {
					newAlbum = album
				}
				if err := song.EditMetadata(newTitle, newArtist, newAlbum); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", song.Metadata.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&artist, "artist", "", "New artist")
	cmd.Flags().StringVar(&album, "album", "", "New album")
	return cmd
}

func newRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <video-id>",
		Short: "Restore a song's original audio and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSong(args[0], func(song *library.Song) error {
				if !song.IsModified() && !song.HasBackup() {
					return fmt.Errorf("song %q has not been modified", song.Metadata.Title)
				}
				if err := song.Restore(); err != nil {
					return err
				}
				// The restore may have undone an edit, so the in-memory
				// title can be stale. Report what is on disk now.
				meta, err := library.ReadSongFile(song.Path)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %q from its original copy\n", meta.Title)
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <video-id>",
		Short: "Delete a song and its original copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSong(args[0], func(song *library.Song) error {
				if err := song.Delete(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", song.Metadata.Title)
				return nil
			})
		},
	}
}

func newHideCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "hide <video-id>",
		Short: "Hide a song from generic media players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSong(args[0], func(song *library.Song) error {
				if err := song.Hide(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Hid %q\n", song.Metadata.Title)
				return nil
			})
		},
	}
}

func newUnhideCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unhide <video-id>",
		Short: "Make a hidden song visible again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSong(args[0], func(song *library.Song) error {
				if err := song.Unhide(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unhid %q\n", song.Metadata.Title)
				return nil
			})
		},
	}
}
