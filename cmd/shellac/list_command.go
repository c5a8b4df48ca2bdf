package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shellac/internal/library"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var sortFlag string
	var reverseFlag bool
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the songs in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			sortValue := sortFlag
			if sortValue == "" {
				sortValue = cfg.Library.SortBy
			}
			key, err := library.ParseSortKey(sortValue)
			if err != nil {
				return err
			}
			reverse := reverseFlag
			if !cmd.Flags().Changed("reverse") {
				reverse = cfg.Library.SortReverse
			}

			lib, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			songs := lib.Songs()
			library.SortSongs(songs, key, reverse)

			out := cmd.OutOrStdout()
			if jsonFlag {
				return writeSongsJSON(out, songs)
			}
			if len(songs) == 0 {
				fmt.Fprintln(out, "Library is empty")
				return nil
			}
			fmt.Fprintln(out, renderSongTable(songs))
			return nil
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort key: title, artist, album, or downloaded")
	cmd.Flags().BoolVar(&reverseFlag, "reverse", false, "Reverse the sort order")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the song list as JSON")
	return cmd
}

type songListEntry struct {
	Path         string `json:"path"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	Album        string `json:"album"`
	VideoID      string `json:"video_id"`
	Cropped      bool   `json:"cropped"`
	Edited       bool   `json:"edited"`
	Hidden       bool   `json:"hidden"`
	DownloadedAt int64  `json:"downloaded_at"`
}

func writeSongsJSON(out io.Writer, songs []*library.Song) error {
	entries := make([]songListEntry, 0, len(songs))
	for _, song := range songs {
		entries = append(entries, songListEntry{
			Path:         song.Path,
			Title:        song.Metadata.Title,
			Artist:       song.Metadata.Artist,
			Album:        song.Metadata.Album,
			VideoID:      song.Metadata.VideoID,
			Cropped:      song.Metadata.Cropped,
			Edited:       song.Metadata.Edited,
			Hidden:       song.IsHidden(),
			DownloadedAt: song.Metadata.DownloadedAt,
		})
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func renderSongTable(songs []*library.Song) string {
	rows := make([][]string, 0, len(songs))
	for _, song := range songs {
		rows = append(rows, []string{
			song.Metadata.Title,
			song.Metadata.Artist,
			song.Metadata.Album,
			formatDownloadTime(song.Metadata.DownloadedAt),
			songStateLabel(song),
			song.Metadata.VideoID,
		})
	}
	return renderTable(
		[]string{"Title", "Artist", "Album", "Downloaded", "State", "Video ID"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	)
}

func formatDownloadTime(unix int64) string {
	if unix == 0 {
		return "unknown"
	}
	return time.Unix(unix, 0).Local().Format("2006-01-02 15:04")
}

func songStateLabel(song *library.Song) string {
	var states []string
	if song.Metadata.Cropped {
		states = append(states, "cropped")
	}
	if song.Metadata.Edited {
		states = append(states, "edited")
	}
	if song.IsHidden() {
		states = append(states, "hidden")
	}
	if len(states) == 0 {
		return "-"
	}
	return strings.Join(states, ", ")
}
