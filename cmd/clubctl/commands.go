package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"motorsport.az/club-web/internal/coerce"
	"motorsport.az/club-web/internal/markup"
	"motorsport.az/club-web/internal/media"
	"motorsport.az/club-web/internal/nav"
	"motorsport.az/club-web/internal/textnorm"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clubctl",
		Short:         "Inspect how the club site interprets CMS content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newNormalizeCmd(),
		newResolveCmd(),
		newYouTubeCmd(),
		newMarkupCmd(),
		newStatusCmd(),
	)
	return root
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <text>...",
		Short: "Print the comparison form of each argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, a := range args {
				fmt.Fprintln(cmd.OutOrStdout(), textnorm.Normalize(a))
			}
			return nil
		},
	}
}

func newResolveCmd() *cobra.Command {
	var (
		label  string
		def    string
		origin string
	)
	cmd := &cobra.Command{
		Use:   "resolve <target>",
		Short: "Resolve a CMS link target to a site view",
		Example: `  clubctl resolve "#events"
  clubctl resolve "" --label "Bizimlə əlaqə"
  clubctl resolve https://motorsport.az/?view=gallery`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fallback := nav.Home
			if def != "" {
				v, ok := nav.ParseView(def)
				if !ok {
					return fmt.Errorf("unknown default view %q", def)
				}
				fallback = v
			}
			res := nav.NewResolver(origin, nav.DefaultTrustedDomains).Resolve(args[0], label, fallback)
			out := res.String()
			if out == "" {
				out = "none"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "link label used as a hint")
	cmd.Flags().StringVar(&def, "default", "", "view returned for unmatched internal targets")
	cmd.Flags().StringVar(&origin, "origin", "https://motorsport.az", "site origin treated as internal")
	return cmd
}

func newYouTubeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "youtube <url>",
		Short: "Extract the video id, embed and thumbnail URLs from a YouTube link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := media.YouTubeID(args[0])
			if id == "" {
				return errors.New("no youtube video id found")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, id)
			fmt.Fprintln(out, media.EmbedURL(id))
			fmt.Fprintln(out, media.ThumbnailURL(id))
			return nil
		},
	}
}

func newMarkupCmd() *cobra.Command {
	var sanitize bool
	cmd := &cobra.Command{
		Use:   "markup [file]",
		Short: "Convert BBCode from a file or stdin to HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				src []byte
				err error
			)
			if len(args) == 0 || args[0] == "-" {
				src, err = io.ReadAll(cmd.InOrStdin())
			} else {
				src, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			html := markup.ToHTML(string(src))
			if sanitize {
				html = markup.Sanitize(html)
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "run the output through the HTML sanitizer")
	return cmd
}

func newStatusCmd() *cobra.Command {
	var (
		date string
		now  string
	)
	cmd := &cobra.Command{
		Use:   "status [raw-status]",
		Short: "Derive planned or past from a CMS status value and event date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := time.Now()
			if strings.TrimSpace(now) != "" {
				t, ok := coerce.ParseDay(now, time.Local)
				if !ok {
					return fmt.Errorf("invalid --now %q", now)
				}
				clock = t
			}
			var raw any
			if len(args) == 1 {
				raw = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), coerce.EventStatusAt(raw, date, clock))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&now, "now", "", "reference day instead of today")
	return cmd
}
