package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/filipexyz/folio/internal/cli/display"
	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/gallery"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the gallery interactively",
	Long: `Browse the project gallery interactively.

Enter a filter number or name on each line to switch category, r to reload
the current filter, and q to quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		ctrl := newGallery(domain.FilterAll)
		renderer := display.NewGalleryRenderer(colors)

		unsubscribe := ctrl.Subscribe(func(s gallery.State) {
			if jsonOutput {
				printJSON(newGalleryOutput(s))
				return
			}
			if !s.Loading {
				out.Print("\n" + renderer.Filters(s.Category) + "\n\n")
			}
			out.Print(renderer.State(s))
		})
		defer unsubscribe()

		ctrl.Start(ctx)

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				select {
				case lines <- scanner.Text():
				case <-ctx.Done():
					return
				}
			}
		}()

		for {
			out.Print("filter> ")

			var line string
			select {
			case <-ctx.Done():
				out.Print("\n")
				return
			case l, ok := <-lines:
				if !ok {
					out.Print("\n")
					return
				}
				line = strings.TrimSpace(l)
			}

			switch strings.ToLower(line) {
			case "":
				continue
			case "q", "quit", "exit":
				return
			case "r", "reload":
				ctrl.Refresh(ctx)
				continue
			}

			f, err := parseFilterInput(line)
			if err != nil {
				out.Warn("%v", err)
				continue
			}
			ctrl.SetCategory(ctx, f)
		}
	},
}

// parseFilterInput accepts a 1-based filter button number or a filter name.
func parseFilterInput(s string) (domain.Filter, error) {
	filters := domain.Filters()
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(filters) {
			return "", fmt.Errorf("no filter %d: choose 1-%d", n, len(filters))
		}
		return filters[n-1], nil
	}
	return domain.ParseFilter(strings.ToLower(s))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
