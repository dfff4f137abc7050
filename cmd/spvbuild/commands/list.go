package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/ui/output"
	"go.trai.ch/spvbuild/internal/ui/style"
)

const missingLabel = "missing"

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the shader jobs and the state of their outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			artifacts, err := c.app.List(cmd.Context(), c.options())
			if err != nil {
				return err
			}
			renderArtifacts(cmd.OutOrStdout(), artifacts)
			return nil
		},
	}
}

func renderArtifacts(w io.Writer, artifacts []domain.Artifact) {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ProfileFor(w))

	header := r.NewStyle().Foreground(style.Heading).Bold(true).PaddingRight(2)
	cell := r.NewStyle().PaddingRight(2)
	missing := cell.Foreground(style.Missing)

	wd, _ := os.Getwd()

	rows := make([][]string, 0, len(artifacts))
	for _, a := range artifacts {
		size, digest := "-", missingLabel
		if a.Exists {
			size = strconv.FormatInt(a.Size, 10) + " B"
			digest = a.Digest
		}
		rows = append(rows, []string{
			a.Job.Name(),
			displayPath(wd, a.Job.Source),
			displayPath(wd, a.Job.Output),
			size,
			digest,
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("JOB", "SOURCE", "OUTPUT", "SIZE", "DIGEST").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 4 && !artifacts[row].Exists:
				return missing
			default:
				return cell
			}
		})

	_, _ = fmt.Fprintln(w, t.Render())
}

// displayPath shortens p to a path relative to wd when p lies below it.
func displayPath(wd, p string) string {
	if wd == "" {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}
