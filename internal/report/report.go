package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/lottopick/internal/engine"
	"github.com/verte-zerg/lottopick/internal/frequency"
	"github.com/verte-zerg/lottopick/internal/model"
)

const (
	terminalWidthBackup = 80
	columnGap           = 4
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	poolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options controls report layout.
type Options struct {
	Direction  model.Direction
	SelectSize int
	// Width pads every number to this many cells. Zero uses the widest pool number.
	Width int
	// TotalWidth is the line budget for laying out games in columns. Zero
	// queries the terminal.
	TotalWidth int
	Color      bool
}

// NumberWidth returns the display width of the widest number in the pool.
func NumberWidth(pool model.Pool) int {
	width := 1
	for _, n := range pool {
		if w := len(strconv.Itoa(n)); w > width {
			width = w
		}
	}
	return width
}

// FormatNumbers right-aligns each number to width and joins them with single spaces.
func FormatNumbers(numbers []int, width int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = padCell(strconv.Itoa(n), width, true)
	}
	return strings.Join(parts, " ")
}

// FormatGames renders one line per game, numbers padded to width.
func FormatGames(games model.GameSet, width int) []string {
	lines := make([]string, len(games))
	for i, g := range games {
		lines[i] = FormatNumbers(g, width)
	}
	return lines
}

// FormatFrequencies renders the frequency table ordered by number.
func FormatFrequencies(table frequency.Table) []string {
	entries := table.Entries()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(e.Number), strconv.Itoa(e.Frequency)}
	}
	return FormatTable([]string{"Number", "Frequency"}, rows, map[int]bool{0: true, 1: true})
}

// Columns returns how many cells of cellWidth fit in totalWidth, at least one.
func Columns(totalWidth, cellWidth int) int {
	if cellWidth <= 0 || totalWidth <= cellWidth {
		return 1
	}
	return (totalWidth + columnGap) / (cellWidth + columnGap)
}

// Lines builds the full report as plain or styled lines.
func Lines(res engine.Result, opts Options) []string {
	width := opts.Width
	if width <= 0 {
		width = NumberWidth(res.Pool)
	}
	style := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	lines := []string{
		style(titleStyle, fmt.Sprintf("Pool: %d %s frequent numbers", len(res.Pool), opts.Direction)),
		style(poolStyle, FormatNumbers(res.Pool, width)),
	}
	if res.Truncated() {
		lines = append(lines, style(noticeStyle,
			fmt.Sprintf("Only %d numbers available (requested %d).", len(res.Pool), res.Requested)))
	}
	lines = append(lines, "",
		style(titleStyle, fmt.Sprintf("Games: %d (choose %d)", len(res.Games), opts.SelectSize)))

	indexWidth := len(strconv.Itoa(len(res.Games)))
	games := FormatGames(res.Games, width)
	cells := make([]string, len(games))
	cellWidth := 0
	for i, g := range games {
		label := padCell(strconv.Itoa(i+1), indexWidth, true) + "."
		cells[i] = style(indexStyle, label) + " " + g
		if w := indexWidth + 2 + displayWidth(g); w > cellWidth {
			cellWidth = w
		}
	}

	total := opts.TotalWidth
	if total <= 0 {
		total = terminalWidth()
	}
	cols := Columns(total, cellWidth)
	gap := strings.Repeat(" ", columnGap)
	for start := 0; start < len(cells); start += cols {
		end := min(start+cols, len(cells))
		lines = append(lines, strings.Join(cells[start:end], gap))
	}
	return lines
}

// Render writes the report to w.
func Render(w io.Writer, res engine.Result, opts Options) error {
	for _, line := range Lines(res, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// ShouldUseColor reports whether w is a terminal and NO_COLOR is unset.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
