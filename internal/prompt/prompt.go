package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	ErrNegative  = errors.New("value must be a non-negative number")
	ErrCancelled = errors.New("input cancelled")
)

// InvalidCountMessage is shown before re-prompting for a count.
const InvalidCountMessage = "Please enter a valid non-negative number."

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// ParseCount accepts a base-10 integer >= 0, ignoring surrounding spaces.
func ParseCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d: %w", n, ErrNegative)
	}
	return n, nil
}

// ParseYes reports whether an answer means yes.
func ParseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// stdin is shared by every line prompt so input buffered for one answer is
// still there for the next.
var stdin = bufio.NewReader(os.Stdin)

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Count asks for a non-negative integer until one is given.
func Count(label string) (int, error) {
	if !interactive() {
		return ReadCount(stdin, os.Stdout, label)
	}

	final, err := tea.NewProgram(newCountModel(label)).Run()
	if err != nil {
		return 0, fmt.Errorf("prompt failed: %w", err)
	}

	m := final.(countModel)
	if m.cancelled {
		return 0, ErrCancelled
	}
	return m.value, nil
}

// Confirm asks a yes/no question; anything but y/yes is no.
func Confirm(question string) (bool, error) {
	if !interactive() {
		return ReadConfirm(stdin, os.Stdout, question)
	}

	final, err := tea.NewProgram(newConfirmModel(question)).Run()
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.yes, nil
}

// ReadCount is the line-oriented prompt used when stdin is not a terminal.
func ReadCount(r *bufio.Reader, w io.Writer, label string) (int, error) {
	for {
		fmt.Fprintf(w, "%s: ", label)
		line, err := readLine(r)
		if err != nil {
			return 0, err
		}

		n, err := ParseCount(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(w, InvalidCountMessage)
	}
}

// ReadConfirm treats end of input as no.
func ReadConfirm(r *bufio.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s (y/n): ", question)

	line, err := readLine(r)
	if errors.Is(err, ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ParseYes(line), nil
}

// readLine returns the next line without its terminator. A final line with
// no newline still counts; ErrCancelled means nothing was left to read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if err == io.EOF {
			return "", ErrCancelled
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type countModel struct {
	label     string
	input     textinput.Model
	errMsg    string
	value     int
	done      bool
	cancelled bool
}

func newCountModel(label string) countModel {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 9
	ti.Width = 12
	ti.Focus()

	return countModel{label: label, input: ti}
}

func (m countModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m countModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			n, err := ParseCount(m.input.Value())
			if err != nil {
				m.errMsg = InvalidCountMessage
				m.input.Reset()
				return m, nil
			}
			m.value = n
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m countModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter to confirm • esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

type confirmModel struct {
	question  string
	input     textinput.Model
	yes       bool
	done      bool
	cancelled bool
}

func newConfirmModel(question string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/n"
	ti.CharLimit = 3
	ti.Width = 5
	ti.Focus()

	return confirmModel{question: question, input: ti}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.yes = ParseYes(m.input.Value())
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return questionStyle.Render(m.question+" (y/n)") + "\n" + m.input.View() + "\n"
}
