package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line from a single buffered reader so no
// input is lost between prompts.
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

// PromptLine displays a prompt and reads a full line of input. The returned
// string is trimmed of surrounding whitespace. A final line without a newline
// is accepted.
func (p *prompter) PromptLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; anything other than y or yes is no.
func (p *prompter) confirm(prompt string) (bool, error) {
	answer, err := p.PromptLine(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
