// Package prompt collects validated numeric and material inputs from an
// interactive terminal session. It guarantees values are numeric and in range
// before they reach the computation packages.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// Prompter reads line-oriented input and re-asks until a valid value arrives.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter attached to stdin and stdout.
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO returns a Prompter over arbitrary streams, mainly for tests.
func NewWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Float asks until the user supplies any number. Negative values are valid
// here; slopes may descend against the flow direction.
func (p *Prompter) Float(label string) (float64, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a numeric value.")
			continue
		}
		return v, nil
	}
}

// PositiveFloat asks until the user supplies a number greater than zero.
func (p *Prompter) PositiveFloat(label string) (float64, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a numeric value.")
			continue
		}
		if v <= 0 {
			fmt.Fprintln(p.out, "Please enter a positive number.")
			continue
		}
		return v, nil
	}
}

// NonNegativeFloat asks until the user supplies a number of zero or more.
func (p *Prompter) NonNegativeFloat(label string) (float64, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a numeric value.")
			continue
		}
		if v < 0 {
			fmt.Fprintln(p.out, "Please enter zero or a positive number.")
			continue
		}
		return v, nil
	}
}

// Count asks until the user supplies a non-negative integer.
func (p *Prompter) Count(label string) (int, error) {
	for {
		line, err := p.readLine(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 0 {
			fmt.Fprintln(p.out, "Invalid input. Please enter a non-negative whole number.")
			continue
		}
		return n, nil
	}
}

// Material asks for a pipe material. Unrecognized names are accepted and
// resolved to the Cast Iron default, with a notice printed; this mirrors the
// traversal model's substitution policy.
func (p *Prompter) Material() (hydraulics.Material, error) {
	names := make([]string, 0, len(hydraulics.Materials()))
	for _, m := range hydraulics.Materials() {
		names = append(names, string(m))
	}
	line, err := p.readLine(fmt.Sprintf("Enter pipe material (%s): ", strings.Join(names, ", ")))
	if err != nil {
		return "", err
	}
	m, defaulted := hydraulics.ResolveMaterial(line)
	if defaulted {
		fmt.Fprintf(p.out, "Invalid material. Defaulting to '%s'.\n", m)
	}
	return m, nil
}
