package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans2d/core"
)

var errMissing = errors.New("missing parameter")

// prompter asks for values on the console. In batch mode every question
// fails with errMissing.
type prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	batch bool
}

func newPrompter(in io.Reader, out io.Writer, batch bool) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out, batch: batch}
}

func (p *prompter) line(question, flagName string) (string, error) {
	if p.batch {
		return "", fmt.Errorf("%w: -%s", errMissing, flagName)
	}
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: -%s (end of input)", errMissing, flagName)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) int(question, flagName string) (int, error) {
	s, err := p.line(question, flagName)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", flagName, err)
	}
	return v, nil
}

func (p *prompter) seeds(k int) ([]core.Point, error) {
	if !p.batch {
		fmt.Fprintln(p.out, "\nInitializing centroids:")
	}
	seeds := make([]core.Point, 0, k)
	for i := range k {
		s, err := p.line(fmt.Sprintf("Enter coordinates for centroid %d (x y): ", i+1), "seeds")
		if err != nil {
			return nil, err
		}
		pt, err := parsePair(s)
		if err != nil {
			return nil, fmt.Errorf("centroid %d: %w", i+1, err)
		}
		seeds = append(seeds, pt)
	}
	return seeds, nil
}
