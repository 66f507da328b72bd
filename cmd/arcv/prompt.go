package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// promptString asks for a string value, returning def on empty input.
func promptString(reader *bufio.Reader, label, def string) (string, error) {
	fmt.Printf("%s [%s]: ", label, def)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return def, nil
	}
	return input, nil
}

// promptInt asks for a positive integer, re-prompting on invalid input.
func promptInt(reader *bufio.Reader, label string, def int) (int, error) {
	for {
		fmt.Printf("%s [%d]: ", label, def)
		input, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return def, nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 {
			fmt.Println("Please enter a positive number.")
			continue
		}
		return n, nil
	}
}

// confirm asks a yes/no question, defaulting to no.
func confirm(prompt string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes", nil
}
