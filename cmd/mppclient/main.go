// Command mppclient is a minimal interactive front end (§6.4): it prompts
// for a noun, validates it's in the Malayalam Unicode block, sends ISSING
// then FOF, and prints both results. It contains no protocol logic of its
// own -- it only drives mpp.Client.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/vcarri/mppd/mpp"
)

// isMalayalam reports whether s is non-empty and every rune in it lies in
// the Malayalam Unicode block, U+0D00-U+0D7F.
func isMalayalam(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x0D00 || r > 0x0D7F {
			return false
		}
	}
	return true
}

func main() {
	addr := flag.String("addr", "127.0.0.1:7500", "mppserver address")
	flag.Parse()

	client := mpp.NewClient(*addr)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("mppclient: enter a Malayalam noun, or an empty line to quit")
	for {
		fmt.Print("noun> ")
		if !scanner.Scan() {
			break
		}
		noun := strings.TrimSpace(scanner.Text())
		if noun == "" {
			fmt.Println("bye")
			os.Exit(0)
		}
		if !isMalayalam(noun) {
			fmt.Fprintln(os.Stderr, "not a Malayalam noun, try again")
			continue
		}
		if err := query(client, noun); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "input error:", err)
		os.Exit(1)
	}
}

func query(client *mpp.Client, noun string) error {
	singular, err := client.IsSingular([]byte(noun))
	if err != nil {
		return fmt.Errorf("ISSING: %w", err)
	}
	fmt.Printf("ISSING %s -> %t\n", noun, singular)

	opposite, err := client.FindOpposite([]byte(noun))
	if err != nil {
		return fmt.Errorf("FOF: %w", err)
	}
	fmt.Printf("FOF %s -> %s\n", noun, opposite)
	return nil
}
