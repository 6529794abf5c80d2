/*
Package main is the terminal client for the dealchat server.

It drives the session controller: login (or resume from the locally persisted
identity), a fixed-interval poll loop that reprints the conversation whenever
it changes, and line commands for sending text, uploading images, and logging out.
*/
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"dealchat/internal/app/store"
	"dealchat/internal/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "base URL of the chat server")
	flag.Parse()

	session := client.NewSession(client.NewAPI(*serverURL), "")

	reader := bufio.NewScanner(os.Stdin)

	if session.Resume() {
		fmt.Printf("Resumed session as %s\n", session.Username())
	} else {
		if err := login(session, reader); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Logged in as %s\n", session.Username())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session.OnUpdate = renderer(session.Username())

	go func() {
		err := session.Run(ctx, func(err error) {
			fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
		})
		if err != nil && ctx.Err() == nil {
			log.Fatal(err)
		}
	}()

	fmt.Println("Commands: /image <path>, /logout, /quit. Anything else is sent as a message.")

	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit":
			return
		case line == "/logout":
			session.Logout()
			fmt.Println("Logged out.")
			return
		case strings.HasPrefix(line, "/image "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/image "))
			if err := session.SendImage(ctx, path); err != nil {
				fmt.Fprintf(os.Stderr, "image send failed: %v\n", err)
			}
		default:
			if err := session.SendText(ctx, line); err != nil {
				fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
			}
		}
	}
}

func login(session *client.Session, reader *bufio.Scanner) error {
	fmt.Print("Username: ")
	if !reader.Scan() {
		return fmt.Errorf("no username provided")
	}
	username := strings.TrimSpace(reader.Text())

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	return session.Login(context.Background(), username, string(password))
}

// renderer reprints the conversation whenever the polled window changes.
// The view is replaced wholesale on every poll, so tracking the last seen
// tail is enough to detect change.
func renderer(self string) func([]store.Message) {
	var lastLen int
	var lastID string

	return func(messages []store.Message) {
		tailID := ""
		if len(messages) > 0 {
			tailID = messages[len(messages)-1].ID.String()
		}
		if len(messages) == lastLen && tailID == lastID {
			return
		}
		lastLen = len(messages)
		lastID = tailID

		fmt.Println("----------------------------------------")
		for _, msg := range messages {
			who := msg.From
			if msg.From == self {
				who = "you"
			}
			stamp := msg.Timestamp.Local().Format("15:04")
			if msg.Kind == store.KindImage && msg.ImageURL != nil {
				fmt.Printf("[%s] %s: [image] %s\n", stamp, who, *msg.ImageURL)
			} else {
				fmt.Printf("[%s] %s: %s\n", stamp, who, msg.Content)
			}
		}
	}
}
