// Command todoctl is a small terminal client for the todostack services.
// The token issued at login is cached under the user config dir; there is
// no server-side session.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/avezina/todostack/pkg/client"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: todoctl <command> [arguments]

Commands:
  register <email> <password>   create an account
  login <email> <password>      log in and cache the token
  list                          list your todos, newest first
  add <title> [description]     create a todo
  done <id>                     mark a todo done
  edit <id> <title>             retitle a todo
  rm <id>                       delete a todo

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	userBase := flag.String("user-url", "http://localhost:8081", "base URL of the user service")
	todoBase := flag.String("todo-url", "http://localhost:8082", "base URL of the todo service")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cli := client.New(*userBase, *todoBase, client.WithToken(loadToken()))
	ctx := context.Background()

	if err := run(ctx, cli, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "todoctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cli *client.Client, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) != 2 {
			return fmt.Errorf("register needs <email> <password>")
		}
		user, err := cli.Register(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("registered %s (%s)\n", user.Email, user.UUID)
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("login needs <email> <password>")
		}
		token, err := cli.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if err := saveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}
		fmt.Println("logged in")
		return nil

	case "list":
		todos, err := cli.ListTodos(ctx)
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Println("no todos")
			return nil
		}
		for _, t := range todos {
			mark := " "
			if t.Status == "done" {
				mark = "x"
			}
			fmt.Printf("[%s] %4d  %s", mark, t.ID, t.Title)
			if t.Description != "" {
				fmt.Printf("  - %s", t.Description)
			}
			fmt.Println()
		}
		return nil

	case "add":
		if len(args) < 1 {
			return fmt.Errorf("add needs <title> [description]")
		}
		todo, err := cli.CreateTodo(ctx, args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Printf("created todo %d\n", todo.ID)
		return nil

	case "done":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		status := "done"
		if _, err := cli.UpdateTodo(ctx, id, client.TodoUpdate{Status: &status}); err != nil {
			return err
		}
		fmt.Printf("todo %d done\n", id)
		return nil

	case "edit":
		if len(args) != 2 {
			return fmt.Errorf("edit needs <id> <title>")
		}
		id, err := parseID(args[:1])
		if err != nil {
			return err
		}
		if _, err := cli.UpdateTodo(ctx, id, client.TodoUpdate{Title: &args[1]}); err != nil {
			return err
		}
		fmt.Printf("todo %d updated\n", id)
		return nil

	case "rm":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		if err := cli.DeleteTodo(ctx, id); err != nil {
			return err
		}
		fmt.Printf("todo %d deleted\n", id)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected a single <id> argument")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todoctl", "token"), nil
}

func loadToken() string {
	path, err := tokenPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0o600)
}
