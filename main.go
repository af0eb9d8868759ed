package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/illarion/sealnote/cmd"
	"github.com/illarion/sealnote/internal/core"
)

// labelFlags collects repeated -label values
type labelFlags []string

func (l *labelFlags) String() string {
	return strings.Join(*l, ",")
}

func (l *labelFlags) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "seal":
		runSeal(ctx, os.Args[2:])
	case "open":
		runOpen(ctx, os.Args[2:])
	case "ls", "list":
		runLs(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "rekey":
		runRekey(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newFlagSet adds the flags shared by every command
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.BoolVar(&cmd.Verbose, "v", false, "Enable debug logging")
	return fs
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// requireID returns the single message ID argument or exits with usage
func requireID(fs *flag.FlagSet, usage string) string {
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", usage)
		os.Exit(1)
	}
	return fs.Arg(0)
}

func runInit(_ context.Context, args []string) {
	fs := newFlagSet("init")
	parse(fs, args)

	cmd.Init()
}

func runSeal(ctx context.Context, args []string) {
	fs := newFlagSet("seal")
	var labels labelFlags
	fs.Var(&labels, "label", "Emotion label as emotion=score (repeatable)")
	remember := fs.Bool("remember", false, "Save the password to the OS keyring")
	parse(fs, args)

	cmd.Seal(ctx, fs.Args(), labels, *remember)
}

func runOpen(ctx context.Context, args []string) {
	fs := newFlagSet("open")
	remember := fs.Bool("remember", false, "Save the password to the OS keyring")
	parse(fs, args)

	cmd.Open(ctx, requireID(fs, "sealnote open [-remember] <id>"), *remember)
}

func runLs(ctx context.Context, args []string) {
	fs := newFlagSet("ls")
	limit := fs.Int("n", core.DefaultListLimit, "Number of notes to show (-1 for all)")
	parse(fs, args)

	cmd.List(ctx, *limit)
}

func runRm(ctx context.Context, args []string) {
	fs := newFlagSet("rm")
	parse(fs, args)

	cmd.Remove(ctx, fs.Args())
}

func runRekey(ctx context.Context, args []string) {
	fs := newFlagSet("rekey")
	parse(fs, args)

	cmd.Rekey(ctx, requireID(fs, "sealnote rekey <id>"))
}

func runDiff(ctx context.Context, args []string) {
	fs := newFlagSet("diff")
	parse(fs, args)

	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: sealnote diff <id> <file>")
		os.Exit(1)
	}
	cmd.Diff(ctx, fs.Arg(0), fs.Arg(1))
}

func runCompact(_ context.Context, args []string) {
	fs := newFlagSet("compact")
	parse(fs, args)

	cmd.Compact()
}

func runKeyring(_ context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sealnote keyring <save|delete|status> <id>")
		os.Exit(1)
	}

	switch args[0] {
	case "save":
		cmd.KeyringSave(args[1])
	case "delete":
		cmd.KeyringDelete(args[1])
	case "status":
		cmd.KeyringStatus(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown keyring command: %s\n", args[0])
		os.Exit(1)
	}
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: sealnote completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("sealnote - Password-sealed notes, retrievable by ID")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sealnote <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a .sealnote store in current directory")
	fmt.Println("  seal        Encrypt a note and store it")
	fmt.Println("  open        Decrypt a stored note by ID")
	fmt.Println("  ls          List stored notes")
	fmt.Println("  rm          Remove notes from the store")
	fmt.Println("  rekey       Change the password of a note")
	fmt.Println("  diff        Compare a note with a local file")
	fmt.Println("  compact     Compact the store to reclaim disk space")
	fmt.Println("  keyring     Manage note passwords in the OS keyring")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  SEALNOTE_DIR        Directory holding .sealnote (default: current)")
	fmt.Println("  SEALNOTE_PASSWORD   Password to use instead of prompting")
	fmt.Println("  SEALNOTE_LOG_LEVEL  debug, info, warn (default) or error")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sealnote init                          # Create new store")
	fmt.Println("  sealnote seal -label joy=0.9 hi there  # Seal a note, prints its ID")
	fmt.Println("  sealnote open <id>                     # Reveal a note")
	fmt.Println()
	fmt.Println("Use 'sealnote help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("sealnote init")
		fmt.Println()
		fmt.Println("Creates a .sealnote store in the current directory (or $SEALNOTE_DIR).")
		fmt.Println("The store itself has no password; every note gets its own.")
	case "seal":
		fmt.Println("sealnote seal [-label emotion=score]... [-remember] [text...|-]")
		fmt.Println()
		fmt.Println("Encrypts a note with a password and stores it.")
		fmt.Println("Prints the message ID needed to open it later.")
		fmt.Println("With no text, or '-', the note is read from stdin.")
		fmt.Println("When the note comes from stdin, set SEALNOTE_PASSWORD as well.")
		fmt.Println("Passwords are not stored anywhere unless -remember is given.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -label      Emotion label with confidence 0..1, repeatable")
		fmt.Println("  -remember   Save the password to the OS keyring")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  sealnote seal \"meet at noon\"")
		fmt.Println("  sealnote seal -label joy=0.8 -label surprise=0.3 < note.txt")
	case "open":
		fmt.Println("sealnote open [-remember] <id>")
		fmt.Println()
		fmt.Println("Decrypts a note and writes it to stdout.")
		fmt.Println("A wrong password and a corrupted note give the same error.")
		fmt.Println()
		fmt.Println("Flags:")
		fmt.Println("  -remember   Save the entered password to the OS keyring")
	case "ls", "list":
		fmt.Println("sealnote ls [-n N]")
		fmt.Println()
		fmt.Println("Lists notes newest first with their emotion labels.")
		fmt.Println("Shows 50 notes by default; -n -1 shows all.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "rm":
		fmt.Println("sealnote rm <id> [id...]")
		fmt.Println()
		fmt.Println("Removes notes and any keyring entries for them, then compacts the store.")
	case "rekey":
		fmt.Println("sealnote rekey <id>")
		fmt.Println()
		fmt.Println("Re-encrypts a note under a new password. The ID stays the same.")
	case "diff":
		fmt.Println("sealnote diff <id> <file>")
		fmt.Println()
		fmt.Println("Shows a line diff between a sealed note and a local file.")
	case "compact":
		fmt.Println("sealnote compact")
		fmt.Println()
		fmt.Println("Compacts the .sealnote database to reclaim unused disk space.")
		fmt.Println("This is automatically done after 'rm' and 'rekey'.")
		fmt.Println()
		fmt.Println("Does not require a password.")
	case "keyring":
		fmt.Println("sealnote keyring <save|delete|status> <id>")
		fmt.Println()
		fmt.Println("Manages a note password in the OS keyring.")
		fmt.Println("Saved passwords are used by open, diff and rekey before prompting.")
	case "completion":
		fmt.Println("sealnote completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(sealnote completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(sealnote completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  sealnote completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
