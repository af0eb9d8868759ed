package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_sealnote() {
    local cur prev words cword
    _init_completion || return

    local commands="init seal open ls rm rekey diff compact keyring help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        seal)
            COMPREPLY=($(compgen -W "-label -remember" -- "$cur"))
            ;;
        open|rm|rekey)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-remember" -- "$cur"))
            else
                # Complete with message IDs from the store
                local ids
                ids=$(sealnote ls -n -1 2>/dev/null | tail -n +2 | awk '{print $1}')
                COMPREPLY=($(compgen -W "$ids" -- "$cur"))
            fi
            ;;
        diff)
            if [[ $cword -eq 2 ]]; then
                local ids
                ids=$(sealnote ls -n -1 2>/dev/null | tail -n +2 | awk '{print $1}')
                COMPREPLY=($(compgen -W "$ids" -- "$cur"))
            else
                _filedir
            fi
            ;;
        ls)
            COMPREPLY=($(compgen -W "-n" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _sealnote sealnote
`

const zshCompletion = `#compdef sealnote

_sealnote() {
    local -a commands
    commands=(
        'init:Create a .sealnote store in current directory'
        'seal:Encrypt a note and store it'
        'open:Decrypt a stored note by ID'
        'ls:List stored notes'
        'rm:Remove notes from the store'
        'rekey:Change the password of a note'
        'diff:Compare a note with a local file'
        'compact:Compact the store to reclaim disk space'
        'keyring:Manage note passwords in OS keyring'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'sealnote commands' commands
            ;;
        args)
            case "${words[2]}" in
                seal)
                    _arguments \
                        '*-label[Emotion label, e.g. joy=0.8]:label:' \
                        '-remember[Save password to OS keyring]'
                    ;;
                open)
                    _arguments \
                        '-remember[Save password to OS keyring]' \
                        '*:message id:_sealnote_ids'
                    ;;
                rm|rekey)
                    _arguments '*:message id:_sealnote_ids'
                    ;;
                diff)
                    _arguments '1:message id:_sealnote_ids' '2:file:_files'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                help)
                    _describe -t commands 'sealnote commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_sealnote_ids() {
    local -a ids
    ids=(${(f)"$(sealnote ls -n -1 2>/dev/null | tail -n +2 | awk '{print $1}')"})
    _describe -t ids 'message ids' ids
}

_sealnote "$@"
`

const fishCompletion = `# sealnote fish completions

set -l commands init seal open ls rm rekey diff compact keyring help completion

complete -c sealnote -f

# Commands
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a .sealnote store'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a seal -d 'Encrypt and store a note'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a open -d 'Decrypt a note by ID'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List stored notes'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove notes'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a rekey -d 'Change note password'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare note with file'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact store'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage passwords in OS keyring'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c sealnote -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# seal flags
complete -c sealnote -n "__fish_seen_subcommand_from seal" -o label -r -d 'Emotion label (joy=0.8)'
complete -c sealnote -n "__fish_seen_subcommand_from seal open" -o remember -d 'Save password to keyring'

# message ids
complete -c sealnote -n "__fish_seen_subcommand_from open rm rekey diff" -a "(sealnote ls -n -1 2>/dev/null | tail -n +2 | awk '{print \$1}')"
complete -c sealnote -n "__fish_seen_subcommand_from diff" -F

# keyring subcommands
complete -c sealnote -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c sealnote -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c sealnote -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
