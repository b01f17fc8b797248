// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (set by main at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents a CLI command.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdVerify
	CmdPermissions
	CmdClients
	CmdRepresentatives
	CmdProducts
	CmdPrices
	CmdPaymentMethods
	CmdCarriers
	CmdColors
	CmdSizes
	CmdTissues
	CmdCollections
	CmdMask
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// commandNames maps every accepted spelling to its command.
var commandNames = map[string]Command{
	"tui":             CmdTUI,
	"login":           CmdLogin,
	"logout":          CmdLogout,
	"status":          CmdStatus,
	"verify":          CmdVerify,
	"permissions":     CmdPermissions,
	"perms":           CmdPermissions,
	"clients":         CmdClients,
	"clientes":        CmdClients,
	"representatives": CmdRepresentatives,
	"representantes":  CmdRepresentatives,
	"reps":            CmdRepresentatives,
	"products":        CmdProducts,
	"produtos":        CmdProducts,
	"prices":          CmdPrices,
	"precos":          CmdPrices,
	"payment-methods": CmdPaymentMethods,
	"formas":          CmdPaymentMethods,
	"carriers":        CmdCarriers,
	"transportadoras": CmdCarriers,
	"colors":          CmdColors,
	"cores":           CmdColors,
	"sizes":           CmdSizes,
	"tamanhos":        CmdSizes,
	"tissues":         CmdTissues,
	"tecidos":         CmdTissues,
	"collections":     CmdCollections,
	"colecoes":        CmdCollections,
	"mask":            CmdMask,
	"config":          CmdConfig,
	"version":         CmdVersion,
	"--version":       CmdVersion,
	"-V":              CmdVersion,
	"help":            CmdHelp,
	"--help":          CmdHelp,
	"-h":              CmdHelp,
}

// String returns the canonical command name used in JSON envelopes.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdLogin:
		return "login"
	case CmdLogout:
		return "logout"
	case CmdStatus:
		return "status"
	case CmdVerify:
		return "verify"
	case CmdPermissions:
		return "permissions"
	case CmdClients:
		return "clients"
	case CmdRepresentatives:
		return "representatives"
	case CmdProducts:
		return "products"
	case CmdPrices:
		return "prices"
	case CmdPaymentMethods:
		return "payment-methods"
	case CmdCarriers:
		return "carriers"
	case CmdColors:
		return "colors"
	case CmdSizes:
		return "sizes"
	case CmdTissues:
		return "tissues"
	case CmdCollections:
		return "collections"
	case CmdMask:
		return "mask"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed command-line arguments.
type Args struct {
	// Global flags
	JSON    bool
	Verbose bool
	Offline bool
	Backend string // overrides backend.url

	// Name is the command word as typed; set for CmdUnknown.
	Name string

	// Rest are the arguments after the command word.
	Rest []string

	// Options parses Rest.
	Options *ArgParser
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv, the arguments without the program name. Global
// flags may appear anywhere. With no command the TUI starts.
func ParseArgs(argv []string) (Command, Args) {
	var args Args
	rest := parseGlobalFlags(argv, &args)

	cmd := CmdTUI
	if len(rest) > 0 {
		name := rest[0]
		found, ok := commandNames[strings.ToLower(name)]
		if !ok {
			found, ok = commandNames[name]
		}
		if ok {
			cmd = found
		} else {
			cmd = CmdUnknown
			args.Name = name
		}
		rest = rest[1:]
	}

	args.Rest = rest
	args.Options = NewArgParser(rest)
	return cmd, args
}

// parseGlobalFlags removes the global flags from argv into args and returns
// what is left.
func parseGlobalFlags(argv []string, args *Args) []string {
	rest := make([]string, 0, len(argv))
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "--verbose" || arg == "-v":
			args.Verbose = true
		case arg == "--offline":
			args.Offline = true
		case arg == "--backend" || arg == "-b":
			if i+1 < len(argv) {
				args.Backend = argv[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--backend="):
			args.Backend = strings.TrimPrefix(arg, "--backend=")
		default:
			rest = append(rest, arg)
		}
	}
	return rest
}

// =============================================================================
// VERSION
// =============================================================================

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Printf("painel %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleVersion prints version information, as JSON with --json.
func HandleVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
		}).Print()
	}
	PrintVersion()
	return nil
}
