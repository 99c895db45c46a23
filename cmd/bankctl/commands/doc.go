// Package commands defines the bankctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - menu                 Interactive console menu (default)
//   - serve                Serve AccountService over gRPC
//   - demo accounts        Savings and checking example scenario
//   - demo library         Book catalogue example
//   - demo classroom       Student grades example
//   - log                  Print the saved account log
//
// # Implementation
//
// The root command loads the optional YAML config, applies flag overrides and
// builds the account directory, the CSV account log and the core use case
// before any subcommand runs.
package commands
